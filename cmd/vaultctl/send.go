package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/tos-network/nftvault/cmd/utils"
	"github.com/tos-network/nftvault/core/types"
	"github.com/tos-network/nftvault/sysaction"
	"github.com/urfave/cli/v2"
)

var valueFlag = &cli.StringFlag{
	Name:  "value",
	Usage: "native currency (wei) attached to the action, only accepted by REGISTRY_MINT",
	Value: "0",
}

var commandSend = &cli.Command{
	Name:      "send",
	Usage:     "sign an action and submit it to vaultd",
	ArgsUsage: "<ACTION> [<payload json>]",
	Description: `
Sign a system action with the keyfile and submit it to vaultd. The payload is
the JSON object of the action, for example:

    vaultctl send ACCESS_PAUSE '{"state": 2}'
    vaultctl send --value 20000000000000000 REGISTRY_MINT '{"amount": 2}'

The receipt of the applied action is printed. A failed action still uses up
the signer's nonce.`,
	Flags: []cli.Flag{
		keyfileFlag,
		passwordFlag,
		rpcFlag,
		valueFlag,
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() < 1 || ctx.NArg() > 2 {
			utils.Fatalf("usage: send <ACTION> [<payload json>]")
		}
		kind := sysaction.ActionKind(strings.ToUpper(ctx.Args().Get(0)))
		var payload json.RawMessage
		if ctx.NArg() == 2 {
			payload = json.RawMessage(ctx.Args().Get(1))
			if !json.Valid(payload) {
				utils.Fatalf("Payload is not valid JSON")
			}
		}
		value, ok := new(big.Int).SetString(ctx.String(valueFlag.Name), 0)
		if !ok || value.Sign() < 0 {
			utils.Fatalf("Invalid --%s %q", valueFlag.Name, ctx.String(valueFlag.Name))
		}
		return submit(ctx, kind, payload, value)
	},
}

var (
	commandStake   = tokenCommand(sysaction.ActionVaultStake, "stake", "custody tokens in the vault and start accruing rewards")
	commandUnstake = tokenCommand(sysaction.ActionVaultUnstake, "unstake", "return staked tokens and pay out their rewards")
	commandClaim   = tokenCommand(sysaction.ActionVaultClaim, "claim", "pay out the rewards of staked tokens")
)

// tokenCommand builds a shortcut for the vault actions taking token ids.
func tokenCommand(kind sysaction.ActionKind, name, usage string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<tokenId> [<tokenId>...]",
		Flags: []cli.Flag{
			keyfileFlag,
			passwordFlag,
			rpcFlag,
			jsonFlag,
		},
		Action: func(ctx *cli.Context) error {
			ids, err := parseTokenIDs(ctx.Args().Slice())
			if err != nil {
				utils.Fatalf("%v", err)
			}
			payload, err := json.Marshal(&sysaction.TokenIDsPayload{TokenIDs: ids})
			if err != nil {
				return err
			}
			return submit(ctx, kind, payload, new(big.Int))
		},
	}
}

func parseTokenIDs(args []string) ([]uint64, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no token ids given")
	}
	ids := make([]uint64, 0, len(args))
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			if field = strings.TrimSpace(field); field == "" {
				continue
			}
			id, err := strconv.ParseUint(field, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid token id %q", field)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func submit(ctx *cli.Context, kind sysaction.ActionKind, payload json.RawMessage, value *big.Int) error {
	key := loadKey(ctx, ctx.String(keyfileFlag.Name))
	client := dial(ctx)
	defer client.Close()

	cctx, cancel := callContext(ctx)
	defer cancel()
	receipt, err := client.SignAndSend(cctx, key.PrivateKey, kind, payload, value)
	if err != nil {
		utils.Fatalf("Action failed: %v", err)
	}
	if ctx.Bool(jsonFlag.Name) {
		mustPrintJSON(receipt)
		return nil
	}
	printReceipt(receipt)
	return nil
}

func printReceipt(r *types.Receipt) {
	fmt.Println("Operation:", r.Operation)
	fmt.Println("Actor:    ", r.Actor.Hex())
	fmt.Println("Timestamp:", r.Timestamp)
	if r.Succeeded() {
		fmt.Println("Status:    success")
		fmt.Println("Event seq:", r.Seq)
		return
	}
	fmt.Println("Status:    failed")
	fmt.Printf("Error:     %s (%s)\n", r.Err, r.ErrKind)
}
