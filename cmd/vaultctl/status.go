package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
	"github.com/tos-network/nftvault/cmd/utils"
	"github.com/tos-network/nftvault/params"
	"github.com/tos-network/nftvault/vaultclient"
	"github.com/urfave/cli/v2"
)

var commandStatus = &cli.Command{
	Name:  "status",
	Usage: "print the collection dashboard",
	Flags: []cli.Flag{
		rpcFlag,
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		client := dial(ctx)
		defer client.Close()

		cctx, cancel := callContext(ctx)
		defer cancel()
		d, err := client.Dashboard(cctx)
		if err != nil {
			utils.Fatalf("Failed to fetch dashboard: %v", err)
		}
		if ctx.Bool(jsonFlag.Name) {
			mustPrintJSON(d)
			return nil
		}
		renderDashboard(os.Stdout, d)
		return nil
	},
}

var commandBalance = &cli.Command{
	Name:      "balance",
	Usage:     "print the tokens and rewards of an account",
	ArgsUsage: "<address>",
	Flags: []cli.Flag{
		rpcFlag,
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		addr := ctx.Args().First()
		if !common.IsHexAddress(addr) {
			utils.Fatalf("usage: balance <address>")
		}
		client := dial(ctx)
		defer client.Close()

		cctx, cancel := callContext(ctx)
		defer cancel()
		acc, err := fetchAccount(cctx, client, common.HexToAddress(addr))
		if err != nil {
			utils.Fatalf("Failed to fetch account: %v", err)
		}
		if ctx.Bool(jsonFlag.Name) {
			mustPrintJSON(acc)
			return nil
		}
		renderAccount(os.Stdout, acc)
		return nil
	},
}

// accountStatus is the per-account view printed by the balance command.
type accountStatus struct {
	Address common.Address `json:"address"`
	Held    []uint64       `json:"held"`
	Staked  []uint64       `json:"staked"`
	Earned  *big.Int       `json:"earned"`
	Rewards *big.Int       `json:"rewards"`
}

func fetchAccount(ctx context.Context, client *vaultclient.Client, addr common.Address) (*accountStatus, error) {
	var (
		acc = &accountStatus{Address: addr, Earned: new(big.Int)}
		err error
	)
	if acc.Held, err = client.HeldTokens(ctx, addr); err != nil {
		return nil, err
	}
	if acc.Staked, err = client.StakedTokens(ctx, addr); err != nil {
		return nil, err
	}
	if acc.Rewards, err = client.RewardBalance(ctx, addr); err != nil {
		return nil, err
	}
	if len(acc.Staked) > 0 {
		if acc.Earned, err = client.Earned(ctx, acc.Staked); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func renderDashboard(w io.Writer, d *vaultclient.Dashboard) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk([][]string{
		{"Owner", d.Owner.Hex()},
		{"State", fmt.Sprintf("%s (%d)", d.State, d.Paused)},
		{"Mint cost", formatUnits(d.Cost) + " ETH"},
		{"Max mint per tx", strconv.FormatUint(d.MaxMintAmountPerTx, 10)},
		{"Minted", fmt.Sprintf("%d / %d", d.TotalMinted, d.MaxSupply)},
		{"Staked", strconv.FormatUint(d.TotalStaked, 10)},
		{"Collection balance", formatUnits(d.Balance) + " ETH"},
		{"Reward supply", formatUnits(d.RewardSupply) + " DPT"},
		{"Time", strconv.FormatUint(d.Time, 10)},
	})
	table.Render()
}

func renderAccount(w io.Writer, acc *accountStatus) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Account", acc.Address.Hex()})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk([][]string{
		{"Held tokens", formatIDs(acc.Held)},
		{"Staked tokens", formatIDs(acc.Staked)},
		{"Pending rewards", formatUnits(acc.Earned) + " DPT"},
		{"Reward balance", formatUnits(acc.Rewards) + " DPT"},
	})
	table.Render()
}

func formatIDs(ids []uint64) string {
	if len(ids) == 0 {
		return "-"
	}
	s := ""
	for i, id := range ids {
		if i > 0 {
			s += ", "
		}
		s += strconv.FormatUint(id, 10)
	}
	return s
}

// formatUnits renders an 18-decimal amount as a decimal string.
func formatUnits(v *big.Int) string {
	if v == nil {
		return "0"
	}
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(params.RewardDecimals), nil)
	q, r := new(big.Int).QuoRem(v, unit, new(big.Int))
	if r.Sign() == 0 {
		return q.String()
	}
	frac := r.String()
	frac = strings.Repeat("0", params.RewardDecimals-len(frac)) + frac
	for frac[len(frac)-1] == '0' {
		frac = frac[:len(frac)-1]
	}
	return q.String() + "." + frac
}
