package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/tos-network/nftvault/cmd/utils"
	"github.com/tos-network/nftvault/vaultclient"
	"github.com/urfave/cli/v2"
)

// callTimeout bounds every RPC round trip of a command.
const callTimeout = 30 * time.Second

// getPassphrase obtains a passphrase given by the user. It first checks the
// first line of the --password file and ultimately prompts the user.
func getPassphrase(ctx *cli.Context, text string, confirmation bool) string {
	return utils.GetPassPhraseWithList(text, confirmation, 0, utils.MakePasswordList(ctx))
}

// loadKey reads and decrypts the keyfile at path.
func loadKey(ctx *cli.Context, path string) *keystore.Key {
	keyjson, err := os.ReadFile(path)
	if err != nil {
		utils.Fatalf("Failed to read the keyfile at '%s': %v", path, err)
	}
	key, err := keystore.DecryptKey(keyjson, getPassphrase(ctx, "Please enter the passphrase to decrypt the keyfile.", false))
	if err != nil {
		utils.Fatalf("Error decrypting key: %v", err)
	}
	return key
}

// dial connects to the vaultd endpoint given by --rpc.
func dial(ctx *cli.Context) *vaultclient.Client {
	client, err := vaultclient.DialContext(ctx.Context, ctx.String(rpcFlag.Name))
	if err != nil {
		utils.Fatalf("Failed to connect to vaultd: %v", err)
	}
	return client
}

func callContext(ctx *cli.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Context, callTimeout)
}

func mustPrintJSON(jsonObject interface{}) {
	str, err := json.MarshalIndent(jsonObject, "", "  ")
	if err != nil {
		utils.Fatalf("Failed to marshal JSON object: %v", err)
	}
	fmt.Println(string(str))
}
