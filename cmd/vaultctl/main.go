// vaultctl manages staker and owner keyfiles and talks to a running vaultd:
// it signs and submits actions and prints the dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/tos-network/nftvault/cmd/utils"
	"github.com/tos-network/nftvault/internal/flags"
	"github.com/tos-network/nftvault/node"
	"github.com/urfave/cli/v2"
)

const (
	defaultKeyfileName = "keyfile.json"
)

// Git SHA1 commit hash of the release (set via linker flags)
var gitCommit = ""
var gitDate = ""

var app *cli.App

func init() {
	app = flags.NewApp(gitCommit, gitDate, "an nftvault key manager and RPC client")
	app.Commands = []*cli.Command{
		commandGenerate,
		commandInspect,
		commandSend,
		commandStake,
		commandUnstake,
		commandClaim,
		commandStatus,
		commandBalance,
	}
}

// Commonly used command line flags.
var (
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output JSON instead of human-readable format",
	}
	rpcFlag = &cli.StringFlag{
		Name:  "rpc",
		Usage: "vaultd RPC endpoint",
		Value: fmt.Sprintf("http://%s:%d", node.DefaultHTTPHost, node.DefaultHTTPPort),
	}
	keyfileFlag = &cli.StringFlag{
		Name:  "keyfile",
		Usage: "keyfile of the signing account",
		Value: defaultKeyfileName,
	}
	passwordFlag = utils.PasswordFileFlag
)

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
