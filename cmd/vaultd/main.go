// vaultd is the nftvault daemon: it serializes staking, reward and
// collection actions and serves the dashboard JSON-RPC API.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/tos-network/nftvault/cmd/utils"
	"github.com/tos-network/nftvault/internal/flags"
	"github.com/tos-network/nftvault/metrics"
	"github.com/tos-network/nftvault/node"
	"github.com/urfave/cli/v2"
)

var (
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = flags.NewApp(gitCommit, gitDate, "the nftvault staking daemon")
)

func init() {
	app.Action = vaultd
	app.Commands = []*cli.Command{
		initCommand,
		dumpGenesisCommand,
		dumpConfigCommand,
		versionCommand,
		licenseCommand,
	}
	app.Flags = append(app.Flags, configFileFlag)
	app.Flags = append(app.Flags, utils.NodeFlags...)
	app.Flags = append(app.Flags, utils.LoggingFlags...)
	app.Flags = append(app.Flags, utils.MetricsFlags...)

	before := app.Before
	app.Before = func(ctx *cli.Context) error {
		if err := before(ctx); err != nil {
			return err
		}
		return utils.SetupLogging(ctx)
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// vaultd is the main entry point into the system if no special subcommand is
// run. It opens the state database, starts the RPC endpoints and blocks
// until interrupted.
func vaultd(ctx *cli.Context) error {
	if args := ctx.Args().Slice(); len(args) > 0 {
		return fmt.Errorf("invalid command: %q", args[0])
	}
	cfg := makeConfig(ctx)
	if err := metrics.Setup(cfg.Metrics); err != nil {
		utils.Fatalf("Failed to set up metrics: %v", err)
	}
	stack, err := node.New(&cfg.Node)
	if err != nil {
		utils.Fatalf("Failed to open node (did you run 'vaultd init'?): %v", err)
	}
	startNode(stack)
	stack.Wait()
	return nil
}

// startNode boots up the node and closes it on the first interrupt.
func startNode(stack *node.Node) {
	if err := stack.Start(); err != nil {
		utils.Fatalf("Error starting vault node: %v", err)
	}
	log.Info("Vault node started", "http", stack.HTTPEndpoint(), "ws", stack.WSEndpoint())
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigc)

		<-sigc
		log.Info("Got interrupt, shutting down...")
		go stack.Close()
		for i := 10; i > 0; i-- {
			<-sigc
			if i > 1 {
				log.Warn("Already shutting down, interrupt more to panic.", "times", i-1)
			}
		}
		panic("boom")
	}()
}
