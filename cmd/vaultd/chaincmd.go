package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/tos-network/nftvault/cmd/utils"
	"github.com/tos-network/nftvault/core"
	"github.com/tos-network/nftvault/node"
	"github.com/urfave/cli/v2"
)

var (
	ownerFlag = &cli.StringFlag{
		Name:  "owner",
		Usage: "Owner address of the deployment",
	}
	activeFlag = &cli.BoolFlag{
		Name:  "active",
		Usage: "Start the deployment active instead of paused",
	}

	initCommand = &cli.Command{
		Action:    initGenesis,
		Name:      "init",
		Usage:     "Bootstrap and initialize a new deployment",
		ArgsUsage: "<genesisPath>",
		Flags:     []cli.Flag{utils.DataDirFlag, utils.CacheFlag},
		Description: `
The init command writes the deployment described by the genesis file into the
state database. This is a destructive action only for an empty datadir; an
initialised datadir accepts the same genesis again and rejects any other.`,
	}
	dumpGenesisCommand = &cli.Command{
		Action:    dumpGenesis,
		Name:      "dumpgenesis",
		Usage:     "Dumps the default genesis JSON to stdout",
		ArgsUsage: "",
		Flags:     []cli.Flag{ownerFlag, activeFlag},
		Description: `
The dumpgenesis command prints the default deployment (30 tokens at 0.01 ether,
at most 5 per mint, 0.001 reward unit per token per second) for --owner.`,
	}
)

// initGenesis will initialise the given JSON format genesis file and writes it as
// the zero'd state (i.e. deployment) or will fail hard if it can't succeed.
func initGenesis(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		utils.Fatalf("need genesis.json file as the only argument")
	}
	genesisPath := ctx.Args().First()
	if len(genesisPath) == 0 {
		utils.Fatalf("invalid path to genesis file")
	}
	genesis, err := readGenesis(genesisPath)
	if err != nil {
		utils.Fatalf("%v", err)
	}
	cfg := node.DefaultConfig
	utils.SetNodeConfig(ctx, &cfg)
	if err := writeGenesis(&cfg, genesis); err != nil {
		utils.Fatalf("Failed to write genesis state: %v", err)
	}
	return nil
}

func readGenesis(path string) (*core.Genesis, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis file: %v", err)
	}
	defer file.Close()

	genesis := new(core.Genesis)
	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(genesis); err != nil {
		return nil, fmt.Errorf("invalid genesis file: %v", err)
	}
	if genesis.Owner == (common.Address{}) {
		return nil, fmt.Errorf("invalid genesis file: missing owner")
	}
	return genesis, nil
}

func writeGenesis(cfg *node.Config, genesis *core.Genesis) error {
	db, err := node.OpenDatabase(cfg, false)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := core.SetupGenesis(db, genesis); err != nil {
		return err
	}
	log.Info("Successfully wrote genesis state", "database", cfg.DatabasePath(), "owner", genesis.Owner)
	return nil
}

func dumpGenesis(ctx *cli.Context) error {
	owner := ctx.String(ownerFlag.Name)
	if !common.IsHexAddress(owner) {
		utils.Fatalf("--%s must be a hex address", ownerFlag.Name)
	}
	genesis := core.DefaultGenesis(common.HexToAddress(owner))
	genesis.Paused = !ctx.Bool(activeFlag.Name)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(genesis); err != nil {
		utils.Fatalf("could not encode genesis: %v", err)
	}
	return nil
}
