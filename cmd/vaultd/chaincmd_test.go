package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"github.com/tos-network/nftvault/core"
	"github.com/tos-network/nftvault/node"
)

const testGenesis = `{
  "owner": "0x00000000000000000000000000000000000000aa",
  "timestamp": 1700000000,
  "paused": false,
  "alloc": {"0x00000000000000000000000000000000000000bb": {"balance": "1000000000000000000"}},
  "tokens": [{"owner": "0x00000000000000000000000000000000000000bb", "count": 2}]
}`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadGenesis(t *testing.T) {
	g, err := readGenesis(writeFile(t, "genesis.json", testGenesis))
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0xaa"), g.Owner)
	require.False(t, g.Paused)
	require.Len(t, g.Tokens, 1)

	_, err = readGenesis(writeFile(t, "bad.json", `{"owner": "0x00000000000000000000000000000000000000aa", "chainId": 1}`))
	require.Error(t, err)
	_, err = readGenesis(writeFile(t, "noowner.json", `{"paused": true}`))
	require.Error(t, err)
	_, err = readGenesis(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestWriteGenesis(t *testing.T) {
	cfg := node.DefaultConfig
	cfg.DataDir = t.TempDir()
	cfg.DatabaseCache, cfg.DatabaseHandles = 16, 16

	g, err := readGenesis(writeFile(t, "genesis.json", testGenesis))
	require.NoError(t, err)
	require.NoError(t, writeGenesis(&cfg, g))
	// Same genesis again is accepted.
	require.NoError(t, writeGenesis(&cfg, g))

	other := core.DefaultGenesis(g.Owner)
	require.ErrorIs(t, writeGenesis(&cfg, other), core.ErrGenesisMismatch)

	stack, err := node.New(&cfg)
	require.NoError(t, err)
	defer stack.Close()
	require.Equal(t, uint64(1), stack.Sequencer().EventCount())
}
