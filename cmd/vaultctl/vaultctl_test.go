package main

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"flag"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/stretchr/testify/require"
	"github.com/tos-network/nftvault/core"
	"github.com/tos-network/nftvault/node"
	"github.com/tos-network/nftvault/sysaction"
	"github.com/tos-network/nftvault/vaultclient"
	"github.com/urfave/cli/v2"
)

func TestKeyfileRoundTrip(t *testing.T) {
	prv, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyjson, err := encryptKey(prv, "foobar", true)
	require.NoError(t, err)

	_, err = keystore.DecryptKey(keyjson, "wrong")
	require.Error(t, err)
	key, err := keystore.DecryptKey(keyjson, "foobar")
	require.NoError(t, err)
	require.Equal(t, crypto.PubkeyToAddress(prv.PublicKey), key.Address)

	out := inspectKey(key, false)
	require.Equal(t, key.Address.Hex(), out.Address)
	require.Empty(t, out.PrivateKey)
	require.Len(t, out.PublicKey, 130)

	out = inspectKey(key, true)
	require.Len(t, out.PrivateKey, 64)
}

func TestLoadKeyFromPasswordFile(t *testing.T) {
	dir := t.TempDir()
	prv, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyjson, err := encryptKey(prv, "foobar", true)
	require.NoError(t, err)
	keyfile := filepath.Join(dir, "keyfile.json")
	require.NoError(t, os.WriteFile(keyfile, keyjson, 0600))
	passfile := filepath.Join(dir, "password")
	require.NoError(t, os.WriteFile(passfile, []byte("foobar\r\nunused\n"), 0600))

	app := cli.NewApp()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	require.NoError(t, passwordFlag.Apply(set))
	require.NoError(t, set.Parse([]string{"--password", passfile}))
	ctx := cli.NewContext(app, set, nil)

	key := loadKey(ctx, keyfile)
	require.Equal(t, crypto.PubkeyToAddress(prv.PublicKey), key.Address)
}

func TestParseTokenIDs(t *testing.T) {
	ids, err := parseTokenIDs([]string{"1", "2,3", " 0x10 "})
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 3, 16}, ids)

	_, err = parseTokenIDs(nil)
	require.Error(t, err)
	_, err = parseTokenIDs([]string{"one"})
	require.Error(t, err)
	_, err = parseTokenIDs([]string{"-1"})
	require.Error(t, err)
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1000000000000000000", "1"},
		{"3600000000000000000", "3.6"},
		{"10000000000000000", "0.01"},
		{"1", "0.000000000000000001"},
	}
	for _, tt := range tests {
		v, _ := new(big.Int).SetString(tt.in, 10)
		require.Equal(t, tt.want, formatUnits(v), tt.in)
	}
	require.Equal(t, "0", formatUnits(nil))
}

type testVaultd struct {
	client *vaultclient.Client
	owner  *ecdsa.PrivateKey
	alice  *ecdsa.PrivateKey
}

func newTestVaultd(t *testing.T) *testVaultd {
	owner, _ := crypto.GenerateKey()
	alice, _ := crypto.GenerateKey()

	db := memorydb.New()
	g := core.DefaultGenesis(crypto.PubkeyToAddress(owner.PublicKey))
	g.Tokens = []core.GenesisTokens{{Owner: crypto.PubkeyToAddress(alice.PublicKey), Count: 2}}
	_, err := core.SetupGenesis(db, g)
	require.NoError(t, err)

	stack, err := node.NewWithDatabase(&node.Config{HTTPHost: "127.0.0.1"}, db)
	require.NoError(t, err)
	require.NoError(t, stack.Start())
	client, err := vaultclient.Dial(stack.HTTPEndpoint())
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
		stack.Close()
	})
	return &testVaultd{client: client, owner: owner, alice: alice}
}

func TestSendAndStatus(t *testing.T) {
	vd := newTestVaultd(t)
	ctx := context.Background()
	alice := crypto.PubkeyToAddress(vd.alice.PublicKey)

	// Staking is refused while the deployment is paused.
	ids, _ := json.Marshal(&sysaction.TokenIDsPayload{TokenIDs: []uint64{1, 2}})
	receipt, err := vd.client.SignAndSend(ctx, vd.alice, sysaction.ActionVaultStake, ids, new(big.Int))
	require.NoError(t, err)
	require.False(t, receipt.Succeeded())
	require.Equal(t, "InvalidState", receipt.ErrKind)

	receipt, err = vd.client.SignAndSend(ctx, vd.owner, sysaction.ActionAccessPause, json.RawMessage(`{"state": 2}`), new(big.Int))
	require.NoError(t, err)
	require.True(t, receipt.Succeeded(), receipt.Err)

	// The failed stake consumed nonce 0, this one is signed with nonce 1.
	receipt, err = vd.client.SignAndSend(ctx, vd.alice, sysaction.ActionVaultStake, ids, new(big.Int))
	require.NoError(t, err)
	require.True(t, receipt.Succeeded(), receipt.Err)

	acc, err := fetchAccount(ctx, vd.client, alice)
	require.NoError(t, err)
	require.Empty(t, acc.Held)
	require.Equal(t, []uint64{1, 2}, acc.Staked)
	require.NotNil(t, acc.Earned)

	var buf bytes.Buffer
	renderAccount(&buf, acc)
	require.Contains(t, buf.String(), "1, 2")

	d, err := vd.client.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), d.TotalStaked)

	buf.Reset()
	renderDashboard(&buf, d)
	out := buf.String()
	require.Contains(t, out, "active (2)")
	require.Contains(t, out, "0.01 ETH")
	require.Contains(t, out, "2 / 30")
	require.True(t, strings.Contains(out, crypto.PubkeyToAddress(vd.owner.PublicKey).Hex()))
}

func TestSendValueRejected(t *testing.T) {
	vd := newTestVaultd(t)
	ctx := context.Background()

	receipt, err := vd.client.SignAndSend(ctx, vd.owner, sysaction.ActionAccessPause, json.RawMessage(`{"state": 2}`), big.NewInt(1))
	require.NoError(t, err)
	require.False(t, receipt.Succeeded())
	require.Equal(t, "ValidationError", receipt.ErrKind)

	state, err := vd.client.Paused(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), state)
}
