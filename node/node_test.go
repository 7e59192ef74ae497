package node

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
	"github.com/tos-network/nftvault/core"
)

var testOwner = common.HexToAddress("0x00000000000000000000000000000000000000aa")

func testConfig() *Config {
	return &Config{
		HTTPHost:  "127.0.0.1",
		HTTPCors:  []string{"http://dashboard.example"},
		WSHost:    "127.0.0.1",
		WSOrigins: []string{"*"},
	}
}

func newTestNode(t *testing.T, conf *Config) *Node {
	db := memorydb.New()
	_, err := core.SetupGenesis(db, core.DefaultGenesis(testOwner))
	require.NoError(t, err)
	n, err := NewWithDatabase(conf, db)
	require.NoError(t, err)
	t.Cleanup(func() { n.Close() })
	return n
}

func TestNodeRequiresGenesis(t *testing.T) {
	_, err := NewWithDatabase(testConfig(), memorydb.New())
	require.ErrorIs(t, err, core.ErrNoGenesis)
}

func TestNodeLifecycle(t *testing.T) {
	n := newTestNode(t, testConfig())
	require.NoError(t, n.Start())
	require.ErrorIs(t, n.Start(), ErrNodeRunning)

	require.NoError(t, n.Close())
	require.ErrorIs(t, n.Close(), ErrNodeStopped)
	require.ErrorIs(t, n.Start(), ErrNodeStopped)
	_, err := n.Attach()
	require.ErrorIs(t, err, ErrNodeStopped)
}

func TestNodeHTTPAndWebsocket(t *testing.T) {
	n := newTestNode(t, testConfig())
	require.NoError(t, n.Start())
	require.True(t, strings.HasPrefix(n.HTTPEndpoint(), "http://127.0.0.1:"))
	require.True(t, strings.HasPrefix(n.WSEndpoint(), "ws://127.0.0.1:"))
	require.NotEqual(t, strings.TrimPrefix(n.HTTPEndpoint(), "http://"), strings.TrimPrefix(n.WSEndpoint(), "ws://"))

	for _, url := range []string{n.HTTPEndpoint(), n.WSEndpoint()} {
		client, err := rpc.Dial(url)
		require.NoError(t, err, url)

		var owner common.Address
		require.NoError(t, client.CallContext(context.Background(), &owner, "admin_owner"))
		require.Equal(t, testOwner, owner)

		var paused hexutil.Uint64
		require.NoError(t, client.CallContext(context.Background(), &paused, "admin_paused"))
		require.Equal(t, hexutil.Uint64(1), paused)
		client.Close()
	}
}

func TestNodeSharedListener(t *testing.T) {
	// Reserve a free port, then serve HTTP and websocket on it together.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, portStr, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	conf := testConfig()
	conf.HTTPPort, conf.WSPort = port, port
	n := newTestNode(t, conf)
	require.NoError(t, n.Start())
	require.Equal(t, strings.TrimPrefix(n.HTTPEndpoint(), "http://"), strings.TrimPrefix(n.WSEndpoint(), "ws://"))

	client, err := rpc.Dial(n.WSEndpoint())
	require.NoError(t, err)
	defer client.Close()
	var count hexutil.Uint64
	require.NoError(t, client.CallContext(context.Background(), &count, "node_eventCount"))
	require.Equal(t, hexutil.Uint64(1), count) // genesis DEPLOY event
}

func TestNodeCors(t *testing.T) {
	n := newTestNode(t, testConfig())
	require.NoError(t, n.Start())

	req, err := http.NewRequest(http.MethodOptions, n.HTTPEndpoint(), nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "http://dashboard.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNodeLevelDB(t *testing.T) {
	conf := testConfig()
	conf.DataDir = t.TempDir()
	conf.DatabaseCache, conf.DatabaseHandles = 16, 16
	require.Equal(t, filepath.Join(conf.DataDir, datadirDatabase), conf.DatabasePath())

	db, err := OpenDatabase(conf, false)
	require.NoError(t, err)
	_, err = core.SetupGenesis(db, core.DefaultGenesis(testOwner))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	n, err := New(conf)
	require.NoError(t, err)
	client, err := n.Attach()
	require.NoError(t, err)
	var owner common.Address
	require.NoError(t, client.CallContext(context.Background(), &owner, "admin_owner"))
	require.Equal(t, testOwner, owner)
	client.Close()
	require.NoError(t, n.Close())
}
