// Package node hosts the vault sequencer behind a JSON-RPC endpoint. It owns
// the state database, the sequencer and the HTTP and websocket listeners.
package node

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/leveldb"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/cors"
	"github.com/tos-network/nftvault/core"
	"github.com/tos-network/nftvault/core/state"
	"github.com/tos-network/nftvault/internal/vaultapi"
)

var (
	ErrNodeStopped = errors.New("node not started")
	ErrNodeRunning = errors.New("node already running")
)

const (
	initializingState = iota
	runningState
	closedState
)

// Timeouts applied to the RPC listeners.
const (
	httpReadTimeout  = 30 * time.Second
	httpWriteTimeout = 30 * time.Second
	httpIdleTimeout  = 120 * time.Second
)

// Node is a vault daemon instance.
type Node struct {
	config *Config
	log    log.Logger

	db        ethdb.KeyValueStore
	sequencer *core.Sequencer
	rpc       *rpc.Server

	lock      sync.Mutex
	state     int
	servers   []*http.Server
	httpAddr  net.Addr
	wsAddr    net.Addr
	stopWaitC chan struct{}
}

// OpenDatabase opens the state database described by conf. An empty data
// directory yields an in-memory store.
func OpenDatabase(conf *Config, readonly bool) (ethdb.KeyValueStore, error) {
	path := conf.DatabasePath()
	if path == "" {
		return memorydb.New(), nil
	}
	return leveldb.New(path, conf.DatabaseCache, conf.DatabaseHandles, "nftvault/db/state/", readonly)
}

// New opens the database in conf and creates a node over it. The database
// must have been initialised with a genesis.
func New(conf *Config) (*Node, error) {
	db, err := OpenDatabase(conf, false)
	if err != nil {
		return nil, err
	}
	n, err := NewWithDatabase(conf, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return n, nil
}

// NewWithDatabase creates a node over an already opened database. The node
// takes ownership of db and closes it on Close.
func NewWithDatabase(conf *Config, db ethdb.KeyValueStore) (*Node, error) {
	confCopy := *conf
	seq, err := core.NewSequencer(state.NewDatabaseWithCache(db, conf.StateCache), nil)
	if err != nil {
		return nil, err
	}
	srv := rpc.NewServer()
	for _, api := range vaultapi.APIs(seq) {
		if err := srv.RegisterName(api.Namespace, api.Service); err != nil {
			srv.Stop()
			return nil, fmt.Errorf("register %s API: %w", api.Namespace, err)
		}
	}
	return &Node{
		config:    &confCopy,
		log:       log.New("datadir", conf.DataDir),
		db:        db,
		sequencer: seq,
		rpc:       srv,
		stopWaitC: make(chan struct{}),
	}, nil
}

// Sequencer returns the node's sequencer.
func (n *Node) Sequencer() *core.Sequencer { return n.sequencer }

// Start opens the configured RPC endpoints.
func (n *Node) Start() error {
	n.lock.Lock()
	defer n.lock.Unlock()

	switch n.state {
	case runningState:
		return ErrNodeRunning
	case closedState:
		return ErrNodeStopped
	}
	if err := n.startRPC(); err != nil {
		n.stopServers()
		return err
	}
	n.state = runningState
	return nil
}

func (n *Node) startRPC() error {
	var (
		httpEndpoint = endpoint(n.config.HTTPHost, n.config.HTTPPort)
		wsEndpoint   = endpoint(n.config.WSHost, n.config.WSPort)
		httpHandler  = newCorsHandler(n.rpc, n.config.HTTPCors)
	)
	if n.config.HTTPHost != "" {
		handler := httpHandler
		if n.config.WSHost != "" && wsEndpoint == httpEndpoint && n.config.WSPort != 0 {
			handler = wsMux(httpHandler, n.rpc.WebsocketHandler(n.config.WSOrigins))
		}
		addr, err := n.serve(httpEndpoint, handler)
		if err != nil {
			return err
		}
		n.httpAddr = addr
		n.log.Info("HTTP server started", "endpoint", addr, "cors", strings.Join(n.config.HTTPCors, ","))
		if handler != httpHandler {
			n.wsAddr = addr
			n.log.Info("WebSocket enabled", "url", "ws://"+addr.String())
			return nil
		}
	}
	if n.config.WSHost != "" {
		addr, err := n.serve(wsEndpoint, n.rpc.WebsocketHandler(n.config.WSOrigins))
		if err != nil {
			return err
		}
		n.wsAddr = addr
		n.log.Info("WebSocket enabled", "url", "ws://"+addr.String())
	}
	return nil
}

func (n *Node) serve(endpoint string, handler http.Handler) (net.Addr, error) {
	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: httpWriteTimeout,
		IdleTimeout:  httpIdleTimeout,
	}
	go srv.Serve(listener)
	n.servers = append(n.servers, srv)
	return listener.Addr(), nil
}

func (n *Node) stopServers() {
	for _, srv := range n.servers {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(ctx); err != nil {
			n.log.Warn("RPC server shutdown failed", "err", err)
		}
		cancel()
	}
	n.servers = nil
}

// Close stops the RPC endpoints, terminates every event subscription and
// closes the database.
func (n *Node) Close() error {
	n.lock.Lock()
	defer n.lock.Unlock()

	if n.state == closedState {
		return ErrNodeStopped
	}
	n.state = closedState
	close(n.stopWaitC)
	n.stopServers()
	n.sequencer.Stop()
	n.rpc.Stop()
	return n.db.Close()
}

// Wait blocks until the node is closed.
func (n *Node) Wait() {
	<-n.stopWaitC
}

// Attach creates an RPC client attached to an in-process API handler.
func (n *Node) Attach() (*rpc.Client, error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	if n.state == closedState {
		return nil, ErrNodeStopped
	}
	return rpc.DialInProc(n.rpc), nil
}

// HTTPEndpoint returns the URL of the HTTP server, empty if not running.
func (n *Node) HTTPEndpoint() string {
	n.lock.Lock()
	defer n.lock.Unlock()

	if n.httpAddr == nil {
		return ""
	}
	return "http://" + n.httpAddr.String()
}

// WSEndpoint returns the URL of the websocket server, empty if not running.
func (n *Node) WSEndpoint() string {
	n.lock.Lock()
	defer n.lock.Unlock()

	if n.wsAddr == nil {
		return ""
	}
	return "ws://" + n.wsAddr.String()
}

func endpoint(host string, port int) string {
	return net.JoinHostPort(host, fmt.Sprintf("%d", port))
}

func newCorsHandler(srv http.Handler, allowedOrigins []string) http.Handler {
	// disable CORS support if user has not specified a custom CORS configuration
	if len(allowedOrigins) == 0 {
		return srv
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodGet},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	})
	return c.Handler(srv)
}

// wsMux dispatches websocket upgrades to ws and everything else to h.
func wsMux(h, ws http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isWebsocket(r) {
			ws.ServeHTTP(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func isWebsocket(r *http.Request) bool {
	return strings.ToLower(r.Header.Get("Upgrade")) == "websocket" &&
		strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade")
}
