package node

import (
	"path/filepath"
)

const (
	DefaultHTTPHost = "localhost" // Default host interface for the HTTP RPC server
	DefaultHTTPPort = 8645        // Default TCP port for the HTTP RPC server
	DefaultWSHost   = "localhost" // Default host interface for the websocket RPC server
	DefaultWSPort   = 8646        // Default TCP port for the websocket RPC server

	datadirDatabase = "vaultdata" // Path within the datadir to the state database
)

// Config represents a small collection of configuration values to fine tune
// the vault node. These values can be further extended by the daemon's own
// TOML section.
type Config struct {
	// DataDir is the file system folder the node uses for its state database.
	// An empty DataDir runs the node on an ephemeral in-memory store.
	DataDir string

	// DatabaseCache is the LevelDB cache allowance in megabytes.
	DatabaseCache int

	// DatabaseHandles is the number of open files LevelDB may hold.
	DatabaseHandles int `toml:"-"`

	// StateCache is the number of committed storage words kept in memory.
	StateCache int

	// HTTPHost is the host interface on which to start the HTTP RPC server. If
	// this field is empty, no HTTP API endpoint will be started.
	HTTPHost string

	// HTTPPort is the TCP port number on which to start the HTTP RPC server.
	// Zero picks a random port.
	HTTPPort int `toml:",omitempty"`

	// HTTPCors is the Cross-Origin Resource Sharing header to send to requesting
	// clients. Please be aware that CORS is a browser enforced security, it's fully
	// useless for custom HTTP clients.
	HTTPCors []string `toml:",omitempty"`

	// WSHost is the host interface on which to start the websocket RPC server. If
	// this field is empty, no websocket API endpoint will be started.
	WSHost string

	// WSPort is the TCP port number on which to start the websocket RPC server.
	// When WSHost and WSPort equal the HTTP endpoint both are served on one
	// listener.
	WSPort int `toml:",omitempty"`

	// WSOrigins is the list of domain to accept websocket requests from. Please be
	// aware that the server can only act upon the HTTP request the client sends and
	// cannot verify the validity of the request header.
	WSOrigins []string `toml:",omitempty"`
}

// DefaultConfig contains reasonable default settings.
var DefaultConfig = Config{
	DataDir:         DefaultDataDir(),
	DatabaseCache:   64,
	DatabaseHandles: 256,
	StateCache:      4096,
	HTTPHost:        DefaultHTTPHost,
	HTTPPort:        DefaultHTTPPort,
	WSPort:          DefaultWSPort,
}

// DatabasePath returns the location of the state database, empty for an
// in-memory node.
func (c *Config) DatabasePath() string {
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, datadirDatabase)
}
