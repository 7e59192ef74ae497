// Package metrics holds the vaultd metrics configuration and starts the
// configured exporters over the go-ethereum metrics registry.
//
// vaultd records sequencer outcomes (sequencer/actions/{success,failed,
// rejected}, sequencer/apply) and state commit activity (state/update/*,
// state/delete/storage, state/commit/*, state/revert, state/cache/*). They
// can be scraped from the stand-alone HTTP endpoint or pushed to InfluxDB
// under the "nftvault." prefix.
package metrics

// Config is the [Metrics] section of the vaultd TOML file.
type Config struct {
	// Enabled turns collection on. Meters stay no-ops until it is set.
	Enabled bool `toml:",omitempty"`
	// EnabledExpensive adds the go-ethereum "expensive" meters.
	EnabledExpensive bool `toml:",omitempty"`

	// HTTP and Port select the stand-alone endpoint. An empty HTTP disables it.
	HTTP string `toml:",omitempty"`
	Port int    `toml:",omitempty"`

	// InfluxDB v1 push.
	EnableInfluxDB   bool   `toml:",omitempty"`
	InfluxDBEndpoint string `toml:",omitempty"`
	InfluxDBDatabase string `toml:",omitempty"`
	InfluxDBUsername string `toml:",omitempty"`
	InfluxDBPassword string `toml:",omitempty"`
	// InfluxDBTags is a comma separated key=value list attached to every point.
	InfluxDBTags string `toml:",omitempty"`

	// InfluxDB v2 push, exclusive with v1. Shares the endpoint and tags.
	EnableInfluxDBV2     bool   `toml:",omitempty"`
	InfluxDBToken        string `toml:",omitempty"`
	InfluxDBBucket       string `toml:",omitempty"`
	InfluxDBOrganization string `toml:",omitempty"`
}

// DefaultConfig leaves collection off and points the exporters at a local
// InfluxDB holding an "nftvault" database or bucket.
var DefaultConfig = Config{
	HTTP:             "127.0.0.1",
	Port:             6060,
	InfluxDBEndpoint: "http://localhost:8086",
	InfluxDBDatabase: "nftvault",
	InfluxDBUsername: "test",
	InfluxDBPassword: "test",
	InfluxDBTags:     "host=localhost",

	InfluxDBToken:        "test",
	InfluxDBBucket:       "nftvault",
	InfluxDBOrganization: "nftvault",
}
