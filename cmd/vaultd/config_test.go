package main

import (
	"os"
	"path/filepath"
	"testing"

	gethmetrics "github.com/ethereum/go-ethereum/metrics"
	"github.com/stretchr/testify/require"
	"github.com/tos-network/nftvault/metrics"
	"github.com/tos-network/nftvault/node"
)

func TestLoadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vaultd.toml")
	err := os.WriteFile(file, []byte(`
[Node]
DataDir = "/var/lib/vault"
HTTPHost = "0.0.0.0"
HTTPPort = 9545
HTTPCors = ["http://localhost:3000"]

[Metrics]
Enabled = true
InfluxDBTags = "host=vault1"
`), 0644)
	require.NoError(t, err)

	cfg := vaultdConfig{Node: node.DefaultConfig, Metrics: metrics.DefaultConfig}
	require.NoError(t, loadConfig(file, &cfg))
	require.Equal(t, "/var/lib/vault", cfg.Node.DataDir)
	require.Equal(t, "0.0.0.0", cfg.Node.HTTPHost)
	require.Equal(t, 9545, cfg.Node.HTTPPort)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.Node.HTTPCors)
	require.Equal(t, node.DefaultConfig.StateCache, cfg.Node.StateCache)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, "host=vault1", cfg.Metrics.InfluxDBTags)
}

func TestLoadConfigUnknownField(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vaultd.toml")
	require.NoError(t, os.WriteFile(file, []byte("[Node]\nHTTPVirtualHosts = [\"*\"]\n"), 0644))

	cfg := vaultdConfig{Node: node.DefaultConfig}
	err := loadConfig(file, &cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "HTTPVirtualHosts")
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := vaultdConfig{Node: node.DefaultConfig, Metrics: metrics.DefaultConfig}
	cfg.Node.WSHost = "127.0.0.1"
	cfg.Node.WSOrigins = []string{"*"}

	out, err := tomlSettings.Marshal(&cfg)
	require.NoError(t, err)
	require.NotContains(t, string(out), "DatabaseHandles")

	file := filepath.Join(t.TempDir(), "dump.toml")
	require.NoError(t, os.WriteFile(file, out, 0644))
	var loaded vaultdConfig
	require.NoError(t, loadConfig(file, &loaded))
	cfg.Node.DatabaseHandles = 0
	require.Equal(t, cfg, loaded)
}

func TestMetricsEnabledByConfigFile(t *testing.T) {
	enabled := gethmetrics.Enabled
	gethmetrics.Enabled = false
	t.Cleanup(func() { gethmetrics.Enabled = enabled })

	file := filepath.Join(t.TempDir(), "vaultd.toml")
	require.NoError(t, os.WriteFile(file, []byte("[Metrics]\nEnabled = true\nHTTP = \"\"\n"), 0644))
	cfg := vaultdConfig{Node: node.DefaultConfig, Metrics: metrics.DefaultConfig}
	require.NoError(t, loadConfig(file, &cfg))
	require.NoError(t, metrics.Setup(cfg.Metrics))

	meter := metrics.Meter("vaultd/test/config")
	meter.Mark(3)
	require.Equal(t, int64(3), meter.Count())
}
