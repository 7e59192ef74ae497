package metrics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	gethmetrics "github.com/ethereum/go-ethereum/metrics"
	"github.com/ethereum/go-ethereum/metrics/exp"
	"github.com/ethereum/go-ethereum/metrics/influxdb"
)

// exportInterval is the push period of the InfluxDB reporters.
const exportInterval = 10 * time.Second

// namespace prefixes every measurement pushed to InfluxDB.
const namespace = "nftvault."

var errExclusiveInflux = errors.New("metrics: InfluxDB v1 and v2 exports are mutually exclusive")

// Validate checks the exporter settings for conflicts.
func (c *Config) Validate() error {
	if c.EnableInfluxDB && c.EnableInfluxDBV2 {
		return errExclusiveInflux
	}
	if c.EnableInfluxDB && (c.InfluxDBUsername == "" || c.InfluxDBPassword == "") {
		return errors.New("metrics: InfluxDB v1 export requires a username and password")
	}
	if c.EnableInfluxDBV2 && (c.InfluxDBToken == "" || c.InfluxDBBucket == "" || c.InfluxDBOrganization == "") {
		return errors.New("metrics: InfluxDB v2 export requires a token, bucket and organization")
	}
	return nil
}

// Setup enables collection and starts the configured exporters. It is a
// no-op when metrics are disabled.
func Setup(c Config) error {
	if !c.Enabled {
		return nil
	}
	if err := c.Validate(); err != nil {
		return err
	}
	gethmetrics.Enabled = true
	gethmetrics.EnabledExpensive = c.EnabledExpensive
	log.Info("Enabling metrics collection")

	switch {
	case c.EnableInfluxDB:
		log.Info("Enabling metrics export to InfluxDB", "endpoint", c.InfluxDBEndpoint)
		go influxdb.InfluxDBWithTags(gethmetrics.DefaultRegistry, exportInterval, c.InfluxDBEndpoint, c.InfluxDBDatabase, c.InfluxDBUsername, c.InfluxDBPassword, namespace, SplitTags(c.InfluxDBTags))
	case c.EnableInfluxDBV2:
		log.Info("Enabling metrics export to InfluxDB (v2)", "endpoint", c.InfluxDBEndpoint)
		go influxdb.InfluxDBV2WithTags(gethmetrics.DefaultRegistry, exportInterval, c.InfluxDBEndpoint, c.InfluxDBToken, c.InfluxDBBucket, c.InfluxDBOrganization, namespace, SplitTags(c.InfluxDBTags))
	}
	if c.HTTP != "" {
		address := fmt.Sprintf("%s:%d", c.HTTP, c.Port)
		log.Info("Enabling stand-alone metrics HTTP endpoint", "address", address)
		exp.Setup(address)
	}
	return nil
}

// SplitTags parses a comma separated key=value list. Malformed entries are
// dropped.
func SplitTags(tagsFlag string) map[string]string {
	tags := strings.Split(tagsFlag, ",")
	tagsMap := map[string]string{}

	for _, t := range tags {
		if t != "" {
			kv := strings.Split(t, "=")

			if len(kv) == 2 {
				tagsMap[kv[0]] = kv[1]
			}
		}
	}

	return tagsMap
}
