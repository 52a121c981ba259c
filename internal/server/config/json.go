package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/szrnka-peter/give-my-secret/internal/flagx"
	"github.com/szrnka-peter/give-my-secret/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It relies on timex.Duration so JSON can specify
// intervals either as duration strings ("55s") or as integer
// nanoseconds. After unmarshalling, its fields are copied into the
// runtime Config which uses time.Duration.
type JsonConfig struct {
	DatabaseDSN          string         `json:"database_dsn"`
	CryptoSecret         string         `json:"crypto_secret"`
	CryptoIV             string         `json:"crypto_iv"`
	DigestSalt           string         `json:"digest_salt"`
	RotationInterval     timex.Duration `json:"rotation_interval"`
	RotationGrace        timex.Duration `json:"rotation_grace"`
	MultiNode            bool           `json:"multi_node"`
	KeystoreBasePath     string         `json:"keystore_base_path"`
	Filestore            string         `json:"filestore"`
	S3RootUser           string         `json:"s3_root_user"`
	S3RootPassword       string         `json:"s3_root_password"`
	S3Bucket             string         `json:"s3_bucket"`
	S3Region             string         `json:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint"`
	MetricsAddr          string         `json:"metrics_addr"`
	EventBufferSize      int            `json:"event_buffer_size"`
	EventCleanupInterval timex.Duration `json:"event_cleanup_interval"`
	PropertyCacheTTL     timex.Duration `json:"property_cache_ttl"`
}

// parseJson loads configuration values from an optional JSON file whose
// path is taken from the -c/-config flags. Missing file path means no
// overlay; an unreadable or invalid file panics, matching flag parsing
// behaviour.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.CryptoSecret != "" {
		config.CryptoSecret = c.CryptoSecret
	}
	if c.CryptoIV != "" {
		config.CryptoIV = c.CryptoIV
	}
	if c.DigestSalt != "" {
		config.DigestSalt = c.DigestSalt
	}
	if c.RotationInterval.Duration != 0 {
		config.RotationInterval = time.Duration(c.RotationInterval.Duration)
	}
	if c.RotationGrace.Duration != 0 {
		config.RotationGrace = time.Duration(c.RotationGrace.Duration)
	}
	config.MultiNode = c.MultiNode
	if c.KeystoreBasePath != "" {
		config.KeystoreBasePath = c.KeystoreBasePath
	}
	if c.Filestore != "" {
		config.Filestore = FilestoreKind(c.Filestore)
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.MetricsAddr != "" {
		config.MetricsAddr = c.MetricsAddr
	}
	if c.EventBufferSize != 0 {
		config.EventBufferSize = c.EventBufferSize
	}
	if c.EventCleanupInterval.Duration != 0 {
		config.EventCleanupInterval = time.Duration(c.EventCleanupInterval.Duration)
	}
	if c.PropertyCacheTTL.Duration != 0 {
		config.PropertyCacheTTL = time.Duration(c.PropertyCacheTTL.Duration)
	}
}
