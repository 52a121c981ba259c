package config

import (
	"flag"
	"os"
	"time"

	"github.com/szrnka-peter/give-my-secret/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-s string   base64 AES key for the deterministic cipher
//	-i string   fixed IV for the deterministic cipher
//	-k string   keystore base path (local file store)
//	-f string   filestore kind ("local" or "s3")
//	-m string   metrics bind address (e.g., ":9090")
//	-r int      rotation interval, seconds
//	-g int      rotation grace window, seconds
//	-n          multi-node mode (runner-id coordination)
//
// The function first filters os.Args to only the flags it recognizes
// using flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-i", "-k", "-f", "-m", "-r", "-g", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.CryptoSecret, "s", config.CryptoSecret, "base64 crypto secret key")
	fs.StringVar(&config.CryptoIV, "i", config.CryptoIV, "crypto IV")
	fs.StringVar(&config.KeystoreBasePath, "k", config.KeystoreBasePath, "keystore base path")

	filestore := fs.String("f", string(config.Filestore), "filestore kind (local|s3)")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "metrics bind address")

	rotationInterval := fs.Int("r", int(config.RotationInterval.Seconds()), "rotation interval (in seconds)")
	rotationGrace := fs.Int("g", int(config.RotationGrace.Seconds()), "rotation grace window (in seconds)")

	fs.BoolVar(&config.MultiNode, "n", config.MultiNode, "multi-node mode")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.Filestore = FilestoreKind(*filestore)
	config.RotationInterval = time.Duration(*rotationInterval) * time.Second
	config.RotationGrace = time.Duration(*rotationGrace) * time.Second
}
