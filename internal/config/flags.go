package config

import (
	"flag"
	"os"

	"github.com/mlebedeva/tastebook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   storage driver: file, sqlite, postgres, or s3
//	-f string   path of the JSON store file (file driver)
//	-dsn string database DSN (sqlite or postgres driver)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-f", "-dsn"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageDriver, "d", cfg.StorageDriver, "storage driver (file|sqlite|postgres|s3)")
	fs.StringVar(&cfg.FileStorePath, "f", cfg.FileStorePath, "path of the JSON store file")
	dsn := fs.String("dsn", "", "database DSN for the sqlite or postgres driver")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *dsn != "" {
		switch cfg.StorageDriver {
		case "postgres":
			cfg.PostgresDSN = *dsn
		default:
			cfg.SQLiteDSN = *dsn
		}
	}
}
