package config

import (
	"flag"
	"os"

	"github.com/recoverlink/recoverlink/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory for the keyring and local database
//	-n string   display name attached to outgoing payloads
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the keyring and local database")
	fs.StringVar(&cfg.DisplayName, "n", cfg.DisplayName, "display name attached to outgoing payloads")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
