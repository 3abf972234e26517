package config

import (
	"flag"
	"os"

	"github.com/avasilyev/cmskeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address of the CMS backend (default from Config)
//	-d string   path to the local vault database
//	-k string   path to the vault key file
//	-l string   log level
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "address of the CMS backend")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local vault database")
	fs.StringVar(&cfg.KeyPath, "k", cfg.KeyPath, "path to the vault key file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
