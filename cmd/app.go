// Package cmd implements the savesim command line application.
package cmd

import (
	"flag"
	"fmt"

	"github.com/gmonteiro13/simulador-investimentos/config"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands are all the savesim subcommands.
var Commands = []subcommands.Command{
	&simulateCmd{},
	&pricesCmd{},
	&runsCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&simulateCmd{}, "simulation")
	c.Register(&pricesCmd{}, "simulation")
	c.Register(&runsCmd{}, "simulation")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var verbose = flag.Bool("v", false, "Log debug messages, whatever the configured level.")

// configureLogging sets the global log level from the configuration and the -v flag.
func configureLogging(cfg *config.Config) error {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if *verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return nil
}
