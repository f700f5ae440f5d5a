package main

import (
	"github.com/spf13/pflag"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
	logFormat  string
	color      string
}

func addGlobalFlags(fs *pflag.FlagSet, flags *globalFlags) {
	fs.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	fs.BoolVarP(&flags.debug, "debug", "d", false, "Enable debug logging")
	fs.StringVar(&flags.logFormat, "log-format", "", "Log format: console or json")
	fs.StringVar(&flags.color, "color", "", "Colour log output: auto, always, or never")
}

func addDryRunFlag(fs *pflag.FlagSet, target *bool, usage string) {
	fs.BoolVarP(target, "dry-run", "n", false, usage)
}

func addLimitFlag(fs *pflag.FlagSet, target *int) {
	fs.IntVarP(target, "limit", "l", 20, "Maximum number of rows to show")
}
