package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/vburojevic/rdb/internal/cli"
	"github.com/vburojevic/rdb/internal/config"
)

const quickStart = `rdb - remote debug bridge for running targets

Quick start:
  rdb attach -a 127.0.0.1:6007          Attach to a target
  rdb attach -a HOST:PORT --profile     Attach with the profiler on
  rdb attach --csv out.csv              Export telemetry on detach

For help:
  rdb --help                            All commands and flags
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format":      cfg.Format,
		"config_address":     cfg.Defaults.Address,
		"config_history_cap": strconv.Itoa(cfg.Defaults.HistoryCap),
		"config_live_debug":  strconv.FormatBool(cfg.Defaults.LiveDebug),
	}

	ctx := kong.Parse(&c,
		kong.Name("rdb"),
		kong.Description("rdb: attach to a running target's debug port, drive breakpoints, and capture telemetry"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	// Create globals with config fallbacks
	globals := cli.NewGlobalsWithConfig(&c, cfg)
	err = ctx.Run(globals)
	if err != nil {
		os.Exit(1)
	}
}
