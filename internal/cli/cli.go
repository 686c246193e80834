// Package cli implements the rdb command surface: attaching to a
// running target, streaming its debug session to the terminal, and
// exporting captured telemetry.
package cli

import (
	"io"
	"os"

	"github.com/vburojevic/rdb/internal/config"
)

// CLI is the root command tree.
type CLI struct {
	Format  string `help:"Output format (text or json)" enum:"text,json" default:"${config_format}"`
	Verbose bool   `short:"v" help:"Enable verbose debug logging"`
	Quiet   bool   `short:"q" help:"Suppress non-essential output"`

	Attach  AttachCmd  `cmd:"" help:"Attach to a running target and stream its debug session"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// Globals carries resolved global options and streams into command
// Run methods.
type Globals struct {
	Format  string
	Verbose bool
	Quiet   bool
	Stdout  io.Writer
	Stderr  io.Writer

	Config *config.Config

	logger *agentLogger
}

// NewGlobalsWithConfig resolves globals from parsed flags and loaded
// configuration.
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  c.Format,
		Verbose: c.Verbose || cfg.Verbose,
		Quiet:   c.Quiet || cfg.Quiet,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}
	return g
}

// Debug logs a verbose diagnostic line when --verbose is set.
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Debug(format, args...)
	}
}
