package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vburojevic/rdb/internal/debugger"
	"github.com/vburojevic/rdb/internal/export"
	"github.com/vburojevic/rdb/internal/telemetry"
	"github.com/vburojevic/rdb/internal/transport"
)

// AttachCmd attaches to a running target's debug port and streams the
// session until interrupted or the remote requests shutdown.
type AttachCmd struct {
	Address         string   `short:"a" default:"${config_address}" help:"Target debug address (host:port)"`
	Breakpoint      []string `short:"b" help:"Breakpoint as file:line (can be repeated)"`
	SkipBreakpoints bool     `help:"Skip breakpoints on the target"`
	LiveDebug       bool     `default:"${config_live_debug}" help:"Enable the live-edit relay"`
	Profile         bool     `help:"Enable the script/server profiler"`
	ProfileVisual   bool     `help:"Enable the CPU/GPU frame profiler"`
	ProfileNetwork  bool     `help:"Enable the network profiler"`
	ReloadScripts   string   `type:"existingdir" help:"Watch a directory and hot-reload target scripts on change"`
	CSV             string   `help:"Export captured telemetry to a CSV file on detach"`
	HistoryCap      int      `default:"${config_history_cap}" help:"Performance history cap (0 = unlimited)"`
}

type parsedBreakpoint struct {
	file string
	line int
}

// Run executes the attach command
func (c *AttachCmd) Run(globals *Globals) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	breakpoints, err := parseBreakpoints(c.Breakpoint)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_BREAKPOINT", err.Error(),
			"use file:line, e.g. res://player.gd:42")
	}

	sink := newStreamSink(globals)
	sess := c.newSession(globals, sink)
	globals.Debug("Dialing target at %s", c.Address)

	peer, err := transport.Dial(ctx, c.Address)
	if err != nil {
		return outputErrorCommon(globals, "DIAL_FAILED", err.Error(),
			"is the target running with remote debug enabled?")
	}

	if err := sess.Start(peer); err != nil {
		return outputErrorCommon(globals, "SESSION_START_FAILED", err.Error())
	}
	defer sess.Stop()

	sess.SetLiveDebug(c.LiveDebug)
	if c.SkipBreakpoints {
		sess.SetSkipBreakpoints(true)
	}
	for _, bp := range breakpoints {
		sess.SetBreakpoint(bp.file, bp.line, true)
	}
	profilers := []struct {
		enabled bool
		kind    debugger.ProfilerKind
	}{
		{c.Profile, debugger.ProfilerServers},
		{c.ProfileVisual, debugger.ProfilerVisual},
		{c.ProfileNetwork, debugger.ProfilerNetwork},
	}
	for _, p := range profilers {
		if !p.enabled {
			continue
		}
		if err := sess.SetProfilerEnabled(p.kind, true); err != nil {
			return outputErrorCommon(globals, "PROFILER_FAILED", err.Error())
		}
	}
	sess.RequestSceneTree()

	if c.ReloadScripts != "" {
		stop, err := watchScripts(ctx, c.ReloadScripts, sess, globals)
		if err != nil {
			return outputErrorCommon(globals, "WATCH_FAILED", err.Error())
		}
		defer stop()
	}

	// Block until interrupted or the session tears down.
	select {
	case <-ctx.Done():
	case <-sink.Done():
	}
	sess.Stop()

	if c.CSV != "" {
		if err := exportCSV(c.CSV, sess); err != nil {
			return outputErrorCommon(globals, "EXPORT_FAILED", err.Error())
		}
		globals.Debug("Exported telemetry to %s", c.CSV)
	}

	if !globals.Quiet && globals.Format == "text" {
		renderSummary(globals, sess)
	}
	return nil
}

// newSession builds the verbose logger first and hands it to the
// session core, so unknown-tag and decode warnings surface under
// --verbose. The session-ID closure reads the session lazily.
func (c *AttachCmd) newSession(globals *Globals, sink *streamSink) *debugger.Session {
	var sess *debugger.Session
	globals.logger = newAgentLogger(globals, func() string {
		if sess == nil {
			return ""
		}
		return sess.ID().String()
	})

	sess = debugger.New(debugger.Options{
		Logger:               globals.logger.Sugared(),
		Sink:                 sink,
		Monitors:             telemetry.DefaultMonitors(),
		DrainBudget:          time.Duration(globals.Config.Defaults.DrainBudgetMs) * time.Millisecond,
		TickInterval:         time.Duration(globals.Config.Defaults.TickMs) * time.Millisecond,
		PerfHistoryCap:       c.HistoryCap,
		ProfilerMaxFunctions: globals.Config.Profiler.MaxFunctions,
	})
	return sess
}

func parseBreakpoints(specs []string) ([]parsedBreakpoint, error) {
	var out []parsedBreakpoint
	for _, spec := range specs {
		i := strings.LastIndex(spec, ":")
		if i <= 0 || i == len(spec)-1 {
			return nil, fmt.Errorf("invalid breakpoint %q", spec)
		}
		line, err := strconv.Atoi(spec[i+1:])
		if err != nil || line <= 0 {
			return nil, fmt.Errorf("invalid breakpoint line in %q", spec)
		}
		out = append(out, parsedBreakpoint{file: spec[:i], line: line})
	}
	return out, nil
}

// watchScripts reloads target scripts whenever a file under dir
// changes.
func watchScripts(ctx context.Context, dir string, sess *debugger.Session, globals *Globals) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					globals.Debug("Script change detected: %s", ev.Name)
					sess.ReloadScripts()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				globals.Debug("Watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}

func exportCSV(path string, sess *debugger.Session) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.CSV(f, sess.Perf, sess.Profiler); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
