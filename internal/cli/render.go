package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/rdb/internal/debugger"
)

// renderSummary prints a detach summary: error/warning totals, the
// memory report, and performance watermarks. Tables on a TTY, plain
// lines otherwise.
func renderSummary(globals *Globals, sess *debugger.Session) {
	errCount, warnCount := sess.Errors.Counts()
	fmt.Fprintf(globals.Stdout, "\nSession summary: %d errors, %d warnings\n", errCount, warnCount)

	tty := false
	if f, ok := globals.Stdout.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd())
	}

	if infos := sess.Memory.Infos(); len(infos) > 0 {
		fmt.Fprintf(globals.Stdout, "\nVideo memory (%s total):\n", sess.Memory.TotalLabel())
		if tty {
			table := tablewriter.NewWriter(globals.Stdout)
			table.Header("Resource", "Type", "Format", "Usage")
			for _, ri := range infos {
				table.Append(ri.Path, ri.Type, ri.Format, strconv.FormatInt(ri.Bytes, 10))
			}
			table.Render()
		} else {
			for _, ri := range infos {
				fmt.Fprintf(globals.Stdout, "  %s\t%s\t%s\t%d\n", ri.Path, ri.Type, ri.Format, ri.Bytes)
			}
		}
	}

	if sess.Perf.Len() > 0 {
		fmt.Fprintf(globals.Stdout, "\nPerformance watermarks (%d samples):\n", sess.Perf.Len())
		monitors := sess.Perf.Monitors()
		if tty {
			table := tablewriter.NewWriter(globals.Stdout)
			table.Header("Monitor", "Peak")
			for i, m := range monitors {
				table.Append(m.Name, sess.Perf.Label(i, sess.Perf.Max(i)))
			}
			table.Render()
		} else {
			for i, m := range monitors {
				fmt.Fprintf(globals.Stdout, "  %s\t%s\n", m.Name, sess.Perf.Label(i, sess.Perf.Max(i)))
			}
		}
	}
}
