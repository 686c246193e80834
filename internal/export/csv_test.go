package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/rdb/internal/telemetry"
	"github.com/vburojevic/rdb/internal/wire"
)

func TestCSV(t *testing.T) {
	perf := telemetry.NewPerfHistory([]telemetry.Monitor{
		{Name: "time/fps"},
		{Name: "memory/static", Kind: telemetry.MonitorMemory},
	}, 0)
	perf.AddFrame([]float64{60, 1024})
	perf.AddFrame([]float64{58, 2048})

	prof := telemetry.NewProfiler()
	prof.AddSignature(7, "res://player.gd::42::jump")
	prof.AddFrame(wire.ServersProfilerFrame{
		FrameNumber: 5,
		ScriptFunctions: []wire.ScriptFunction{
			{SignatureID: 7, CallCount: 2, TotalTime: 0.25, SelfTime: 0.5},
		},
	}, false)

	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, perf, prof))

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, "time/fps,memory/static", lines[0])
	// Oldest sample first, so the file reads chronologically.
	assert.Equal(t, "60,1024", lines[1])
	assert.Equal(t, "58,2048", lines[2])
	assert.Empty(t, lines[3])
	assert.Equal(t, "frame,category,name,script,line,calls,self,total", lines[4])
	assert.Equal(t, "5,Script Functions,jump,res://player.gd,42,2,0.5,0.25", lines[5])
}

func TestCSVNoProfiler(t *testing.T) {
	perf := telemetry.NewPerfHistory([]telemetry.Monitor{{Name: "time/fps"}}, 0)
	perf.AddFrame([]float64{60})

	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, perf, nil))

	assert.Equal(t, "time/fps\n60\n\n", buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCSVWriteFailure(t *testing.T) {
	perf := telemetry.NewPerfHistory([]telemetry.Monitor{{Name: "time/fps"}}, 0)
	assert.Error(t, CSV(failWriter{}, perf, nil))
}
