package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/rdb/internal/wire"
)

func TestNetworkProfilerAccumulates(t *testing.T) {
	n := NewNetworkProfiler()

	n.AddNodeFrame(wire.NetworkNodeInfo{NodeID: 1, NodePath: "/root/Game/Player", IncomingRPC: 2, OutgoingRPC: 1})
	n.AddNodeFrame(wire.NetworkNodeInfo{NodeID: 2, NodePath: "/root/Game/Enemy", OutgoingRSet: 4})
	n.AddNodeFrame(wire.NetworkNodeInfo{NodeID: 1, IncomingRPC: 3, IncomingRSet: 1})

	nodes := n.Nodes()
	require.Len(t, nodes, 2)

	// First-seen order, counters summed across frames.
	assert.Equal(t, int64(1), nodes[0].NodeID)
	assert.Equal(t, "/root/Game/Player", nodes[0].NodePath)
	assert.Equal(t, 5, nodes[0].IncomingRPC)
	assert.Equal(t, 1, nodes[0].IncomingRSet)
	assert.Equal(t, 1, nodes[0].OutgoingRPC)

	assert.Equal(t, int64(2), nodes[1].NodeID)
	assert.Equal(t, 4, nodes[1].OutgoingRSet)
}

func TestNetworkProfilerPathUpdates(t *testing.T) {
	n := NewNetworkProfiler()

	n.AddNodeFrame(wire.NetworkNodeInfo{NodeID: 1, NodePath: "/root/Old"})
	n.AddNodeFrame(wire.NetworkNodeInfo{NodeID: 1, NodePath: "/root/New"})
	n.AddNodeFrame(wire.NetworkNodeInfo{NodeID: 1})

	nodes := n.Nodes()
	require.Len(t, nodes, 1)
	// Empty paths never clobber a known one.
	assert.Equal(t, "/root/New", nodes[0].NodePath)
}

func TestNetworkProfilerBandwidth(t *testing.T) {
	n := NewNetworkProfiler()

	n.SetBandwidth(2048, 512)
	in, out := n.Bandwidth()
	assert.Equal(t, int64(2048), in)
	assert.Equal(t, int64(512), out)
}

func TestNetworkProfilerReset(t *testing.T) {
	n := NewNetworkProfiler()
	n.AddNodeFrame(wire.NetworkNodeInfo{NodeID: 1, NodePath: "/root/Game"})
	n.SetBandwidth(100, 200)

	n.Reset()

	assert.Empty(t, n.Nodes())
	in, out := n.Bandwidth()
	assert.Zero(t, in)
	assert.Zero(t, out)
}
