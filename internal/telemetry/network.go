package telemetry

import "github.com/vburojevic/rdb/internal/wire"

// NodeTraffic is the cumulative RPC traffic for one remote node. The
// node ID is an opaque identifier assigned by the target.
type NodeTraffic struct {
	NodeID       int64
	NodePath     string
	IncomingRPC  int
	IncomingRSet int
	OutgoingRPC  int
	OutgoingRSet int
}

// NetworkProfiler accumulates per-node RPC traffic and the current
// bandwidth readings.
type NetworkProfiler struct {
	nodes map[int64]*NodeTraffic
	// order preserves first-seen insertion order for stable listing.
	order []int64

	bandwidthIn  int64
	bandwidthOut int64
}

// NewNetworkProfiler creates an empty network profiler aggregator.
func NewNetworkProfiler() *NetworkProfiler {
	return &NetworkProfiler{nodes: make(map[int64]*NodeTraffic)}
}

// AddNodeFrame merges per-node counters from one profiler frame.
func (n *NetworkProfiler) AddNodeFrame(info wire.NetworkNodeInfo) {
	node, ok := n.nodes[info.NodeID]
	if !ok {
		node = &NodeTraffic{NodeID: info.NodeID, NodePath: info.NodePath}
		n.nodes[info.NodeID] = node
		n.order = append(n.order, info.NodeID)
	}
	if info.NodePath != "" {
		node.NodePath = info.NodePath
	}
	node.IncomingRPC += info.IncomingRPC
	node.IncomingRSet += info.IncomingRSet
	node.OutgoingRPC += info.OutgoingRPC
	node.OutgoingRSet += info.OutgoingRSet
}

// SetBandwidth records the latest incoming/outgoing bytes-per-second
// readings.
func (n *NetworkProfiler) SetBandwidth(incoming, outgoing int64) {
	n.bandwidthIn = incoming
	n.bandwidthOut = outgoing
}

// Bandwidth returns the latest readings.
func (n *NetworkProfiler) Bandwidth() (incoming, outgoing int64) {
	return n.bandwidthIn, n.bandwidthOut
}

// Nodes returns per-node traffic in first-seen order.
func (n *NetworkProfiler) Nodes() []NodeTraffic {
	out := make([]NodeTraffic, 0, len(n.order))
	for _, id := range n.order {
		out = append(out, *n.nodes[id])
	}
	return out
}

// Reset drops all traffic and bandwidth state.
func (n *NetworkProfiler) Reset() {
	n.nodes = make(map[int64]*NodeTraffic)
	n.order = nil
	n.bandwidthIn = 0
	n.bandwidthOut = 0
}
