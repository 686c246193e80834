package telemetry

import (
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/vburojevic/rdb/internal/wire"
)

// MemoryUsage mirrors the target's resource memory report. It is
// rebuilt wholesale from every "memory:usage" message.
type MemoryUsage struct {
	infos []wire.ResourceInfo
}

// NewMemoryUsage creates an empty memory mirror.
func NewMemoryUsage() *MemoryUsage {
	return &MemoryUsage{}
}

// Rebuild replaces the resource list.
func (m *MemoryUsage) Rebuild(infos []wire.ResourceInfo) {
	m.infos = make([]wire.ResourceInfo, len(infos))
	copy(m.infos, infos)
}

// Infos returns the current resource list.
func (m *MemoryUsage) Infos() []wire.ResourceInfo { return m.infos }

// TotalBytes sums the per-resource byte counts.
func (m *MemoryUsage) TotalBytes() int64 {
	return lo.SumBy(m.infos, func(ri wire.ResourceInfo) int64 { return ri.Bytes })
}

// TotalLabel returns the humanized total.
func (m *MemoryUsage) TotalLabel() string {
	total := m.TotalBytes()
	if total < 0 {
		total = 0
	}
	return humanize.IBytes(uint64(total))
}

// Reset drops the resource list.
func (m *MemoryUsage) Reset() { m.infos = nil }
