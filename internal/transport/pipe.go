package transport

import "github.com/vburojevic/rdb/internal/wire"

// PipePeer is an in-memory peer pair for tests and same-process
// targets. Envelopes round-trip through the CBOR codec so a pipe
// normalizes value types exactly like a network transport would.
type PipePeer struct {
	in  *queue
	out *queue
}

// Compile-time interface check.
var _ Peer = (*PipePeer)(nil)

// NewPipe returns two connected peers; messages put on one side come
// out of the other in order.
func NewPipe() (*PipePeer, *PipePeer) {
	a := &queue{}
	b := &queue{}
	return &PipePeer{in: a, out: b}, &PipePeer{in: b, out: a}
}

// HasMessage reports whether an inbound envelope is queued.
func (p *PipePeer) HasMessage() bool {
	return p.in.len() > 0
}

// GetMessage pops the oldest inbound envelope.
func (p *PipePeer) GetMessage() ([]any, error) {
	return p.in.pop()
}

// PutMessage delivers an envelope to the other side after a codec
// round trip.
func (p *PipePeer) PutMessage(msg []any) error {
	normalized, err := roundTrip(msg)
	if err != nil {
		return err
	}
	if !p.out.push(normalized) {
		return ErrClosed
	}
	return nil
}

// Close closes both directions. Envelopes already queued on the other
// side stay readable until drained.
func (p *PipePeer) Close() error {
	p.in.close()
	p.out.close()
	return nil
}

func roundTrip(msg []any) ([]any, error) {
	data, err := wire.Marshal(msg)
	if err != nil {
		return nil, err
	}
	var out []any
	if err := wire.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
