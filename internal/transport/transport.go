// Package transport provides the ordered, bidirectional message
// channel between the editor-side debugger and the running target.
//
// A Peer exchanges discrete envelopes ([]any pairs of tag and
// payload); delivery ordering and buffering of undrained messages
// across ticks are the transport's responsibility. The debugger core
// never blocks on a Peer: HasMessage is a non-blocking poll and
// GetMessage only succeeds after HasMessage reported true.
package transport

import "errors"

var (
	// ErrClosed reports use of a closed peer.
	ErrClosed = errors.New("transport: peer closed")

	// ErrNoMessage reports a GetMessage call with nothing queued.
	ErrNoMessage = errors.New("transport: no message pending")
)

// Peer is one end of the debug channel.
type Peer interface {
	// HasMessage reports whether an inbound envelope is queued.
	HasMessage() bool

	// GetMessage pops the oldest queued inbound envelope. It never
	// blocks; with nothing queued it returns ErrNoMessage, and after
	// the peer is closed with its queue drained it returns ErrClosed.
	GetMessage() ([]any, error)

	// PutMessage sends an envelope to the remote side. Sends are
	// fire-and-forget; there is no acknowledgment or retry.
	PutMessage(msg []any) error

	// Close tears down the channel. Idempotent.
	Close() error
}
