package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/vburojevic/rdb/internal/wire"
)

// maxFrameSize bounds a single envelope frame. Scene dumps can be
// large; anything beyond this indicates a corrupt length prefix.
const maxFrameSize = 32 << 20

// TCPPeer frames CBOR-encoded envelopes over a TCP connection with a
// 4-byte big-endian length prefix. A background read loop feeds the
// inbound queue so HasMessage stays a non-blocking poll.
type TCPPeer struct {
	conn net.Conn
	in   *queue

	writeMu sync.Mutex

	closeOnce sync.Once
	closeErr  error
}

// Compile-time interface check.
var _ Peer = (*TCPPeer)(nil)

// Dial connects to a listening remote debugger endpoint.
func Dial(ctx context.Context, address string) (*TCPPeer, error) {
	conn, err := (&net.Dialer{Timeout: 10 * time.Second}).DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", address, err)
	}
	return NewTCPPeer(conn), nil
}

// NewTCPPeer wraps an established connection and starts its read
// loop. The peer takes ownership of conn.
func NewTCPPeer(conn net.Conn) *TCPPeer {
	p := &TCPPeer{conn: conn, in: &queue{}}
	go p.readLoop()
	return p
}

func (p *TCPPeer) readLoop() {
	for {
		frame, err := readFrame(p.conn)
		if err != nil {
			// EOF or a framing fault both end the stream; queued
			// envelopes stay readable until drained.
			p.in.close()
			return
		}
		var env []any
		if err := wire.Unmarshal(frame, &env); err != nil {
			p.in.close()
			_ = p.Close()
			return
		}
		if !p.in.push(env) {
			return
		}
	}
}

func readFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	size := binary.BigEndian.Uint32(header[:])
	if size == 0 || size > maxFrameSize {
		return nil, fmt.Errorf("transport: invalid frame size %d", size)
	}
	frame := make([]byte, size)
	if _, err := io.ReadFull(r, frame); err != nil {
		return nil, err
	}
	return frame, nil
}

// HasMessage reports whether an inbound envelope is queued.
func (p *TCPPeer) HasMessage() bool {
	return p.in.len() > 0
}

// GetMessage pops the oldest inbound envelope.
func (p *TCPPeer) GetMessage() ([]any, error) {
	return p.in.pop()
}

// PutMessage encodes and writes one envelope frame.
func (p *TCPPeer) PutMessage(msg []any) error {
	data, err := wire.Marshal(msg)
	if err != nil {
		return fmt.Errorf("transport: encode message: %w", err)
	}
	if len(data) > maxFrameSize {
		return fmt.Errorf("transport: message exceeds frame limit (%d bytes)", len(data))
	}
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(data)))

	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if _, err := p.conn.Write(header[:]); err != nil {
		return err
	}
	_, err = p.conn.Write(data)
	return err
}

// Close tears down the connection. Idempotent.
func (p *TCPPeer) Close() error {
	p.closeOnce.Do(func() {
		p.in.close()
		p.closeErr = p.conn.Close()
	})
	return p.closeErr
}
