package transport

import "sync"

// queue is an unbounded FIFO of inbound envelopes. Unbounded because
// the drain budget defers bursts to later ticks and the transport
// must hold whatever has not been drained yet.
type queue struct {
	mu     sync.Mutex
	items  [][]any
	closed bool
}

func (q *queue) push(msg []any) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items = append(q.items, msg)
	return true
}

func (q *queue) pop() ([]any, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		if q.closed {
			return nil, ErrClosed
		}
		return nil, ErrNoMessage
	}
	msg := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return msg, nil
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}
