// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"sync"

	"github.com/syncthing/ssdp/lib/ssdp"
)

// queue is an unbounded FIFO between a session and its consumer. push never
// blocks.
type queue struct {
	mut    sync.Mutex
	items  []ssdp.Message
	closed bool
	avail  chan struct{}
}

func newQueue() *queue {
	return &queue{
		avail: make(chan struct{}, 1),
	}
}

func (q *queue) push(m ssdp.Message) {
	q.mut.Lock()
	if q.closed {
		q.mut.Unlock()
		return
	}
	q.items = append(q.items, m)
	q.mut.Unlock()
	q.signal()
}

// close makes pop return false once the queue is drained.
func (q *queue) close() {
	q.mut.Lock()
	q.closed = true
	q.mut.Unlock()
	q.signal()
}

func (q *queue) signal() {
	select {
	case q.avail <- struct{}{}:
	default:
	}
}

// pop blocks for the next message. It returns false when the queue is
// closed and empty, or when stop is closed.
func (q *queue) pop(stop <-chan struct{}) (ssdp.Message, bool) {
	for {
		q.mut.Lock()
		if len(q.items) > 0 {
			m := q.items[0]
			q.items[0] = ssdp.Message{}
			q.items = q.items[1:]
			q.mut.Unlock()
			return m, true
		}
		closed := q.closed
		q.mut.Unlock()
		if closed {
			return ssdp.Message{}, false
		}

		select {
		case <-q.avail:
		case <-stop:
			return ssdp.Message{}, false
		}
	}
}

func (q *queue) len() int {
	q.mut.Lock()
	defer q.mut.Unlock()
	return len(q.items)
}
