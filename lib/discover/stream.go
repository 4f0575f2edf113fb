// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/syncthing/ssdp/lib/beacon"
	"github.com/syncthing/ssdp/lib/ssdp"
	"github.com/syncthing/ssdp/lib/svcutil"
)

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Terminal returns true for the states a session ends in.
func (s State) Terminal() bool {
	return s >= StateCompleted
}

type (
	listenFunc func(beacon.Options) (beacon.Transport, error)
	runFunc    func(t beacon.Transport, emit func(ssdp.Message)) error
)

// A Stream is one discovery session and the messages it produces.
type Stream struct {
	role   string
	id     uint64
	opts   beacon.Options
	listen listenFunc
	run    runFunc

	onStart func(*Stream)
	onDone  func(*Stream)

	mut       sync.Mutex // protects state, transport, err
	state     State
	transport beacon.Transport
	err       error

	canceled atomic.Bool
	finished atomic.Bool

	queue    *queue
	out      chan ssdp.Message
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func newStream(role string, id uint64, opts beacon.Options, listen listenFunc, run runFunc) *Stream {
	return &Stream{
		role:   role,
		id:     id,
		opts:   opts,
		listen: listen,
		run:    run,
		queue:  newQueue(),
		out:    make(chan ssdp.Message),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (s *Stream) String() string {
	return fmt.Sprintf("%s/%d", s.role, s.id)
}

// Start runs the session. It has no effect unless the stream is idle.
func (s *Stream) Start() {
	s.mut.Lock()
	if s.state != StateIdle || s.canceled.Load() || s.finished.Load() {
		s.mut.Unlock()
		return
	}
	s.state = StateRunning
	s.mut.Unlock()

	l.Debugln(s, "starting")
	metricSessionsActive.WithLabelValues(s.role).Inc()
	if s.onStart != nil {
		s.onStart(s)
	}

	go s.deliver()
	go s.serve()
}

// Cancel stops the session and discards undelivered messages. The socket
// is closed after the session is marked canceled, so the resulting receive
// error is not reported. Canceling an idle stream ends it without opening a
// socket; canceling a finished stream only releases undelivered messages.
func (s *Stream) Cancel() {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mut.Lock()
	defer s.mut.Unlock()

	switch s.state {
	case StateIdle:
		s.canceled.Store(true)
		s.finished.Store(true)
		s.state = StateCanceled
		close(s.out)
		close(s.done)
		l.Debugln(s, "canceled before start")
		metricSessions.WithLabelValues(s.role, StateCanceled.String()).Inc()

	case StateRunning:
		if s.canceled.Swap(true) {
			return
		}
		l.Debugln(s, "canceling")
		if s.transport != nil {
			s.transport.Close()
		}
	}
}

// Messages returns the channel messages are delivered on. It is closed when
// the session has ended and, unless canceled, every message was delivered.
// Callers must either read it until it is closed or call Cancel; a session
// that has ended otherwise keeps its undelivered messages, and the goroutine
// holding them, around.
func (s *Stream) Messages() <-chan ssdp.Message {
	return s.out
}

// Done is closed when the session has ended and its socket is closed.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session has ended and returns Err.
func (s *Stream) Wait() error {
	<-s.done
	return s.Err()
}

// Err returns the error that failed the session, if any.
func (s *Stream) Err() error {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.err
}

func (s *Stream) State() State {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.state
}

// Serve implements suture.Service. The session is never restarted; Serve
// returns when it ends or ctx is canceled.
func (s *Stream) Serve(ctx context.Context) error {
	s.Start()
	select {
	case <-ctx.Done():
		s.Cancel()
		<-s.done
	case <-s.done:
	}
	return svcutil.NoRestartErr(s.Err())
}

func (s *Stream) serve() {
	s.finish(s.session())
}

func (s *Stream) session() error {
	t, err := s.listen(s.opts)
	if err != nil {
		return errors.Wrap(err, "open transport")
	}
	defer t.Close()

	s.mut.Lock()
	if s.canceled.Load() {
		s.mut.Unlock()
		return nil
	}
	s.transport = t
	s.mut.Unlock()

	l.Debugln(s, "listening on", t.LocalAddr())
	return s.run(t, s.emit)
}

func (s *Stream) emit(m ssdp.Message) {
	metricEmitted.WithLabelValues(s.role).Inc()
	s.queue.push(m)
}

func (s *Stream) finish(err error) {
	s.mut.Lock()
	switch {
	case s.canceled.Load():
		if err != nil {
			l.Debugln(s, "ignoring error after cancel:", err)
		}
		s.state = StateCanceled
	case err != nil:
		s.state = StateFailed
		s.err = err
	default:
		s.state = StateCompleted
	}
	state := s.state
	s.finished.Store(true)
	s.mut.Unlock()

	if err != nil && state == StateFailed {
		l.Infof("Discovery session %v failed: %v", s, err)
	}
	l.Debugf("%v %v with %d undelivered", s, state, s.queue.len())

	s.queue.close()
	metricSessionsActive.WithLabelValues(s.role).Dec()
	metricSessions.WithLabelValues(s.role, state.String()).Inc()
	close(s.done)
	if s.onDone != nil {
		s.onDone(s)
	}
}

// deliver moves messages from the queue to the consumer until the queue is
// drained and closed, or the stream is canceled.
func (s *Stream) deliver() {
	defer close(s.out)
	for {
		m, ok := s.queue.pop(s.stop)
		if !ok {
			return
		}
		select {
		case <-s.stop:
			return
		default:
		}
		select {
		case s.out <- m:
		case <-s.stop:
			return
		}
	}
}
