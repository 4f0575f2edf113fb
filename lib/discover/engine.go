// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/time/rate"

	"github.com/syncthing/ssdp/lib/beacon"
	"github.com/syncthing/ssdp/lib/ssdp"
)

var (
	ErrInvalidType = errors.New("invalid message type")
	ErrNoResponder = errors.New("no responder")
)

// A Responder answers a search request. Returning false ignores the
// request; a returned message must be a 200 OK response.
type Responder func(req ssdp.Message) (ssdp.Message, bool)

// Engine creates discovery sessions. It is safe for concurrent use; the
// sessions it creates share nothing but the options.
type Engine struct {
	opts    Options
	listen  listenFunc
	streams *xsync.MapOf[uint64, *Stream]
	nextID  atomic.Uint64
}

func New(opts Options) *Engine {
	return &Engine{
		opts:    opts.withDefaults(),
		listen:  listenBeacon,
		streams: xsync.NewMapOf[uint64, *Stream](),
	}
}

func listenBeacon(opts beacon.Options) (beacon.Transport, error) {
	c, err := beacon.Listen(opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Search sends msg to the multicast groups and streams the 200 OK responses
// carrying the same ST. The stream does not end by itself.
func (e *Engine) Search(msg ssdp.Message) (*Stream, error) {
	if msg.Type() != ssdp.SearchType {
		return nil, errors.Wrapf(ErrInvalidType, "search with %q", msg.Type())
	}

	st := msg.ST()
	opts := beacon.Options{Interfaces: e.opts.Interfaces}
	return e.newStream(roleSearch, opts, func(t beacon.Transport, emit func(ssdp.Message)) error {
		if err := e.sendGroups(roleSearch, t, msg); err != nil {
			return err
		}
		return receive(roleSearch, t, func(p beacon.Packet) error {
			if p.Message.Type() != ssdp.OKType || p.Message.ST() != st {
				metricDropped.WithLabelValues(roleSearch, "filtered").Inc()
				return nil
			}
			l.Debugln("Search response for", st, "from", p.Src)
			emit(p.Message)
			return nil
		})
	}), nil
}

// SearchTarget is Search with a default search request for st.
func (e *Engine) SearchTarget(st string) (*Stream, error) {
	msg, err := ssdp.NewBuilder().Default(ssdp.SearchType).ST(st).Build()
	if err != nil {
		return nil, err
	}
	return e.Search(msg)
}

// Notifications streams every NOTIFY received on the multicast groups.
func (e *Engine) Notifications() *Stream {
	opts := e.groupListenOptions()
	return e.newStream(roleNotifications, opts, func(t beacon.Transport, emit func(ssdp.Message)) error {
		if err := e.joinGroups(t); err != nil {
			return err
		}
		return receive(roleNotifications, t, func(p beacon.Packet) error {
			if p.Message.Type() != ssdp.NotifyType {
				metricDropped.WithLabelValues(roleNotifications, "filtered").Inc()
				return nil
			}
			emit(p.Message)
			return nil
		})
	})
}

// Notify sends each message to the multicast groups and completes. It
// delivers no messages.
func (e *Engine) Notify(msg ssdp.Message, more ...ssdp.Message) (*Stream, error) {
	msgs := append([]ssdp.Message{msg}, more...)
	for _, m := range msgs {
		if m.Type() != ssdp.NotifyType {
			return nil, errors.Wrapf(ErrInvalidType, "notify with %q", m.Type())
		}
	}

	opts := beacon.Options{Interfaces: e.opts.Interfaces}
	return e.newStream(roleNotify, opts, func(t beacon.Transport, _ func(ssdp.Message)) error {
		for _, m := range msgs {
			if err := e.sendGroups(roleNotify, t, m); err != nil {
				return err
			}
		}
		return nil
	}), nil
}

// Publish answers search requests received on the multicast groups with
// what the responder returns, sent back to the requester. It delivers no
// messages and runs until canceled or the responder misbehaves.
func (e *Engine) Publish(responder Responder) (*Stream, error) {
	if responder == nil {
		return nil, ErrNoResponder
	}

	opts := e.groupListenOptions()
	limiter := rate.NewLimiter(e.opts.ResponseRate, e.opts.ResponseBurst)
	return e.newStream(rolePublish, opts, func(t beacon.Transport, _ func(ssdp.Message)) error {
		if err := e.joinGroups(t); err != nil {
			return err
		}
		return receive(rolePublish, t, func(p beacon.Packet) error {
			if p.Message.Type() != ssdp.SearchType {
				metricDropped.WithLabelValues(rolePublish, "filtered").Inc()
				return nil
			}
			resp, ok := responder(p.Message)
			if !ok {
				metricDropped.WithLabelValues(rolePublish, "unanswered").Inc()
				return nil
			}
			if resp.Type() != ssdp.OKType {
				return errors.Wrapf(ErrInvalidType, "response with %q", resp.Type())
			}
			if !limiter.Allow() {
				l.Debugln("Rate limited response to", p.Src)
				metricDropped.WithLabelValues(rolePublish, "ratelimited").Inc()
				return nil
			}
			if err := t.Send(resp, p.Src); err != nil {
				return err
			}
			metricSent.WithLabelValues(rolePublish).Inc()
			l.Debugln("Answered search for", p.Message.ST(), "from", p.Src)
			return nil
		})
	}), nil
}

// PublishMessages publishes the given responses, answering a search with
// the first message whose ST equals the request's.
func (e *Engine) PublishMessages(msg ssdp.Message, more ...ssdp.Message) (*Stream, error) {
	msgs := append([]ssdp.Message{msg}, more...)
	for _, m := range msgs {
		if m.Type() != ssdp.OKType {
			return nil, errors.Wrapf(ErrInvalidType, "publish with %q", m.Type())
		}
	}
	return e.Publish(func(req ssdp.Message) (ssdp.Message, bool) {
		for _, m := range msgs {
			if m.ST() == req.ST() {
				return m, true
			}
		}
		return ssdp.Message{}, false
	})
}

// Close cancels every running session.
func (e *Engine) Close() {
	e.streams.Range(func(_ uint64, s *Stream) bool {
		s.Cancel()
		return true
	})
}

func (e *Engine) newStream(role string, opts beacon.Options, run runFunc) *Stream {
	s := newStream(role, e.nextID.Add(1), opts, e.listen, run)
	s.onStart = func(s *Stream) { e.streams.Store(s.id, s) }
	s.onDone = func(s *Stream) { e.streams.Delete(s.id) }
	return s
}

func (e *Engine) groupListenOptions() beacon.Options {
	return beacon.Options{
		Port:       e.opts.Port,
		Reuse:      true,
		Interfaces: e.opts.Interfaces,
	}
}

// sendGroups sends a copy of msg to every group, with the HOST header set
// to that group. It fails only if no group could be sent to.
func (e *Engine) sendGroups(role string, t beacon.Transport, msg ssdp.Message) error {
	groups, err := e.opts.groups()
	if err != nil {
		return err
	}

	var firstErr error
	sent := 0
	for _, g := range groups {
		m, err := msg.Builder().Host(g.host).Build()
		if err == nil {
			err = t.Send(m, g.addr)
		}
		if err != nil {
			l.Debugln("Send to", g.host, "failed:", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		metricSent.WithLabelValues(role).Inc()
		sent++
	}
	if sent == 0 && firstErr != nil {
		return errors.Wrap(firstErr, "send to multicast groups")
	}
	return nil
}

// joinGroups joins every group. It fails only if no group could be joined.
func (e *Engine) joinGroups(t beacon.Transport) error {
	groups, err := e.opts.groups()
	if err != nil {
		return err
	}

	var firstErr error
	joined := 0
	for _, g := range groups {
		if err := t.JoinGroup(g.addr.IP); err != nil {
			l.Debugln("Join", g.host, "failed:", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		joined++
	}
	if joined == 0 && firstErr != nil {
		return errors.Wrap(firstErr, "join multicast groups")
	}
	return nil
}

func receive(role string, t beacon.Transport, handle func(beacon.Packet) error) error {
	for {
		p, err := t.Receive()
		if err != nil {
			return err
		}
		metricReceived.WithLabelValues(role).Inc()
		if err := handle(p); err != nil {
			return err
		}
	}
}
