// Copyright (C) 2014 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package beacon

import (
	"context"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/syncthing/ssdp/lib/ssdp"
)

// Conn is the Transport on top of a real UDP socket. The socket is dual
// stack where the platform allows it, so one Conn serves both groups. On the
// BSDs and macOS an IPv6 socket cannot join an IPv4 group; JoinGroup then
// fails for the IPv4 group only and the session continues on the IPv6 one.
type Conn struct {
	conn       *net.UDPConn
	ip4        *ipv4.PacketConn
	ip6        *ipv6.PacketConn
	interfaces []net.Interface

	rmut sync.Mutex // protects buf
	buf  []byte

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

var _ Transport = (*Conn)(nil)

// Listen opens a socket according to opts.
func Listen(opts Options) (*Conn, error) {
	lc := net.ListenConfig{}
	if opts.Reuse {
		lc.Control = reuseControl
	}

	addr := net.JoinHostPort("", strconv.Itoa(opts.Port))
	pc, err := lc.ListenPacket(context.Background(), "udp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "listen")
	}
	udp, ok := pc.(*net.UDPConn)
	if !ok {
		pc.Close()
		return nil, errors.Errorf("unexpected connection type %T", pc)
	}

	size := opts.BufferSize
	if size <= 0 {
		size = ssdp.MaxDatagramSize
	}

	c := &Conn{
		conn:       udp,
		ip4:        ipv4.NewPacketConn(udp),
		ip6:        ipv6.NewPacketConn(udp),
		interfaces: opts.Interfaces,
		buf:        make([]byte, size),
	}
	l.Debugln("Listening on", udp.LocalAddr())
	return c, nil
}

func (c *Conn) JoinGroup(group net.IP) error {
	if c.closed.Load() {
		return ErrClosed
	}

	intfs := c.interfaces
	if intfs == nil {
		var err error
		intfs, err = multicastInterfaces()
		if err != nil {
			return errors.Wrap(err, "listing interfaces")
		}
	}

	gaddr := &net.UDPAddr{IP: group}
	join := c.ip6.JoinGroup
	if group.To4() != nil {
		join = c.ip4.JoinGroup
	}

	joined := 0
	var lastErr error
	for i := range intfs {
		intf := &intfs[i]
		if err := join(intf, gaddr); err != nil {
			l.Debugln("Join", group, "on", intf.Name, "failed:", err)
			lastErr = err
			continue
		}
		l.Debugln("Join", group, "on", intf.Name, "success")
		joined++
	}

	if joined == 0 {
		// Let the system pick an interface as a last resort.
		if err := join(nil, gaddr); err != nil {
			if lastErr == nil {
				lastErr = err
			}
			return errors.Wrapf(ErrNoMulticast, "join %v: %v", group, lastErr)
		}
		l.Debugln("Join", group, "on default interface success")
	}
	return nil
}

func (c *Conn) Send(msg ssdp.Message, dst *net.UDPAddr) error {
	if c.closed.Load() {
		return ErrClosed
	}
	bs := ssdp.Serialize(msg)
	if _, err := c.conn.WriteToUDP(bs, dst); err != nil {
		if c.closed.Load() {
			return ErrClosed
		}
		return errors.Wrapf(err, "send to %v", dst)
	}
	l.Debugf("Sent %d bytes to %v", len(bs), dst)
	return nil
}

// Receive blocks until a datagram arrives. Datagrams larger than the buffer
// are truncated and parsed as far as they go. An empty datagram yields the
// zero Message.
func (c *Conn) Receive() (Packet, error) {
	c.rmut.Lock()
	defer c.rmut.Unlock()

	n, src, err := c.conn.ReadFromUDP(c.buf)
	if err != nil {
		if c.closed.Load() {
			return Packet{}, ErrClosed
		}
		return Packet{}, errors.Wrap(err, "receive")
	}
	l.Debugf("Received %d bytes from %v", n, src)

	msg, err := ssdp.Parse(c.buf[:n])
	if err != nil {
		l.Debugln("Parse:", err)
	}
	if ip4 := src.IP.To4(); ip4 != nil {
		src.IP = ip4
	}
	return Packet{Message: msg, Src: src}, nil
}

func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// Close releases the socket, unblocking a pending Receive. Subsequent calls
// return the result of the first.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.closeErr = c.conn.Close()
		l.Debugln("Closed", c.conn.LocalAddr())
	})
	return c.closeErr
}

func (c *Conn) Closed() bool {
	return c.closed.Load()
}

func multicastInterfaces() ([]net.Interface, error) {
	intfs, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	res := intfs[:0]
	for _, intf := range intfs {
		if intf.Flags&net.FlagUp == 0 || intf.Flags&net.FlagMulticast == 0 {
			continue
		}
		res = append(res, intf)
	}
	return res, nil
}
