// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package beacon

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/syncthing/ssdp/lib/ssdp"
)

func listenLoopback(t *testing.T) (*Conn, *net.UDPAddr) {
	t.Helper()
	c, err := Listen(Options{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	port := c.LocalAddr().(*net.UDPAddr).Port
	return c, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port}
}

type result struct {
	pkt Packet
	err error
}

func receiveAsync(c *Conn) <-chan result {
	res := make(chan result, 1)
	go func() {
		pkt, err := c.Receive()
		res <- result{pkt, err}
	}()
	return res
}

func TestSendReceive(t *testing.T) {
	recv, dst := listenLoopback(t)
	send, _ := listenLoopback(t)

	msg := ssdp.NewBuilder().OK().ST("urn:test").USN("uuid:1").MustBuild()
	res := receiveAsync(recv)
	if err := send.Send(msg, dst); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-res:
		if r.err != nil {
			t.Fatal(r.err)
		}
		if !r.pkt.Message.Equal(msg) {
			t.Errorf("received %#v, expected %#v", r.pkt.Message, msg)
		}
		if !r.pkt.IP().Equal(net.IPv4(127, 0, 0, 1)) {
			t.Errorf("unexpected source %v", r.pkt.Src)
		}
		if r.pkt.Port() != send.LocalAddr().(*net.UDPAddr).Port {
			t.Errorf("source port %d does not match sender", r.pkt.Port())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for datagram")
	}
}

func TestReceiveTruncates(t *testing.T) {
	recv, dst := listenLoopback(t)

	raw, err := net.DialUDP("udp4", nil, dst)
	if err != nil {
		t.Fatal(err)
	}
	defer raw.Close()

	var buf bytes.Buffer
	buf.WriteString(ssdp.NotifyType + "\r\nNT: urn:test\r\nX-PAD: ")
	buf.Write(bytes.Repeat([]byte("a"), 2*ssdp.MaxDatagramSize))
	buf.WriteString("\r\n\r\n")

	res := receiveAsync(recv)
	if _, err := raw.Write(buf.Bytes()); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-res:
		if r.err != nil {
			t.Fatal(r.err)
		}
		if r.pkt.Message.Type() != ssdp.NotifyType || r.pkt.Message.NT() != "urn:test" {
			t.Errorf("unexpected message %#v", r.pkt.Message)
		}
		pad := r.pkt.Message.Header("X-PAD")
		if len(pad) >= 2*ssdp.MaxDatagramSize || len(pad) == 0 {
			t.Errorf("expected truncated pad, got %d bytes", len(pad))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for datagram")
	}
}

func TestCloseUnblocksReceive(t *testing.T) {
	c, _ := listenLoopback(t)

	res := receiveAsync(c)
	time.Sleep(50 * time.Millisecond)

	if c.Closed() {
		t.Fatal("should not be closed yet")
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-res:
		if !errors.Is(r.err, ErrClosed) {
			t.Errorf("expected ErrClosed, got %v", r.err)
		}
		if !errors.Is(r.err, net.ErrClosed) {
			t.Errorf("ErrClosed should match net.ErrClosed")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("close did not unblock receive")
	}

	if !c.Closed() {
		t.Error("should be closed")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
	if err := c.Send(ssdp.Message{}, &net.UDPAddr{}); !errors.Is(err, ErrClosed) {
		t.Errorf("send after close: %v", err)
	}
	if err := c.JoinGroup(net.ParseIP(ssdp.IPv4Group)); !errors.Is(err, ErrClosed) {
		t.Errorf("join after close: %v", err)
	}
}

func TestPacketAccessors(t *testing.T) {
	var p Packet
	if p.IP() != nil || p.Port() != 0 {
		t.Error("zero packet should have no address")
	}
	p.Src = &net.UDPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 1234}
	if !p.IP().Equal(net.IPv4(10, 0, 0, 1)) || p.Port() != 1234 {
		t.Errorf("unexpected accessors %v %d", p.IP(), p.Port())
	}
}
