// Copyright (C) 2014 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

//go:generate -command counterfeiter go run github.com/maxbrunsfeld/counterfeiter/v6
//go:generate counterfeiter -o mocks/transport.go --fake-name Transport . Transport

// Package beacon implements the SSDP datagram transport: one UDP socket that
// can join the discovery multicast groups, send messages and receive them
// back as parsed packets.
package beacon

import (
	"net"

	"github.com/pkg/errors"

	"github.com/syncthing/ssdp/lib/ssdp"
)

var (
	ErrClosed      = errors.Wrap(net.ErrClosed, "beacon")
	ErrNoMulticast = errors.New("no multicast interfaces available")
)

// A Transport owns one socket. Receive is the only blocking call; Close
// unblocks it. Closing is idempotent and final.
type Transport interface {
	// JoinGroup joins the multicast group on every configured interface.
	// It fails only if no interface could join.
	JoinGroup(group net.IP) error
	// Send writes the message as one datagram to dst.
	Send(msg ssdp.Message, dst *net.UDPAddr) error
	// Receive blocks for the next datagram.
	Receive() (Packet, error)
	LocalAddr() net.Addr
	Close() error
	Closed() bool
}

// A Packet is a received message and where it came from.
type Packet struct {
	Message ssdp.Message
	Src     *net.UDPAddr
}

func (p Packet) IP() net.IP {
	if p.Src == nil {
		return nil
	}
	return p.Src.IP
}

func (p Packet) Port() int {
	if p.Src == nil {
		return 0
	}
	return p.Src.Port
}

type Options struct {
	// Port to bind. Zero picks an ephemeral port.
	Port int
	// Reuse sets SO_REUSEADDR/SO_REUSEPORT so several listeners may share
	// the well known port.
	Reuse bool
	// Interfaces to join groups on. Nil means every interface that is up
	// and multicast capable.
	Interfaces []net.Interface
	// BufferSize is the receive buffer; longer datagrams are truncated.
	// Defaults to ssdp.MaxDatagramSize.
	BufferSize int
}
