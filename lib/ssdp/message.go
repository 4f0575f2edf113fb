// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ssdp implements the Simple Service Discovery Protocol message
// model: an HTTP-like start line followed by header fields, exchanged as
// UDP datagrams between UPnP devices and control points.
package ssdp

import (
	"fmt"
	"sort"
)

const (
	// Port is the well known SSDP port.
	Port = 1900

	// IPv4Group and IPv6Group are the discovery multicast groups. The IPv6
	// group is kept in brackets so that it can be used as is in a HOST
	// header.
	IPv4Group = "239.255.255.250"
	IPv6Group = "[FF02::C]"

	// MaxDatagramSize is the receive buffer size. Larger datagrams are
	// truncated.
	MaxDatagramSize = 1024
)

// Start lines of the three message types.
const (
	SearchType = "M-SEARCH * HTTP/1.1"
	NotifyType = "NOTIFY * HTTP/1.1"
	OKType     = "HTTP/1.1 200 OK"
)

// Well known header keys.
const (
	HeaderST           = "ST"
	HeaderMX           = "MX"
	HeaderMAN          = "MAN"
	HeaderUSN          = "USN"
	HeaderServer       = "SERVER"
	HeaderLocation     = "LOCATION"
	HeaderNT           = "NT"
	HeaderNTS          = "NTS"
	HeaderHost         = "HOST"
	HeaderCacheControl = "CACHE-CONTROL"
)

// A Message is one SSDP message. It is immutable; use Builder (or
// Message.Builder to start from an existing message) to create new ones.
// The zero Message has an empty type and matches no role.
type Message struct {
	typ     string
	headers map[string]string
}

func newMessage(typ string, headers map[string]string) Message {
	m := Message{
		typ:     typ,
		headers: make(map[string]string, len(headers)),
	}
	for k, v := range headers {
		m.headers[k] = v
	}
	return m
}

// Type returns the start line, e.g. SearchType.
func (m Message) Type() string {
	return m.typ
}

// Get returns the value of the given header and whether it is present.
// Keys are case sensitive.
func (m Message) Get(key string) (string, bool) {
	v, ok := m.headers[key]
	return v, ok
}

// Header returns the value of the given header, or the empty string.
func (m Message) Header(key string) string {
	return m.headers[key]
}

// Headers returns a copy of the header map.
func (m Message) Headers() map[string]string {
	res := make(map[string]string, len(m.headers))
	for k, v := range m.headers {
		res[k] = v
	}
	return res
}

// Keys returns the header keys in sorted order.
func (m Message) Keys() []string {
	keys := make([]string, 0, len(m.headers))
	for k := range m.headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of headers.
func (m Message) Len() int {
	return len(m.headers)
}

func (m Message) ST() string { return m.headers[HeaderST] }
func (m Message) MX() string { return m.headers[HeaderMX] }
func (m Message) MAN() string { return m.headers[HeaderMAN] }
func (m Message) USN() string { return m.headers[HeaderUSN] }
func (m Message) Server() string { return m.headers[HeaderServer] }
func (m Message) Location() string { return m.headers[HeaderLocation] }
func (m Message) NT() string { return m.headers[HeaderNT] }
func (m Message) Host() string { return m.headers[HeaderHost] }
func (m Message) CacheControl() string { return m.headers[HeaderCacheControl] }

// Builder returns a Builder seeded with a copy of this message.
func (m Message) Builder() *Builder {
	b := NewBuilder().Type(m.typ)
	for k, v := range m.headers {
		b.headers[k] = v
	}
	return b
}

// Equal returns true if both messages have the same type and headers.
func (m Message) Equal(other Message) bool {
	if m.typ != other.typ || len(m.headers) != len(other.headers) {
		return false
	}
	for k, v := range m.headers {
		if ov, ok := other.headers[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Bytes returns the wire representation of the message.
func (m Message) Bytes() []byte {
	return Serialize(m)
}

func (m Message) String() string {
	return string(Serialize(m))
}

// GoString is used by %#v and keeps debug output on one line.
func (m Message) GoString() string {
	return fmt.Sprintf("ssdp.Message{%q, %v}", m.typ, m.headers)
}
