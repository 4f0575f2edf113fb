// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package ssdp

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNoType          = errors.New("message type not set")
	ErrUnsupportedType = errors.New("unsupported message type")
)

// A Builder stages a Message. The first error encountered is kept and
// returned by Build; calls after an error are no-ops.
type Builder struct {
	typ     string
	headers map[string]string
	err     error
}

func NewBuilder() *Builder {
	return &Builder{
		headers: make(map[string]string),
	}
}

// Type sets the start line verbatim.
func (b *Builder) Type(typ string) *Builder {
	if b.err != nil {
		return b
	}
	b.typ = typ
	return b
}

func (b *Builder) Search() *Builder { return b.Type(SearchType) }
func (b *Builder) Notify() *Builder { return b.Type(NotifyType) }
func (b *Builder) OK() *Builder { return b.Type(OKType) }

// Default sets the type and the headers the protocol expects for it: MAN
// and MX for searches, CACHE-CONTROL for notifications and responses.
func (b *Builder) Default(typ string) *Builder {
	switch typ {
	case SearchType:
		return b.Search().MAN(`"ssdp:discover"`).MX(5)
	case NotifyType:
		return b.Notify().CacheControl("max-age=1800")
	case OKType:
		return b.OK().CacheControl("max-age=1800")
	default:
		if b.err == nil {
			b.err = errors.Wrapf(ErrUnsupportedType, "%q", typ)
		}
		return b
	}
}

// Set stores the string form of value under key, replacing any previous
// value. A nil value removes the key.
func (b *Builder) Set(key string, value interface{}) *Builder {
	if b.err != nil {
		return b
	}
	switch v := value.(type) {
	case nil:
		delete(b.headers, key)
	case string:
		b.headers[key] = v
	default:
		b.headers[key] = fmt.Sprint(v)
	}
	return b
}

// Del removes key.
func (b *Builder) Del(key string) *Builder {
	return b.Set(key, nil)
}

func (b *Builder) ST(st string) *Builder { return b.Set(HeaderST, st) }
func (b *Builder) MX(mx int) *Builder { return b.Set(HeaderMX, mx) }
func (b *Builder) MAN(man string) *Builder { return b.Set(HeaderMAN, man) }
func (b *Builder) USN(usn string) *Builder { return b.Set(HeaderUSN, usn) }
func (b *Builder) Server(server string) *Builder { return b.Set(HeaderServer, server) }
func (b *Builder) Location(location string) *Builder { return b.Set(HeaderLocation, location) }
func (b *Builder) NT(nt string) *Builder { return b.Set(HeaderNT, nt) }
func (b *Builder) Host(host string) *Builder { return b.Set(HeaderHost, host) }
func (b *Builder) CacheControl(value string) *Builder { return b.Set(HeaderCacheControl, value) }

// Build returns the message. The builder may be reused afterwards; the
// returned message does not share state with it.
func (b *Builder) Build() (Message, error) {
	if b.err != nil {
		return Message{}, b.err
	}
	if b.typ == "" {
		return Message{}, ErrNoType
	}
	return newMessage(b.typ, b.headers), nil
}

// MustBuild is like Build but panics on error. It is intended for
// messages built from constants.
func (b *Builder) MustBuild() Message {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
