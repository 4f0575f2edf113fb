// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package ssdp

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
)

var ErrEmptyMessage = errors.New("empty message")

const crlf = "\r\n"

// Parse decodes one datagram. The first line is the message type; every
// following non empty line is a header, split on the first colon. A line
// without a colon becomes a header with an empty value, and a repeated key
// keeps its last value. No terminating blank line is required.
//
// Only an empty input is an error. Input that does not start with a known
// type still parses, to a message no role will match.
func Parse(bs []byte) (Message, error) {
	if len(bs) == 0 {
		return Message{}, ErrEmptyMessage
	}

	lines := strings.Split(string(bs), crlf)
	headers := make(map[string]string, len(lines)-1)
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			l.Debugf("Header line without colon: %q", line)
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return Message{typ: lines[0], headers: headers}, nil
}

// Serialize encodes the message: the type line, one "Key: Value" line per
// header and a terminating blank line, all CRLF delimited. Headers are
// written in key order.
func Serialize(m Message) []byte {
	var buf bytes.Buffer
	buf.Grow(256)
	buf.WriteString(m.typ)
	buf.WriteString(crlf)
	for _, k := range m.Keys() {
		buf.WriteString(k)
		buf.WriteString(": ")
		buf.WriteString(m.headers[k])
		buf.WriteString(crlf)
	}
	buf.WriteString(crlf)
	return buf.Bytes()
}
