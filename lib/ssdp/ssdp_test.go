// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package ssdp

import (
	"strings"
	"testing"

	"github.com/d4l3k/messagediff"
	"github.com/pkg/errors"
)

func TestBuildRequiresType(t *testing.T) {
	_, err := NewBuilder().ST("urn:a").Build()
	if !errors.Is(err, ErrNoType) {
		t.Errorf("expected ErrNoType, got %v", err)
	}

	_, err = NewBuilder().Default("GET / HTTP/1.1").ST("urn:a").Build()
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}

	m, err := NewBuilder().Type("CUSTOM * HTTP/1.1").Build()
	if err != nil {
		t.Fatal(err)
	}
	if m.Type() != "CUSTOM * HTTP/1.1" || m.Len() != 0 {
		t.Errorf("unexpected message %#v", m)
	}
}

func TestDefaults(t *testing.T) {
	cases := []struct {
		typ     string
		headers map[string]string
	}{
		{SearchType, map[string]string{"MAN": `"ssdp:discover"`, "MX": "5"}},
		{NotifyType, map[string]string{"CACHE-CONTROL": "max-age=1800"}},
		{OKType, map[string]string{"CACHE-CONTROL": "max-age=1800"}},
	}
	for _, tc := range cases {
		m, err := NewBuilder().Default(tc.typ).Build()
		if err != nil {
			t.Fatal(err)
		}
		if m.Type() != tc.typ {
			t.Errorf("type %q != %q", m.Type(), tc.typ)
		}
		if diff, equal := messagediff.PrettyDiff(tc.headers, m.Headers()); !equal {
			t.Errorf("%s: unexpected headers:\n%s", tc.typ, diff)
		}
	}
}

func TestSetOverwriteAndDelete(t *testing.T) {
	m := NewBuilder().
		Default(SearchType).
		MX(3).
		Set("X-COUNT", 42).
		Set("X-GONE", "here").
		Set("X-GONE", nil).
		ST("urn:a").
		Del(HeaderMAN).
		MustBuild()

	if m.MX() != "3" {
		t.Errorf("MX %q, expected the last value", m.MX())
	}
	if v := m.Header("X-COUNT"); v != "42" {
		t.Errorf("X-COUNT %q", v)
	}
	if _, ok := m.Get("X-GONE"); ok {
		t.Error("nil value should remove the header")
	}
	if _, ok := m.Get(HeaderMAN); ok {
		t.Error("Del should remove the header")
	}
	if keys := strings.Join(m.Keys(), ","); keys != "MX,ST,X-COUNT" {
		t.Errorf("keys %q", keys)
	}
}

func TestMessageIsImmutable(t *testing.T) {
	b := NewBuilder().OK().ST("urn:a")
	m1 := b.MustBuild()
	b.ST("urn:b").USN("uuid:1")
	m2 := b.MustBuild()

	if m1.ST() != "urn:a" || m1.USN() != "" {
		t.Errorf("builder changes leaked into a built message: %#v", m1)
	}
	if m2.ST() != "urn:b" {
		t.Errorf("unexpected %#v", m2)
	}

	h := m1.Headers()
	h["ST"] = "changed"
	if m1.ST() != "urn:a" {
		t.Error("Headers should return a copy")
	}

	m3 := m1.Builder().Host("239.255.255.250:1900").MustBuild()
	if m1.Host() != "" || m3.Host() != "239.255.255.250:1900" || m3.ST() != "urn:a" {
		t.Errorf("Builder copy is not isolated: %#v %#v", m1, m3)
	}
}

func TestEqual(t *testing.T) {
	a := NewBuilder().Notify().NT("urn:a").USN("uuid:1").MustBuild()
	b := NewBuilder().Notify().USN("uuid:1").NT("urn:a").MustBuild()
	if !a.Equal(b) {
		t.Error("header order should not matter")
	}
	if a.Equal(a.Builder().OK().MustBuild()) {
		t.Error("different types should differ")
	}
	if a.Equal(a.Builder().NT("urn:b").MustBuild()) {
		t.Error("different values should differ")
	}
	if a.Equal(a.Builder().Del(HeaderUSN).MustBuild()) {
		t.Error("missing headers should differ")
	}
	if !(Message{}).Equal(Message{}) {
		t.Error("zero messages should be equal")
	}
}

func TestSerialize(t *testing.T) {
	m := NewBuilder().
		Search().
		Host("239.255.255.250:1900").
		MAN(`"ssdp:discover"`).
		MX(5).
		ST("ssdp:all").
		MustBuild()

	exp := "M-SEARCH * HTTP/1.1\r\n" +
		"HOST: 239.255.255.250:1900\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"MX: 5\r\n" +
		"ST: ssdp:all\r\n" +
		"\r\n"
	if got := string(m.Bytes()); got != exp {
		t.Errorf("serialized\n%q\nexpected\n%q", got, exp)
	}
	if m.String() != exp {
		t.Error("String should match Bytes")
	}
}

func TestRoundTrip(t *testing.T) {
	msgs := []Message{
		NewBuilder().Default(SearchType).ST("urn:schemas-upnp-org:device:InternetGatewayDevice:1").MustBuild(),
		NewBuilder().Default(NotifyType).NT("upnp:rootdevice").USN("uuid:abc::upnp:rootdevice").Set("NTS", "ssdp:alive").MustBuild(),
		NewBuilder().Default(OKType).ST("urn:a").Location("http://192.168.1.1:5000/rootDesc.xml").Server("Linux/5.10 UPnP/1.0 test/1.0").MustBuild(),
		NewBuilder().OK().MustBuild(),
	}
	for _, m := range msgs {
		p, err := Parse(Serialize(m))
		if err != nil {
			t.Fatal(err)
		}
		if p.Type() != m.Type() {
			t.Errorf("type %q != %q", p.Type(), m.Type())
		}
		if diff, equal := messagediff.PrettyDiff(m.Headers(), p.Headers()); !equal {
			t.Errorf("headers differ after round trip:\n%s", diff)
		}
	}
}

func TestParseLenient(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\n" +
		"ST:urn:a\r\n" +
		"  LOCATION :   http://10.0.0.1:80/desc.xml  \r\n" +
		"\r\n" +
		"EXT:\r\n" +
		"BOGUS\r\n" +
		"USN: first\r\n" +
		"USN: second"

	m, err := Parse([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	exp := map[string]string{
		"ST":       "urn:a",
		"LOCATION": "http://10.0.0.1:80/desc.xml",
		"EXT":      "",
		"BOGUS":    "",
		"USN":      "second",
	}
	if m.Type() != OKType {
		t.Errorf("type %q", m.Type())
	}
	if diff, equal := messagediff.PrettyDiff(exp, m.Headers()); !equal {
		t.Errorf("unexpected headers:\n%s", diff)
	}
}

func TestParseEdgeCases(t *testing.T) {
	if _, err := Parse(nil); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}

	m, err := Parse([]byte("NOTIFY * HTTP/1.1"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Type() != NotifyType || m.Len() != 0 {
		t.Errorf("type line only: %#v", m)
	}

	m, err = Parse([]byte("garbage\x00\xff"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Type() == SearchType || m.Type() == NotifyType || m.Type() == OKType {
		t.Errorf("garbage parsed as a known type: %#v", m)
	}
}

func TestDefaultSearchRequest(t *testing.T) {
	m, err := NewBuilder().Default(SearchType).ST("ssdp:all").Build()
	if err != nil {
		t.Fatal(err)
	}
	if m.MAN() != `"ssdp:discover"` || m.MX() != "5" || m.ST() != "ssdp:all" {
		t.Errorf("unexpected %#v", m)
	}
	if m.CacheControl() != "" {
		t.Error("searches carry no CACHE-CONTROL")
	}
}
