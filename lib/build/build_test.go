// Copyright (C) 2019 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package build

import (
	"strings"
	"testing"
)

func TestAllowedVersions(t *testing.T) {
	testcases := []struct {
		ver     string
		allowed bool
	}{
		{"v0.13.0", true},
		{"v0.12.11+22-gabcdef0", true},
		{"v0.13.0-beta0", true},
		{"v0.13.0-beta47", true},
		{"v0.13.0-beta47+1-gabcdef0", true},
		{"v0.13.0-beta.0", true},
		{"v0.13.0-beta.47+1-gabcdef0", true},
		{"v0.13.0-some-weird-but-allowed-tag", true},
		{"v0.13.0+not.allowed.to.do.this", false},
		{"v1.0.0+45", true},
		{"1.0.0", false},
	}

	for i, c := range testcases {
		if allowed := AllowedVersionExp.MatchString(c.ver); allowed != c.allowed {
			t.Errorf("%d: incorrect result %v != %v for %q", i, allowed, c.allowed, c.ver)
		}
	}
}

func TestFilterString(t *testing.T) {
	cases := []struct {
		input  string
		filter string
		output string
	}{
		{"abcba", "abc", "abcba"},
		{"abcba", "ab", "abba"},
		{"abcba", "c", "c"},
		{"abcba", "!", ""},
		{"Foo (v1.5)", versionExtraAllowedChars, "Foo v1.5"},
	}

	for i, c := range cases {
		if out := filterString(c.input, c.filter); out != c.output {
			t.Errorf("%d: %q != %q", i, out, c.output)
		}
	}
}

func TestServerString(t *testing.T) {
	cases := []struct {
		goos, version, output string
	}{
		{"linux", "v1.2.3", "linux UPnP/1.0 stssdp/1.2.3"},
		{"darwin", "unknown-dev", "darwin UPnP/1.0 stssdp/unknown-dev"},
		{"windows", "v1.0.0+45 (x)", "windows UPnP/1.0 stssdp/1.0.045x"},
	}
	for i, c := range cases {
		if out := serverString(c.goos, c.version); out != c.output {
			t.Errorf("%d: %q != %q", i, out, c.output)
		}
	}

	if s := ServerString(); !strings.Contains(s, "UPnP/1.0 "+Product+"/") {
		t.Errorf("unexpected server string %q", s)
	}
	if !strings.HasPrefix(LongVersion, Product+" ") {
		t.Errorf("unexpected long version %q", LongVersion)
	}
}

func TestLongVersion(t *testing.T) {
	v := longVersion("v1.2.3", "1700000000")
	if !strings.HasPrefix(v, "stssdp v1.2.3 (") {
		t.Errorf("unexpected prefix in %q", v)
	}
	if !strings.HasSuffix(v, " 2023-11-14 22:13:20 UTC") {
		t.Errorf("build date missing from %q", v)
	}

	if v := longVersion("unknown-dev", "bogus"); !strings.HasSuffix(v, " 1970-01-01 00:00:00 UTC") {
		t.Errorf("unparsable stamp should give the epoch, got %q", v)
	}
}
