// Copyright (C) 2019 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package build holds the version information injected at link time and
// the product tokens derived from it.
package build

import (
	"fmt"
	"log"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const Product = "stssdp"

var (
	// Injected by build script
	Version = "unknown-dev"
	Host    = "unknown" // Set by build script
	User    = "unknown" // Set by build script
	Stamp   = "0"       // Set by build script

	// Set by init()
	LongVersion string

	AllowedVersionExp = regexp.MustCompile(`^v\d+\.\d+\.\d+(-[a-z0-9]+)*(\.\d+)*(\+\d+-g[0-9a-f]+|\+[0-9a-z]+)?(-[^\s]+)?$`)
)

const versionExtraAllowedChars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-. "

func init() {
	if Version != "unknown-dev" {
		// If not a generic dev build, version string should come from git describe
		if !AllowedVersionExp.MatchString(Version) {
			log.Fatalf("Invalid version string %q;\n\tdoes not match regexp %v", Version, AllowedVersionExp)
		}
	}
	LongVersion = longVersion(Version, Stamp)
}

// longVersion is the version line printed by --version, with the build
// stamp as a UTC date.
func longVersion(version, stamp string) string {
	secs, _ := strconv.ParseInt(stamp, 10, 64)
	date := time.Unix(secs, 0).UTC().Format("2006-01-02 15:04:05 MST")
	return fmt.Sprintf(`%s %s (%s %s-%s) %s@%s %s`, Product, version, runtime.Version(), runtime.GOOS, runtime.GOARCH, User, Host, date)
}

// ServerString returns the SERVER header value for messages sent by this
// build, in the "OS/version UPnP/1.0 product/version" form. Characters a
// product token may not contain are dropped.
func ServerString() string {
	return serverString(runtime.GOOS, Version)
}

func serverString(goos, version string) string {
	version = strings.TrimPrefix(version, "v")
	version = filterString(strings.ReplaceAll(version, " ", ""), versionExtraAllowedChars)
	return fmt.Sprintf("%s UPnP/1.0 %s/%s", goos, Product, version)
}

// filterString returns a copy of s with all characters not in allowedChars
// removed.
func filterString(s, allowedChars string) string {
	var res strings.Builder
	for _, c := range s {
		if strings.ContainsRune(allowedChars, c) {
			res.WriteRune(c)
		}
	}
	return res.String()
}
