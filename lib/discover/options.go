// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/syncthing/ssdp/lib/ssdp"
)

type Options struct {
	// Groups are the multicast groups searches and notifications go to and
	// listeners join. IPv6 groups may be given with or without brackets.
	Groups []string
	// Port is the discovery port.
	Port int
	// Interfaces to join groups on; nil means all multicast capable ones.
	Interfaces []net.Interface
	// ResponseRate limits how many search responses a publish session
	// sends per second, with bursts of ResponseBurst. Zero means no limit.
	ResponseRate  rate.Limit
	ResponseBurst int
}

func (o Options) withDefaults() Options {
	if len(o.Groups) == 0 {
		o.Groups = []string{ssdp.IPv4Group, ssdp.IPv6Group}
	}
	if o.Port == 0 {
		o.Port = ssdp.Port
	}
	if o.ResponseRate == 0 {
		o.ResponseRate = rate.Inf
	}
	if o.ResponseBurst <= 0 {
		o.ResponseBurst = 1
	}
	return o
}

type group struct {
	host string // HOST header value, e.g. "[FF02::C]:1900"
	addr *net.UDPAddr
}

func (o Options) groups() ([]group, error) {
	res := make([]group, 0, len(o.Groups))
	for _, g := range o.Groups {
		ip := net.ParseIP(strings.Trim(g, "[]"))
		if ip == nil || !ip.IsMulticast() {
			return nil, errors.Errorf("invalid multicast group %q", g)
		}
		name := g
		if ip.To4() == nil && !strings.HasPrefix(g, "[") {
			name = "[" + g + "]"
		}
		res = append(res, group{
			host: name + ":" + strconv.Itoa(o.Port),
			addr: &net.UDPAddr{IP: ip, Port: o.Port},
		})
	}
	return res, nil
}
