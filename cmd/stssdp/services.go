// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/syncthing/ssdp/lib/build"
	"github.com/syncthing/ssdp/lib/ssdp"
)

// A services file looks like
//
//	services:
//	  - st: urn:schemas-upnp-org:device:MediaServer:1
//	    usn: uuid:4d696e69-444c-164e-9d41-b827eb54e1f5::urn:schemas-upnp-org:device:MediaServer:1
//	    location: http://192.168.1.20:8200/rootDesc.xml
//	    headers:
//	      EXT: ""
type servicesFile struct {
	Services []service `json:"services"`
}

type service struct {
	ST           string            `json:"st"`
	USN          string            `json:"usn"`
	Location     string            `json:"location,omitempty"`
	Server       string            `json:"server,omitempty"`
	CacheControl string            `json:"cacheControl,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
}

func loadServices(path string) ([]service, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseServices(bs)
}

func parseServices(bs []byte) ([]service, error) {
	var f servicesFile
	if err := yaml.UnmarshalStrict(bs, &f); err != nil {
		return nil, errors.Wrap(err, "parsing services")
	}
	if len(f.Services) == 0 {
		return nil, errors.New("no services")
	}
	for i, svc := range f.Services {
		if svc.ST == "" || svc.USN == "" {
			return nil, errors.Errorf("service %d: st and usn are required", i)
		}
	}
	return f.Services, nil
}

// response returns the search response advertising the service.
func (s service) response() (ssdp.Message, error) {
	return s.builder(ssdp.OKType).ST(s.ST).Build()
}

// notification returns the ssdp:alive notification announcing the service.
func (s service) notification() (ssdp.Message, error) {
	return s.builder(ssdp.NotifyType).NT(s.ST).Set(ssdp.HeaderNTS, "ssdp:alive").Build()
}

func (s service) builder(typ string) *ssdp.Builder {
	b := ssdp.NewBuilder().Default(typ).USN(s.USN)
	if s.Location != "" {
		b.Location(s.Location)
	}
	if s.Server != "" {
		b.Server(s.Server)
	} else {
		b.Server(build.ServerString())
	}
	if s.CacheControl != "" {
		b.CacheControl(s.CacheControl)
	}
	for k, v := range s.Headers {
		b.Set(k, v)
	}
	return b
}
