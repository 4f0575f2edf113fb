// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/syncthing/ssdp/lib/build"
	"github.com/syncthing/ssdp/lib/discover"
	"github.com/syncthing/ssdp/lib/ssdp"
	"github.com/syncthing/ssdp/lib/svcutil"
)

var errNoResponses = errors.New("no responses")

type searchCmd struct {
	ST      string        `help:"Search target" default:"ssdp:all" env:"STSSDP_ST"`
	MX      int           `help:"Maximum response delay requested from devices, in seconds" default:"5"`
	Timeout time.Duration `help:"How long to wait for responses (default MX+1 seconds)" env:"STSSDP_TIMEOUT"`
}

func (c *searchCmd) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return time.Duration(c.MX+1) * time.Second
}

func (c *searchCmd) Run(a *app) error {
	msg, err := ssdp.NewBuilder().Default(ssdp.SearchType).ST(c.ST).MX(c.MX).Build()
	if err != nil {
		return err
	}

	engine := discover.New(a.opts)
	defer engine.Close()
	s, err := engine.Search(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(a.ctx, c.timeout())
	defer cancel()

	seen := 0
	if err := a.run(ctx, s, func(m ssdp.Message) {
		seen++
		a.print(m)
	}); err != nil {
		return err
	}
	if seen == 0 {
		return svcutil.AsFatalErr(errNoResponses, svcutil.ExitNoResult)
	}
	return nil
}

type listenCmd struct {
	Filter string `help:"Only print notifications with this NT" placeholder:"NT"`
}

func (c *listenCmd) Run(a *app) error {
	engine := discover.New(a.opts)
	defer engine.Close()

	return a.run(a.ctx, engine.Notifications(), func(m ssdp.Message) {
		if c.Filter != "" && m.NT() != c.Filter {
			return
		}
		a.print(m)
	})
}

type notifyCmd struct {
	NT       string `help:"Notification type" required:""`
	USN      string `name:"usn" help:"Unique service name" required:""`
	Location string `help:"Description URL"`
	Server   string `help:"SERVER header (default derived from this build)"`
	NTS      string `name:"nts" help:"Notification sub type" default:"ssdp:alive" enum:"ssdp:alive,ssdp:byebye,ssdp:update"`
}

func (c *notifyCmd) message() (ssdp.Message, error) {
	b := ssdp.NewBuilder().Default(ssdp.NotifyType).NT(c.NT).USN(c.USN).Set(ssdp.HeaderNTS, c.NTS)
	if c.NTS != "ssdp:byebye" {
		server := c.Server
		if server == "" {
			server = build.ServerString()
		}
		b.Server(server)
		if c.Location != "" {
			b.Location(c.Location)
		}
	} else {
		b.Del(ssdp.HeaderCacheControl)
	}
	return b.Build()
}

func (c *notifyCmd) Run(a *app) error {
	msg, err := c.message()
	if err != nil {
		return err
	}

	engine := discover.New(a.opts)
	defer engine.Close()
	s, err := engine.Notify(msg)
	if err != nil {
		return err
	}
	return a.run(a.ctx, s, a.print)
}

type publishCmd struct {
	Services      string  `help:"YAML file listing the services to publish" required:"" type:"existingfile" env:"STSSDP_SERVICES"`
	Announce      bool    `help:"Send an ssdp:alive notification for every service before answering searches"`
	ResponseRate  float64 `help:"Maximum responses per second (0 for no limit)" default:"0" env:"STSSDP_RESPONSE_RATE"`
	ResponseBurst int     `help:"Responses allowed in a burst above the rate" default:"10"`
}

func (c *publishCmd) Run(a *app) error {
	services, err := loadServices(c.Services)
	if err != nil {
		return err
	}

	opts := a.opts
	if c.ResponseRate > 0 {
		opts.ResponseRate = rate.Limit(c.ResponseRate)
		opts.ResponseBurst = c.ResponseBurst
	}
	engine := discover.New(opts)
	defer engine.Close()

	if c.Announce {
		msgs := make([]ssdp.Message, len(services))
		for i, svc := range services {
			if msgs[i], err = svc.notification(); err != nil {
				return err
			}
		}
		s, err := engine.Notify(msgs[0], msgs[1:]...)
		if err != nil {
			return err
		}
		if err := a.run(a.ctx, s, a.print); err != nil {
			return errors.Wrap(err, "announce")
		}
	}

	msgs := make([]ssdp.Message, len(services))
	for i, svc := range services {
		if msgs[i], err = svc.response(); err != nil {
			return err
		}
	}
	s, err := engine.PublishMessages(msgs[0], msgs[1:]...)
	if err != nil {
		return err
	}
	l.Infof("Publishing %d services", len(msgs))
	return a.run(a.ctx, s, a.print)
}
