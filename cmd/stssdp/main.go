// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Command stssdp searches for, listens to, announces and publishes SSDP
// services on the local network.
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/thejerf/suture/v4"

	"github.com/syncthing/ssdp/lib/build"
	"github.com/syncthing/ssdp/lib/discover"
	"github.com/syncthing/ssdp/lib/logger"
	"github.com/syncthing/ssdp/lib/ssdp"
	"github.com/syncthing/ssdp/lib/svcutil"
)

var l = logger.DefaultLogger

type CLI struct {
	MetricsListen string           `help:"Serve Prometheus metrics on this address" placeholder:"ADDR" env:"STSSDP_METRICS_LISTEN"`
	Interfaces    []string         `help:"Network interfaces to use (default all multicast capable)" placeholder:"NAME" env:"STSSDP_INTERFACES"`
	Groups        []string         `help:"Multicast groups (default ${default_groups})" placeholder:"ADDR" env:"STSSDP_GROUPS"`
	Raw           bool             `help:"Print messages in wire format" env:"STSSDP_RAW"`
	Version       kong.VersionFlag `help:"Show version and exit"`

	Search  searchCmd  `cmd:"" help:"Search for services and print the responses"`
	Listen  listenCmd  `cmd:"" help:"Print notifications until interrupted"`
	Notify  notifyCmd  `cmd:"" help:"Send a notification"`
	Publish publishCmd `cmd:"" help:"Answer searches for the services in a file"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Description("SSDP discovery tool"),
		kong.Vars{
			"version":        build.LongVersion,
			"default_groups": ssdp.IPv4Group + "," + ssdp.IPv6Group,
		},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := cli.app(ctx, os.Stdout)
	if err == nil {
		err = kctx.Run(a)
		if serr := a.stop(); serr != nil {
			err = serr
		}
	}
	os.Exit(exitStatus(err).AsInt())
}

// exitStatus logs err, if any, and returns the status to exit with.
func exitStatus(err error) svcutil.ExitStatus {
	if err == nil {
		return svcutil.ExitSuccess
	}
	fe := svcutil.AsFatalErr(err, svcutil.ExitError)
	if fe.Err != nil {
		l.Warnln(fe.Err)
	}
	return fe.Status
}

// app is what every command runs with: an options template for the engines
// it creates and a supervisor running the sessions and the metrics server.
// ctx ends on interrupt or when a service fails fatally.
type app struct {
	ctx  context.Context
	opts discover.Options
	sup  *suture.Supervisor
	out  io.Writer
	raw  bool
	stop func() error
}

func (cli *CLI) app(ctx context.Context, out io.Writer) (*app, error) {
	opts := discover.Options{Groups: cli.Groups}
	for _, name := range cli.Interfaces {
		intf, err := net.InterfaceByName(name)
		if err != nil {
			return nil, errors.Wrapf(err, "interface %q", name)
		}
		opts.Interfaces = append(opts.Interfaces, *intf)
	}

	sup := suture.New("stssdp", svcutil.SpecWithInfoLogger(l))
	if cli.MetricsListen != "" {
		sup.Add(svcutil.AsService(metricsService(cli.MetricsListen), "metrics"))
	}
	ctx, stop := svcutil.Supervise(ctx, sup)

	return &app{
		ctx:  ctx,
		opts: opts,
		sup:  sup,
		out:  out,
		raw:  cli.Raw,
		stop: stop,
	}, nil
}

// run supervises the stream until it ends or ctx is done, handing every
// delivered message to fn. It returns the session error, if any.
func (a *app) run(ctx context.Context, s *discover.Stream, fn func(ssdp.Message)) error {
	token := a.sup.Add(s)
	defer a.sup.Remove(token)

	ctxDone := ctx.Done()
	for {
		select {
		case m, ok := <-s.Messages():
			if !ok {
				<-s.Done()
				return s.Err()
			}
			fn(m)
		case <-ctxDone:
			l.Debugln("Canceling", s)
			s.Cancel()
			ctxDone = nil
		}
	}
}

func (a *app) print(m ssdp.Message) {
	if a.raw {
		fmt.Fprint(a.out, m.String())
		return
	}
	switch m.Type() {
	case ssdp.NotifyType:
		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", m.Header(ssdp.HeaderNTS), m.NT(), m.USN(), m.Location())
	default:
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", m.ST(), m.USN(), m.Location())
	}
}
