// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/syncthing/ssdp/lib/svcutil"
)

func metricsService(addr string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		lst, err := net.Listen("tcp", addr)
		if err != nil {
			return svcutil.AsFatalErr(errors.Wrap(err, "metrics listener"), svcutil.ExitError)
		}
		l.Infoln("Serving metrics on", lst.Addr())

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			srv.Close()
		}()

		err = srv.Serve(lst)
		if errors.Is(err, http.ErrServerClosed) {
			return ctx.Err()
		}
		return err
	}
}
