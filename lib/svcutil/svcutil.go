// Copyright (C) 2016 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

// Package svcutil holds the glue between discovery sessions, the tool's
// services and the suture supervisor running them.
package svcutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/thejerf/suture/v4"

	"github.com/syncthing/ssdp/lib/logger"
)

const ServiceTimeout = 10 * time.Second

type ExitStatus int

const (
	ExitSuccess ExitStatus = 0
	ExitError   ExitStatus = 1
	// ExitNoResult is returned by one-shot commands that ran fine but
	// found nothing, such as a search without responses.
	ExitNoResult ExitStatus = 2
)

func (s ExitStatus) AsInt() int {
	return int(s)
}

// A FatalErr ends the process with Status. Returned from a supervised
// service it also stops the whole supervisor tree.
type FatalErr struct {
	Err    error
	Status ExitStatus
}

// AsFatalErr returns err as a FatalErr with the given status, unless err
// already carries one. A nil err means success.
func AsFatalErr(err error, status ExitStatus) *FatalErr {
	var ferr *FatalErr
	if errors.As(err, &ferr) {
		return ferr
	}
	if err == nil {
		return &FatalErr{Status: ExitSuccess}
	}
	return &FatalErr{Err: err, Status: status}
}

func (e *FatalErr) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Status)
	}
	return e.Err.Error()
}

func (e *FatalErr) Unwrap() error {
	return e.Err
}

// Is makes a FatalErr stop the supervisor it is returned to.
func (e *FatalErr) Is(target error) bool {
	return target == suture.ErrTerminateSupervisorTree
}

// NoRestartErr marks err, which may be nil, as final: the supervisor drops
// the service instead of restarting it. Sessions end exactly once.
func NoRestartErr(err error) error {
	if err == nil {
		return suture.ErrDoNotRestart
	}
	return &noRestartErr{err}
}

type noRestartErr struct {
	err error
}

func (e *noRestartErr) Error() string {
	return e.err.Error()
}

func (e *noRestartErr) Unwrap() error {
	return e.err
}

func (e *noRestartErr) Is(target error) bool {
	return target == suture.ErrDoNotRestart
}

type ServiceWithError interface {
	suture.Service
	fmt.Stringer
	Error() error
}

// AsService turns fn into a suture.Service remembering the error of its
// last run.
func AsService(fn func(ctx context.Context) error, name string) ServiceWithError {
	return &service{
		name:  name,
		serve: fn,
	}
}

type service struct {
	name  string
	serve func(ctx context.Context) error

	mut sync.Mutex
	err error
}

func (s *service) Serve(ctx context.Context) error {
	err := s.serve(ctx)
	s.mut.Lock()
	s.err = err
	s.mut.Unlock()
	return err
}

func (s *service) Error() error {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.err
}

func (s *service) String() string {
	return s.name
}

// SpecWithInfoLogger returns the supervisor spec used throughout: supervisor
// events are logged at info level and a FatalErr stops the tree.
func SpecWithInfoLogger(l logger.Logger) suture.Spec {
	return suture.Spec{
		EventHook:                func(e suture.Event) { l.Infoln(e) },
		Timeout:                  ServiceTimeout,
		PassThroughPanics:        true,
		DontPropagateTermination: false,
	}
}

// Supervise runs sup in the background. The returned context is canceled
// when parent is, or when a service ends the tree with a FatalErr. stop
// cancels the context, waits for the supervisor and returns that FatalErr,
// if any.
func Supervise(parent context.Context, sup *suture.Supervisor) (ctx context.Context, stop func() error) {
	ctx, cancel := context.WithCancel(parent)
	errs := sup.ServeBackground(ctx)

	var err error
	done := make(chan struct{})
	go func() {
		err = <-errs
		cancel()
		close(done)
	}()

	return ctx, func() error {
		cancel()
		<-done
		var ferr *FatalErr
		if errors.As(err, &ferr) {
			return ferr
		}
		return nil
	}
}
