// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"strconv"
	"testing"
	"time"

	"github.com/syncthing/ssdp/lib/ssdp"
)

func TestQueueOrder(t *testing.T) {
	q := newQueue()
	for i := 0; i < 100; i++ {
		q.push(ssdp.NewBuilder().OK().USN(strconv.Itoa(i)).MustBuild())
	}
	q.close()
	q.push(ssdp.NewBuilder().OK().MustBuild()) // ignored after close

	stop := make(chan struct{})
	for i := 0; i < 100; i++ {
		m, ok := q.pop(stop)
		if !ok {
			t.Fatalf("queue ended after %d messages", i)
		}
		if m.USN() != strconv.Itoa(i) {
			t.Fatalf("message %d out of order: %q", i, m.USN())
		}
	}
	if _, ok := q.pop(stop); ok {
		t.Error("closed and drained queue should end")
	}
}

func TestQueuePopBlocks(t *testing.T) {
	q := newQueue()
	stop := make(chan struct{})
	res := make(chan bool, 1)
	go func() {
		_, ok := q.pop(stop)
		res <- ok
	}()

	select {
	case <-res:
		t.Fatal("pop on empty queue should block")
	case <-time.After(20 * time.Millisecond):
	}

	q.push(ssdp.NewBuilder().OK().MustBuild())
	if ok := <-res; !ok {
		t.Error("expected a message")
	}

	go func() {
		_, ok := q.pop(stop)
		res <- ok
	}()
	close(stop)
	select {
	case ok := <-res:
		if ok {
			t.Error("stopped pop should return false")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("stop did not unblock pop")
	}
}
