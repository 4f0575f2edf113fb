// Copyright (C) 2019 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

//go:build !solaris && !windows && !plan9 && !js && !wasip1

package beacon

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// reuseControl lets several sockets bind the SSDP port, the way other UPnP
// stacks on the same host expect. SO_REUSEPORT is best effort.
func reuseControl(_, _ string, c syscall.RawConn) error {
	var opErr error
	err := c.Control(func(fd uintptr) {
		opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		if opErr != nil {
			return
		}
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
			l.Debugln("SO_REUSEPORT not supported:", err)
		}
	})
	if err != nil {
		return err
	}
	return opErr
}
