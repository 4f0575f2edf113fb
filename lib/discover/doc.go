// Copyright (C) 2015 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

/*
Package discover implements the four SSDP discovery roles on top of the
beacon transport.

Sessions
========

Every role runs as one session: a goroutine owning one socket, exposed to
the caller as a Stream. A Stream is cold; nothing happens until Start (or
Serve, when run under a suture supervisor). A session moves through

	Idle -> Running -> Completed | Failed | Canceled

exactly once. Cancel marks the session canceled before closing its socket,
so the error the pending receive returns is recognised as the result of the
cancel and is not reported.

Messages are delivered on Stream.Messages in the order the socket produced
them. The queue between the session and the consumer is unbounded, so a slow
consumer never stalls the receive loop. When a session completes or fails,
queued messages are still delivered before the channel is closed; when it is
canceled they are discarded.

Roles
=====

Search sends an M-SEARCH to both multicast groups, each copy with a HOST
header naming the group, and then streams every 200 OK response whose ST
equals the request's. It never ends by itself; callers cancel it after the
MX derived timeout.

Notifications joins both groups on port 1900 and streams every NOTIFY.

Notify sends NOTIFY messages to both groups and completes.

Publish joins both groups on port 1900 and answers every M-SEARCH for which
the responder returns a message, by unicast to the requester. A responder
returning anything but a 200 OK fails the session.

Sending to, or joining, the groups succeeds as long as one group could be
reached; hosts without IPv6 still discover over IPv4.
*/
package discover
