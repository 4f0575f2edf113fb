// Copyright (C) 2024 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ssdp",
		Subsystem: "discover",
		Name:      "sent_total",
		Help:      "Total number of datagrams sent, per role.",
	}, []string{"role"})
	metricReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ssdp",
		Subsystem: "discover",
		Name:      "received_total",
		Help:      "Total number of datagrams received, per role.",
	}, []string{"role"})
	metricEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ssdp",
		Subsystem: "discover",
		Name:      "emitted_total",
		Help:      "Total number of messages queued for delivery to the caller, per role.",
	}, []string{"role"})
	metricDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ssdp",
		Subsystem: "discover",
		Name:      "dropped_total",
		Help:      "Total number of received datagrams not acted upon, per role and reason.",
	}, []string{"role", "reason"})
	metricSessionsActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ssdp",
		Subsystem: "discover",
		Name:      "sessions_active",
		Help:      "Number of currently running sessions, per role.",
	}, []string{"role"})
	metricSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ssdp",
		Subsystem: "discover",
		Name:      "sessions_total",
		Help:      "Total number of finished sessions, per role and final state.",
	}, []string{"role", "state"})
)

const (
	roleSearch        = "search"
	roleNotifications = "notifications"
	roleNotify        = "notify"
	rolePublish       = "publish"
)

func init() {
	// Register the roles so that series are present even when zero.
	for _, role := range []string{roleSearch, roleNotifications, roleNotify, rolePublish} {
		metricSent.WithLabelValues(role)
		metricReceived.WithLabelValues(role)
		metricEmitted.WithLabelValues(role)
		metricSessionsActive.WithLabelValues(role)
	}
}
