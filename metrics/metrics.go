// Package metrics exposes Prometheus instrumentation for the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NetworkEvents counts raw change events by backend and kind.
	NetworkEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netwatch_network_events_total",
			Help: "Total number of network change events detected, by backend and kind.",
		},
		[]string{"source", "kind"},
	)

	// NotificationsSent counts notifications delivered to subscribers.
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netwatch_notifications_sent_total",
			Help: "Total number of notifications delivered to subscribers, by method.",
		},
		[]string{"method"},
	)

	// ActiveSubscriptions tracks live subscriptions per watcher.
	ActiveSubscriptions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netwatch_active_subscriptions",
			Help: "Number of active subscriptions, by watcher.",
		},
		[]string{"watcher"},
	)
)
