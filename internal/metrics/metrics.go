package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optmonitor_refresh_total",
			Help: "Total number of log directory refreshes",
		},
		[]string{"trigger", "status"},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optmonitor_refresh_duration_seconds",
			Help:    "Duration of log directory refreshes",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
	)

	TableRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "optmonitor_table_rows",
			Help: "Accepted data rows in the table bound to each role",
		},
		[]string{"role"},
	)

	RowsDropped = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "optmonitor_rows_dropped",
			Help: "Malformed data lines dropped while parsing each role's file",
		},
		[]string{"role"},
	)

	RoleBound = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "optmonitor_role_bound",
			Help: "1 if a log file is bound to the role, 0 otherwise",
		},
		[]string{"role"},
	)
)
