package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the order creation path, transaction included
	OrderCreateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_create_latency_seconds",
		Help:    "Latency of order creation",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of orders created
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	// Total number of orders cancelled with stock restored
	OrdersCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Total number of orders cancelled",
	})

	// Orders rejected because requested quantity exceeded stock
	StockConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_stock_conflicts_total",
		Help: "Total number of orders rejected for insufficient stock",
	})
)

func Init() {
	prometheus.MustRegister(
		OrderCreateLatency,
		OrdersCreated,
		OrdersCancelled,
		StockConflicts,
	)
}
