package utils

import (
	"sync/atomic"
)

// MongoMetrics tracks connection pool activity via the driver's pool monitor.
type MongoMetrics struct {
	ActiveConnections  int64
	CreatedConnections int64
	ClosedConnections  int64
}

var metrics MongoMetrics

func IncrementActiveConnections() {
	atomic.AddInt64(&metrics.ActiveConnections, 1)
	atomic.AddInt64(&metrics.CreatedConnections, 1)
}

func DecrementActiveConnections() {
	atomic.AddInt64(&metrics.ActiveConnections, -1)
	atomic.AddInt64(&metrics.ClosedConnections, 1)
}

func GetMongoMetrics() MongoMetrics {
	return MongoMetrics{
		ActiveConnections:  atomic.LoadInt64(&metrics.ActiveConnections),
		CreatedConnections: atomic.LoadInt64(&metrics.CreatedConnections),
		ClosedConnections:  atomic.LoadInt64(&metrics.ClosedConnections),
	}
}
