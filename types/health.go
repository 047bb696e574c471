package types

import "time"

// HealthStatus reports the outcome of a lightweight provider probe.
type HealthStatus struct {
	Healthy bool
	Latency time.Duration
}
