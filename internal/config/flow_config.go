package config

import "time"

type FlowConfig interface {
	GetClosePollInterval() time.Duration
	GetNavigateDelay() time.Duration
}

type Flow struct{}

var _ FlowConfig = Flow{}

// GetClosePollInterval is how often the handshake checks whether the
// authorization window has been closed by the user.
func (Flow) GetClosePollInterval() time.Duration {
	return 500 * time.Millisecond
}

// GetNavigateDelay lets the success confirmation render before moving on.
func (Flow) GetNavigateDelay() time.Duration {
	return 1 * time.Second
}
