package config

import "time"

type APIConfig interface {
	GetRequestTimeout() time.Duration
	GetMaxResponseBytes() int64
}

type API struct{}

var _ APIConfig = API{}

// GetRequestTimeout bounds every request on both client pipelines.
// Requests exceeding it fail with a timeout error rather than hang.
func (API) GetRequestTimeout() time.Duration {
	return 10 * time.Second
}

func (API) GetMaxResponseBytes() int64 {
	return 4 << 20 // 4 MiB
}
