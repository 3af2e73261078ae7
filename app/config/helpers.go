package config

import (
	"time"
)

const (
	MessageFormatCompact  = "compact"
	MessageFormatDetailed = "detailed"
)

// GetRefreshInterval returns the refresh interval as time.Duration
func (s *ConfigSettings) GetRefreshInterval() time.Duration {
	if s.RefreshInterval <= 0 {
		return 600 * time.Second // default 10 minutes
	}
	return time.Duration(s.RefreshInterval) * time.Second
}

// GetTimeout returns the per-request timeout as time.Duration
func (s *ConfigSettings) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 15 * time.Second // default 15 seconds
	}
	return time.Duration(s.Timeout) * time.Second
}
