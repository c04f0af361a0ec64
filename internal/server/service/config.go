package service

import "time"

// Config holds tunables shared by the services
type Config struct {
	// Now returns current time, time.Now when nil
	Now func() time.Time
	// SessionTTL defaults to DefaultSessionTTL
	SessionTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	return c
}
