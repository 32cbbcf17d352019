package app

import (
	"github.com/calebmoss/gamedex/internal/auth"
)

// SessionServiceConfig converts AuthConfig into SessionService parameters.
func (c AuthConfig) SessionServiceConfig() auth.SessionConfig {
	ttl := c.Session.TTL
	if ttl <= 0 {
		ttl = auth.DefaultSessionTTL
	}

	length := c.Session.TokenLength
	if length <= 0 {
		length = 48
	}

	return auth.SessionConfig{
		TTL:         ttl,
		TokenLength: length,
	}
}
