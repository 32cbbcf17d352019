package app

import (
	"time"

	"github.com/calebmoss/gamedex/internal/catalog"
)

const defaultUpstreamTimeout = 10 * time.Second

// ClientConfig converts UpstreamConfig into catalog client parameters.
func (c UpstreamConfig) ClientConfig() catalog.ClientConfig {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultUpstreamTimeout
	}

	return catalog.ClientConfig{
		BaseURL: c.BaseURL,
		APIKey:  c.APIKey,
		Timeout: timeout,
	}
}
