package raftchat

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config controls how the SDK connects.
type Config struct {
	// WSURL is the push-stream endpoint, e.g. "ws://127.0.0.1:9121/ws".
	WSURL string `envconfig:"CHAT_WS_URL"`

	// RESTBaseURL is the server root for the HTTP API.
	RESTBaseURL string `envconfig:"CHAT_REST_URL"`

	// User is the default author name for posts.
	User string `envconfig:"CHAT_USER"`

	HandshakeTimeout time.Duration `envconfig:"CHAT_HANDSHAKE_TIMEOUT"`

	// ReadTimeout bounds a single push-stream read. Leave 0: the stream
	// is silent between posts for arbitrarily long.
	ReadTimeout time.Duration `envconfig:"CHAT_READ_TIMEOUT"`

	HTTPTimeout time.Duration `envconfig:"CHAT_HTTP_TIMEOUT"`
}

// DefaultConfig returns sensible defaults for a local server.
func DefaultConfig() Config {
	return Config{
		WSURL:            "ws://127.0.0.1:9121/ws",
		RESTBaseURL:      "http://127.0.0.1:9121",
		HandshakeTimeout: 10 * time.Second,
		HTTPTimeout:      30 * time.Second,
	}
}

// ConfigFromEnv starts from DefaultConfig and overlays any CHAT_*
// environment variables that are set.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, WrapError(ErrorInvalidConfig, "process environment", err)
	}
	return cfg, nil
}
