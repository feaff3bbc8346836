package client

import (
	"context"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type Option func(*Client)

func WithContext(ctx context.Context) Option {
	return func(c *Client) {
		c.ctx = ctx
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

func WithListener(listener Listener) Option {
	return func(c *Client) {
		c.listener = listener
	}
}

func WithDialer(dialer Dialer) Option {
	return func(c *Client) {
		c.dialer = dialer
	}
}

// WithPlayerID sets a persisted player id instead of generating a fresh
// one on every connect.
func WithPlayerID(id string) Option {
	return func(c *Client) {
		c.presetPlayerID = id
	}
}
