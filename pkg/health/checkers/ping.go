package checkers

import (
	"context"
	"time"
)

const pingTimeout = time.Second

// Pinger is satisfied by *pgxpool.Pool and the Redis cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingChecker reports a dependency healthy when its Ping succeeds within
// one second.
type PingChecker struct {
	name   string
	client Pinger
}

func NewPostgresChecker(pool Pinger) *PingChecker {
	return &PingChecker{name: "postgres", client: pool}
}

func NewRedisChecker(client Pinger) *PingChecker {
	return &PingChecker{name: "redis", client: client}
}

func (c *PingChecker) Name() string { return c.name }

func (c *PingChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return c.client.Ping(ctx)
}
