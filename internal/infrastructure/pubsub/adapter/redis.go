package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/pubsub/port"
)

// RedisBroker satisfies port.Broker on top of Redis pub/sub.
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBrokerFromEnv constructs a broker using the REDIS_URL environment variable.
func NewRedisBrokerFromEnv() (*RedisBroker, error) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return nil, errors.New("pubsub: REDIS_URL environment variable is not set")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("pubsub: parse url: %w", err)
	}
	c := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("pubsub: ping: %w", err)
	}
	return &RedisBroker{client: c}, nil
}

var _ port.Broker = (*RedisBroker)(nil)

func (b *RedisBroker) Publish(ctx context.Context, channel string, payload string) error {
	return b.client.Publish(ctx, channel, payload).Err()
}

// Subscribe consumes the channel until ctx is canceled. A closed message
// stream (connection loss) is returned as an error so the caller can decide
// whether to re-subscribe.
func (b *RedisBroker) Subscribe(ctx context.Context, channel string, h port.Handler) error {
	sub := b.client.Subscribe(ctx, channel)
	defer func() { _ = sub.Close() }()

	// Force the subscription handshake so a dead broker fails fast.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("pubsub: subscribe %s: %w", channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("pubsub: channel %s closed", channel)
			}
			h(ctx, msg.Payload)
		}
	}
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
