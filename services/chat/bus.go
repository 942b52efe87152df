package chat

import (
	"context"
	"strings"

	"mendwell/utils"

	"github.com/go-redis/redis/v8"
)

// ChannelFor names the pub/sub channel shared by two principals. The pair is
// sorted so both sides compute the same name.
func ChannelFor(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return utils.ChatChannelPrefix + a + ":" + b
}

// RedisBus implements Bus on Redis pub/sub.
type RedisBus struct {
	client *redis.Client
}

// NewRedisBus wraps a Redis client as a message bus.
func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

// Publish sends the payload to every live subscriber of the channel.
func (b *RedisBus) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.client.Publish(ctx, channel, payload).Err()
}

// Subscribe opens a subscription and returns a payload channel plus a close
// function. The channel is closed when the context ends or close is called.
func (b *RedisBus) Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error) {
	sub := b.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan []byte, 16)
	go func() {
		defer close(out)
		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	closeFn := func() { _ = sub.Close() }
	return out, closeFn, nil
}
