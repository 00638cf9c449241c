package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const broadcastChannel = "alugaki:events"

// RedisBroker carries envelopes over a redis pub/sub channel so separate
// processes sharing one dataset see each other's events.
type RedisBroker struct {
	client *redis.Client
	log    *slog.Logger
}

func NewRedisBroker(addr string, log *slog.Logger) *RedisBroker {
	return &RedisBroker{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		log:    log,
	}
}

func (b *RedisBroker) Publish(ctx context.Context, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, broadcastChannel, payload).Err()
}

func (b *RedisBroker) Subscribe(ctx context.Context, fn func(Envelope)) error {
	sub := b.client.Subscribe(ctx, broadcastChannel)
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var env Envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					b.log.Warn("bad broadcast envelope", "err", err)
					continue
				}
				fn(env)
			}
		}
	}()
	return nil
}

func (b *RedisBroker) Close() error { return b.client.Close() }
