package realtime

import (
	"context"
	"encoding/json"
	"sync"
)

// Envelope is the record carried on the cross-session channel. Origin and
// nonce let receivers suppress their own echo and drop duplicates.
type Envelope struct {
	Event           string          `json:"eventName"`
	Payload         json.RawMessage `json:"payload"`
	Timestamp       int64           `json:"timestamp"`
	OriginSessionID string          `json:"originSessionId"`
	Nonce           string          `json:"nonce"`
}

// Broker mirrors events between sessions. Delivery is at-least-once and not
// globally ordered.
type Broker interface {
	Publish(ctx context.Context, env Envelope) error
	// Subscribe registers fn for every envelope on the channel, including
	// the caller's own. It does not block.
	Subscribe(ctx context.Context, fn func(Envelope)) error
}

// LocalBroker fans envelopes out to subscribers in the same process. Used in
// single-binary deployments and tests.
type LocalBroker struct {
	mu   sync.Mutex
	subs []func(Envelope)
}

func NewLocalBroker() *LocalBroker { return &LocalBroker{} }

func (b *LocalBroker) Publish(_ context.Context, env Envelope) error {
	b.mu.Lock()
	subs := make([]func(Envelope), len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(env)
	}
	return nil
}

func (b *LocalBroker) Subscribe(_ context.Context, fn func(Envelope)) error {
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
	return nil
}
