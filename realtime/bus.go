package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/TonCerques/alugaki/metrics"
	"github.com/TonCerques/alugaki/model"
	chatrepo "github.com/TonCerques/alugaki/repository/chat"
	"github.com/google/uuid"
)

// Event names on the bus.
const (
	EventSendMessage = "send_message"
	EventNewMessage  = "new_message"
	EventJoinRoom    = "join_room"
)

const seenNonceCap = 1024

// Handler receives bus payloads. For new_message events the payload is a
// model.ChatMessage.
type Handler func(payload any)

// SendMessage is the payload Emit expects for send_message events.
type SendMessage struct {
	RoomID   string
	SenderID string
	Content  string
}

// Bus delivers chat events to in-process listeners and mirrors them to other
// sessions through a Broker. One instance per session, owned by the
// composition root; there is no global listener registry.
type Bus struct {
	sessionID string
	chat      chatrepo.Repo
	broker    Broker
	log       *slog.Logger

	mu        sync.Mutex
	nextID    int
	listeners map[string]map[int]Handler
	seen      map[string]struct{}
	seenOrder []string
}

// New builds a bus. broker may be nil, in which case events stay local.
func New(chat chatrepo.Repo, broker Broker, log *slog.Logger) *Bus {
	return &Bus{
		sessionID: uuid.NewString(),
		chat:      chat,
		broker:    broker,
		log:       log,
		listeners: map[string]map[int]Handler{},
		seen:      map[string]struct{}{},
	}
}

func (b *Bus) SessionID() string { return b.sessionID }

// Start subscribes the bus to its broker. Must be called once before remote
// events are expected; local emit/deliver works without it.
func (b *Bus) Start(ctx context.Context) error {
	if b.broker == nil {
		return nil
	}
	return b.broker.Subscribe(ctx, b.receive)
}

// On registers a handler for an event and returns its subscription id.
func (b *Bus) On(event string, h Handler) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	if b.listeners[event] == nil {
		b.listeners[event] = map[int]Handler{}
	}
	b.listeners[event][id] = h
	return id
}

// Off removes a previously registered handler.
func (b *Bus) Off(event string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners[event], id)
}

// Emit handles an outgoing event. For send_message the message is persisted
// first, then delivered to local new_message listeners with its canonical
// (stored) form, then broadcast to other sessions.
func (b *Bus) Emit(ctx context.Context, event string, payload any) error {
	switch event {
	case EventJoinRoom:
		return nil
	case EventSendMessage:
		req, ok := payload.(SendMessage)
		if !ok {
			return errors.New("send_message payload must be a realtime.SendMessage")
		}
		_, err := b.SendChatMessage(ctx, req.RoomID, req.SenderID, req.Content)
		return err
	default:
		b.deliver(event, payload)
		b.publish(ctx, event, payload)
		return nil
	}
}

// SendChatMessage is the typed form of Emit(send_message); it returns the
// persisted message.
func (b *Bus) SendChatMessage(ctx context.Context, roomID, senderID, content string) (model.ChatMessage, error) {
	msg, err := b.chat.Send(ctx, roomID, senderID, content)
	if err != nil {
		return model.ChatMessage{}, err
	}
	metrics.ChatMessages.Inc()
	b.deliver(EventNewMessage, msg)
	b.publish(ctx, EventNewMessage, msg)
	return msg, nil
}

func (b *Bus) deliver(event string, payload any) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.listeners[event]))
	for id := range b.listeners[event] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	hs := make([]Handler, len(ids))
	for i, id := range ids {
		hs[i] = b.listeners[event][id]
	}
	b.mu.Unlock()

	for _, h := range hs {
		h(payload)
	}
}

func (b *Bus) publish(ctx context.Context, event string, payload any) {
	if b.broker == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		b.log.Warn("broadcast payload not serializable", "event", event, "err", err)
		return
	}
	env := Envelope{
		Event:           event,
		Payload:         raw,
		Timestamp:       time.Now().UnixMilli(),
		OriginSessionID: b.sessionID,
		Nonce:           uuid.NewString(),
	}
	if err := b.broker.Publish(ctx, env); err != nil {
		// Broadcast is best effort: same-session delivery already happened.
		metrics.BroadcastDropped.Inc()
		b.log.Debug("broadcast unavailable, local delivery only", "event", event, "err", err)
		return
	}
	metrics.BroadcastPublished.Inc()
}

func (b *Bus) receive(env Envelope) {
	if env.OriginSessionID == b.sessionID {
		return // echo suppression
	}
	if b.seenNonce(env.Nonce) {
		return
	}

	switch env.Event {
	case EventNewMessage:
		var msg model.ChatMessage
		if err := json.Unmarshal(env.Payload, &msg); err != nil {
			b.log.Warn("bad new_message payload", "err", err)
			return
		}
		b.deliver(EventNewMessage, msg)
	default:
		var payload any
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			b.log.Warn("bad broadcast payload", "event", env.Event, "err", err)
			return
		}
		b.deliver(env.Event, payload)
	}
}

// seenNonce records a nonce and reports whether it was already seen. The set
// is bounded; delivery over the broker is at-least-once.
func (b *Bus) seenNonce(n string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.seen[n]; ok {
		return true
	}
	b.seen[n] = struct{}{}
	b.seenOrder = append(b.seenOrder, n)
	if len(b.seenOrder) > seenNonceCap {
		oldest := b.seenOrder[0]
		b.seenOrder = b.seenOrder[1:]
		delete(b.seen, oldest)
	}
	return false
}
