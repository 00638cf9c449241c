package realtime

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/TonCerques/alugaki/model"
	chatrepo "github.com/TonCerques/alugaki/repository/chat"
	"github.com/TonCerques/alugaki/repository/store"
	"github.com/TonCerques/alugaki/util/database"

	"github.com/stretchr/testify/require"
)

const testRoomID = "room-1"

func newChatRepo(t *testing.T) chatrepo.Repo {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "alugaki.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.New(db, log)
	require.NoError(t, err)

	err = st.Update(context.Background(), func(ds *model.Dataset) error {
		ds.ChatRooms = append(ds.ChatRooms, model.ChatRoom{
			ID:           testRoomID,
			BookingID:    "bk-1",
			Participants: []string{store.CanonicalRenterID, store.CanonicalOwnerID},
		})
		return nil
	})
	require.NoError(t, err)
	return chatrepo.New(st)
}

func newBus(t *testing.T, chat chatrepo.Repo, broker Broker) *Bus {
	t.Helper()
	b := New(chat, broker, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, b.Start(context.Background()))
	return b
}

func collect(b *Bus, into *[]model.ChatMessage) int {
	return b.On(EventNewMessage, func(payload any) {
		if msg, ok := payload.(model.ChatMessage); ok {
			*into = append(*into, msg)
		}
	})
}

func TestSendChatMessage_DeliversOncePerSession(t *testing.T) {
	ctx := context.Background()
	chat := newChatRepo(t)
	broker := NewLocalBroker()

	origin := newBus(t, chat, broker)
	peer := newBus(t, chat, broker)

	var originGot, peerGot []model.ChatMessage
	collect(origin, &originGot)
	collect(peer, &peerGot)

	sent, err := origin.SendChatMessage(ctx, testRoomID, store.CanonicalRenterID, "hello")
	require.NoError(t, err)
	require.NotEmpty(t, sent.ID)

	// the origin hears its message exactly once, locally; the peer exactly
	// once, over the broker, with the same persisted identity
	require.Len(t, originGot, 1)
	require.Len(t, peerGot, 1)
	require.Equal(t, sent.ID, originGot[0].ID)
	require.Equal(t, sent.ID, peerGot[0].ID)
	require.Equal(t, "hello", peerGot[0].Content)

	msgs, err := chat.Messages(ctx, testRoomID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
}

func TestEmit_SendMessagePersistsAndDelivers(t *testing.T) {
	ctx := context.Background()
	chat := newChatRepo(t)
	bus := newBus(t, chat, nil)

	var got []model.ChatMessage
	collect(bus, &got)

	err := bus.Emit(ctx, EventSendMessage, SendMessage{
		RoomID:   testRoomID,
		SenderID: store.CanonicalRenterID,
		Content:  "still works without a broker",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	msgs, err := chat.Messages(ctx, testRoomID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, got[0].ID, msgs[0].ID)
}

func TestEmit_SendMessageRejectsWrongPayload(t *testing.T) {
	bus := newBus(t, newChatRepo(t), nil)
	err := bus.Emit(context.Background(), EventSendMessage, "not a SendMessage")
	require.Error(t, err)
}

func TestEmit_JoinRoomIsNoop(t *testing.T) {
	bus := newBus(t, newChatRepo(t), nil)

	fired := false
	bus.On(EventJoinRoom, func(any) { fired = true })

	require.NoError(t, bus.Emit(context.Background(), EventJoinRoom, testRoomID))
	require.False(t, fired)
}

func TestSend_UnknownRoomFails(t *testing.T) {
	bus := newBus(t, newChatRepo(t), nil)

	_, err := bus.SendChatMessage(context.Background(), "missing-room", store.CanonicalRenterID, "hi")
	require.ErrorIs(t, err, chatrepo.ErrRoomNotFound)
}

func TestOff_RemovesHandler(t *testing.T) {
	ctx := context.Background()
	chat := newChatRepo(t)
	bus := newBus(t, chat, nil)

	var got []model.ChatMessage
	id := collect(bus, &got)

	_, err := bus.SendChatMessage(ctx, testRoomID, store.CanonicalRenterID, "one")
	require.NoError(t, err)
	require.Len(t, got, 1)

	bus.Off(EventNewMessage, id)
	_, err = bus.SendChatMessage(ctx, testRoomID, store.CanonicalRenterID, "two")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestReceive_DropsDuplicateNonce(t *testing.T) {
	chat := newChatRepo(t)
	broker := NewLocalBroker()
	bus := newBus(t, chat, broker)

	var got []model.ChatMessage
	collect(bus, &got)

	env := Envelope{
		Event:           EventNewMessage,
		Payload:         []byte(`{"id":"m-1","roomId":"room-1","senderId":"test-user","content":"dup"}`),
		OriginSessionID: "another-session",
		Nonce:           "nonce-1",
	}
	require.NoError(t, broker.Publish(context.Background(), env))
	require.NoError(t, broker.Publish(context.Background(), env))

	require.Len(t, got, 1)
}

func TestReceive_SuppressesOwnEcho(t *testing.T) {
	chat := newChatRepo(t)
	broker := NewLocalBroker()
	bus := newBus(t, chat, broker)

	var got []model.ChatMessage
	collect(bus, &got)

	env := Envelope{
		Event:           EventNewMessage,
		Payload:         []byte(`{"id":"m-2","roomId":"room-1","senderId":"test-user","content":"echo"}`),
		OriginSessionID: bus.SessionID(),
		Nonce:           "nonce-2",
	}
	require.NoError(t, broker.Publish(context.Background(), env))
	require.Empty(t, got)
}
