package chat

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/TonCerques/alugaki/model"
	"github.com/TonCerques/alugaki/repository/store"
	"github.com/google/uuid"
)

// ErrRoomNotFound is returned when a message targets an unknown room.
var ErrRoomNotFound = errors.New("chat room not found")

type Repo interface {
	// RoomsByUser returns the user's rooms, most recently active first.
	RoomsByUser(ctx context.Context, userID string) ([]model.ChatRoom, error)
	// Messages returns the room history in append order.
	Messages(ctx context.Context, roomID string) ([]model.ChatMessage, error)
	// Send appends a message, bumps the room's updatedAt and persists.
	Send(ctx context.Context, roomID, senderID, content string) (model.ChatMessage, error)
	RoomByBooking(ctx context.Context, bookingID string) (*model.ChatRoom, error)
}

type repo struct{ s *store.Store }

func New(s *store.Store) Repo { return &repo{s: s} }

func (r *repo) RoomsByUser(ctx context.Context, userID string) ([]model.ChatRoom, error) {
	var out []model.ChatRoom
	err := r.s.View(ctx, func(ds *model.Dataset) error {
		for _, room := range ds.ChatRooms {
			for _, p := range room.Participants {
				if p == userID {
					out = append(out, room)
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *repo) Messages(ctx context.Context, roomID string) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	err := r.s.View(ctx, func(ds *model.Dataset) error {
		for _, m := range ds.Messages {
			if m.RoomID == roomID {
				out = append(out, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *repo) Send(ctx context.Context, roomID, senderID, content string) (model.ChatMessage, error) {
	var msg model.ChatMessage
	err := r.s.Update(ctx, func(ds *model.Dataset) error {
		var ok bool
		msg, ok = Append(ds, roomID, senderID, content, time.Now().UTC())
		if !ok {
			return ErrRoomNotFound
		}
		return nil
	})
	if err != nil {
		return model.ChatMessage{}, err
	}
	return msg, nil
}

func (r *repo) RoomByBooking(ctx context.Context, bookingID string) (*model.ChatRoom, error) {
	var found *model.ChatRoom
	err := r.s.View(ctx, func(ds *model.Dataset) error {
		if room := FindRoomByBooking(ds, bookingID); room != nil {
			cp := *room
			found = &cp
		}
		return nil
	})
	return found, err
}

// Append adds a message to a room inside an open dataset update and advances
// the room's updatedAt. updatedAt never moves backwards.
func Append(ds *model.Dataset, roomID, senderID, content string, at time.Time) (model.ChatMessage, bool) {
	room := findRoom(ds, roomID)
	if room == nil {
		return model.ChatMessage{}, false
	}
	msg := model.ChatMessage{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: at,
	}
	ds.Messages = append(ds.Messages, msg)
	if at.After(room.UpdatedAt) {
		room.UpdatedAt = at
	}
	return msg, true
}

// FindRoomByBooking locates a booking's room inside an open dataset update.
func FindRoomByBooking(ds *model.Dataset, bookingID string) *model.ChatRoom {
	for i := range ds.ChatRooms {
		if ds.ChatRooms[i].BookingID == bookingID {
			return &ds.ChatRooms[i]
		}
	}
	return nil
}

func findRoom(ds *model.Dataset, roomID string) *model.ChatRoom {
	for i := range ds.ChatRooms {
		if ds.ChatRooms[i].ID == roomID {
			return &ds.ChatRooms[i]
		}
	}
	return nil
}
