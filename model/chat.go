package model

import "time"

// SystemSender authors lifecycle notification messages.
const SystemSender = "system"

// ChatRoom links the renter and owner of one booking. Exactly one room per
// booking; participants are fixed at creation.
type ChatRoom struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"bookingId"`
	Participants []string  `json:"participants"` // [renterId, ownerId]
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ChatMessage struct {
	ID        string     `json:"id"`
	RoomID    string     `json:"roomId"`
	SenderID  string     `json:"senderId"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}
