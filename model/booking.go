package model

import "time"

type BookingStatus string

const (
	BookingPendingApproval BookingStatus = "PENDING_APPROVAL" // renter requested
	BookingAwaitingPayment BookingStatus = "AWAITING_PAYMENT" // owner approved (or auto-approved)
	BookingConfirmed       BookingStatus = "CONFIRMED"        // renter paid
	BookingActive          BookingStatus = "ACTIVE"           // handover done
	BookingCompleted       BookingStatus = "COMPLETED"        // item returned
	BookingCancelled       BookingStatus = "CANCELLED"
	BookingRejected        BookingStatus = "REJECTED"
)

// Terminal reports whether s has no outgoing transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled || s == BookingRejected
}

type Booking struct {
	ID               string        `json:"id"`
	ItemID           string        `json:"itemId"`
	RenterID         string        `json:"renterId"`
	OwnerID          string        `json:"ownerId"`
	StartDate        time.Time     `json:"startDate"`
	EndDate          time.Time     `json:"endDate"`
	TotalPrice       float64       `json:"totalPrice"`
	DepositAmount    float64       `json:"depositAmount"`
	Status           BookingStatus `json:"status"`
	ContractAccepted bool          `json:"contractAccepted"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// ContractLog records a renter accepting the rental contract at payment time.
// Written exactly once per booking.
type ContractLog struct {
	ID              string    `json:"id"`
	BookingID       string    `json:"bookingId"`
	UserID          string    `json:"userId"`
	ContractVersion string    `json:"contractVersion"`
	IPAddress       string    `json:"ipAddress"`
	AcceptedAt      time.Time `json:"acceptedAt"`
}
