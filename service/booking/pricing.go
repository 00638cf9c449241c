package booking

import (
	"math"
	"time"
)

const (
	serviceFeeRate = 0.10
	depositRate    = 0.20
)

// Quote is the deterministic price breakdown computed before a booking is
// created and persisted unchanged afterwards.
type Quote struct {
	RentalDays int     `json:"rental_days"`
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"service_fee"`
	Total      float64 `json:"total"`
	Deposit    float64 `json:"deposit"`
}

// RentalDays counts whole days between start and end, inclusive of the first
// day. Equal or reversed date pairs clamp to a single day.
func RentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	if days < 1 {
		days = 1
	}
	return days
}

func NewQuote(dailyPrice, replacementValue float64, start, end time.Time) Quote {
	days := RentalDays(start, end)
	subtotal := dailyPrice * float64(days)
	fee := roundHalfUp(subtotal * serviceFeeRate)
	return Quote{
		RentalDays: days,
		Subtotal:   subtotal,
		ServiceFee: fee,
		Total:      subtotal + fee,
		Deposit:    roundHalfUp(replacementValue * depositRate),
	}
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
