package model

import "time"

type ItemCategory string

const (
	CategoryCamera    ItemCategory = "Camera"
	CategoryDrone     ItemCategory = "Drone"
	CategoryAudio     ItemCategory = "Audio"
	CategoryLighting  ItemCategory = "Lighting"
	CategoryGaming    ItemCategory = "Gaming"
	CategoryComputing ItemCategory = "Computing"
	CategoryVR        ItemCategory = "VR"
	CategoryOther     ItemCategory = "Other"
)

// Item is a piece of equipment offered for rent. Items are never purged;
// delisting flips IsActive off.
type Item struct {
	ID               string       `json:"id"`
	OwnerID          string       `json:"ownerId"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Category         ItemCategory `json:"category"`
	DailyPrice       float64      `json:"dailyPrice"`
	ReplacementValue float64      `json:"replacementValue"`
	MinRentDays      int          `json:"minRentDays"`
	Images           []string     `json:"images"`
	LocationLat      *float64     `json:"locationLat,omitempty"`
	LocationLng      *float64     `json:"locationLng,omitempty"`
	IsActive         bool         `json:"isActive"`
	CreatedAt        time.Time    `json:"createdAt"`

	// Analytics
	Views         int `json:"views,omitempty"`
	BookingsCount int `json:"bookingsCount,omitempty"`
}
