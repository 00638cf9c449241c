package model

import "time"

// KycStatus tracks identity verification on a profile.
type KycStatus string

const (
	KycUnverified KycStatus = "UNVERIFIED"
	KycPending    KycStatus = "PENDING"
	KycVerified   KycStatus = "VERIFIED"
	KycRejected   KycStatus = "REJECTED"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the public side of a user account. Profile.ID is always the
// owning User.ID; the pair is created together and never reassigned.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	KycStatus KycStatus `json:"kycStatus"`
	CreatedAt time.Time `json:"createdAt"`
}

type VerificationLog struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	DocumentType string    `json:"documentType"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

// RegisterReq represents the sign-up payload.
type RegisterReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name"`
}

// LoginReq represents the sign-in payload.
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
