package store

import (
	"time"

	"github.com/TonCerques/alugaki/model"
	"github.com/TonCerques/alugaki/util/hash"
)

// Canonical fixture identifiers. The two demo accounts and the starter
// catalog are reinserted by the seed migration whenever they are missing.
const (
	CanonicalOwnerID  = "admin-user"
	CanonicalRenterID = "test-user"

	// DeprecatedOwnerID was used by early datasets; items still pointing at
	// it are rewritten to the canonical owner.
	DeprecatedOwnerID = "user-demo"

	seedPassword = "123456"
)

func seedCanonical(ds *model.Dataset) bool {
	changed := false
	now := time.Now().UTC()

	accounts := []struct {
		id, email, name, bio string
	}{
		{CanonicalOwnerID, "admin@alugaki.test", "Alugaki Official", "Official Alugaki partner lessor."},
		{CanonicalRenterID, "renter@alugaki.test", "Test Renter", "Independent filmmaker."},
	}
	for _, a := range accounts {
		if hasUser(ds, a.id) {
			continue
		}
		pw, err := hash.HashPassword(seedPassword)
		if err != nil {
			continue
		}
		ds.Users = append(ds.Users, model.User{
			ID:           a.id,
			Email:        a.email,
			PasswordHash: pw,
			CreatedAt:    now,
		})
		ds.Profiles = append(ds.Profiles, model.Profile{
			ID:        a.id,
			Email:     a.email,
			FullName:  a.name,
			Bio:       a.bio,
			KycStatus: model.KycVerified,
			CreatedAt: now,
		})
		changed = true
	}

	for _, it := range starterCatalog(now) {
		if hasItem(ds, it.ID) {
			continue
		}
		ds.Items = append(ds.Items, it)
		changed = true
	}
	return changed
}

func starterCatalog(now time.Time) []model.Item {
	return []model.Item{
		{
			ID:               "item-1",
			OwnerID:          CanonicalOwnerID,
			Title:            "Sony A7S III Cinema Kit",
			Description:      "Full kit with 24-70mm GM lens, two batteries and ND filters. Great for low-light video.",
			Category:         model.CategoryCamera,
			DailyPrice:       150,
			ReplacementValue: 3500,
			MinRentDays:      2,
			Images:           []string{"https://images.alugaki.test/items/sony-a7s-iii.jpg"},
			IsActive:         true,
			CreatedAt:        now,
		},
		{
			ID:               "item-2",
			OwnerID:          CanonicalOwnerID,
			Title:            "DJI Mavic 3 Cine",
			Description:      "ProRes support. Includes three batteries and the RC Pro controller. Fly More combo.",
			Category:         model.CategoryDrone,
			DailyPrice:       200,
			ReplacementValue: 5000,
			MinRentDays:      1,
			Images:           []string{"https://images.alugaki.test/items/mavic-3-cine.jpg"},
			IsActive:         true,
			CreatedAt:        now,
		},
		{
			ID:               "item-3",
			OwnerID:          CanonicalOwnerID,
			Title:            "Aputure 600d Pro",
			Description:      "High-output LED. Includes softbox and heavy-duty stand.",
			Category:         model.CategoryLighting,
			DailyPrice:       85,
			ReplacementValue: 1800,
			MinRentDays:      1,
			Images:           []string{"https://images.alugaki.test/items/aputure-600d.jpg"},
			IsActive:         true,
			CreatedAt:        now,
		},
	}
}

func hasUser(ds *model.Dataset, id string) bool {
	for _, u := range ds.Users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func hasItem(ds *model.Dataset, id string) bool {
	for _, it := range ds.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}
