package models

import (
	"time"

	"github.com/google/uuid"
)

// Property types a place can be listed under.
const (
	PropertyTypePG          = "pg"
	PropertyTypeHostel      = "hostel"
	PropertyTypePartyHall   = "party-hall"
	PropertyTypeBanquetHall = "banquet-hall"
	PropertyTypeRooftop     = "rooftop"

	DefaultPropertyType = PropertyTypePG
)

// Place activity states. A place is created pending and becomes publicly
// visible only after an admin approves it.
const (
	PlacePending = int16(0)
	PlaceActive  = int16(1)
)

// PropertyTypes returns the fixed set of listable property types.
func PropertyTypes() []string {
	return []string{
		PropertyTypePG,
		PropertyTypeHostel,
		PropertyTypePartyHall,
		PropertyTypeBanquetHall,
		PropertyTypeRooftop,
	}
}

// ValidPropertyType reports whether t is a listable property type.
func ValidPropertyType(t string) bool {
	for _, pt := range PropertyTypes() {
		if t == pt {
			return true
		}
	}
	return false
}

type Place struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OwnerID      uuid.UUID `json:"owner" db:"owner_id"`
	Title        string    `json:"title" db:"title"`
	Address      string    `json:"address" db:"address"`
	Photos       []string  `json:"photos" db:"photos"`
	Description  *string   `json:"description,omitempty" db:"description"`
	Perks        []string  `json:"perks" db:"perks"`
	ExtraInfo    *string   `json:"extraInfo,omitempty" db:"extra_info"`
	MaxGuests    *int      `json:"maxGuests,omitempty" db:"max_guests"`
	Price        *float64  `json:"price,omitempty" db:"price"`
	PropertyType string    `json:"propertyType" db:"property_type"`
	IsActive     int16     `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// OwnerSummary is the reduced owner projection joined onto pending places.
type OwnerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PendingPlace is a pending listing together with its owner summary, as
// shown on the admin approval queue.
type PendingPlace struct {
	Place
	Owner OwnerSummary `json:"ownerInfo"`
}
