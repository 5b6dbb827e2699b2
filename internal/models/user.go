package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// DefaultPicture is assigned when a user registers without uploading one.
const DefaultPicture = "https://res.cloudinary.com/rahul4019/image/upload/w_1000,c_fill,ar_1:1,g_auto,r_max,bo_5px_solid_red,b_rgb:262c35/v1695133265/pngwing.com_zi4cre.png"

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         string    `json:"role" db:"role"`
	IsVerified   bool      `json:"isVerified" db:"is_verified"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Address      *string   `json:"address,omitempty" db:"address"`
	Picture      string    `json:"picture" db:"picture"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRole reports whether role is one of the accepted account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// IsOwner reports whether the account is a property owner.
func (u *User) IsOwner() bool { return u.Role == RoleOwner }
