package models

import "time"

// Profile is the account record of an owner.
type Profile struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Company      *string   `db:"company" json:"company,omitempty"`
	Role         *string   `db:"role" json:"role,omitempty"`
	Avatar       *string   `db:"avatar" json:"avatar,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// ProfilePatch is a partial update of a profile.
type ProfilePatch struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Role    *string `json:"role"`
	Avatar  *string `json:"avatar"`
}
