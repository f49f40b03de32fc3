package models

import "time"

// User is a business owner account.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	BusinessName string    `gorm:"size:255;not null" json:"businessName"`
	Logo         string    `gorm:"size:1024" json:"logo,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"` // bcrypt, never serialised
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
