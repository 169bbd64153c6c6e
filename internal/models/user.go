package models

import "time"

// User represents an account created on first identity-provider
// login. Profile fields are refreshed from the provider on every
// login; everything else a user owns hangs off the foreign keys.
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	GoogleID         string    `gorm:"uniqueIndex;not null" json:"-"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	AvatarURL        string    `json:"avatar_url"`
	RefreshTokenHash string    `gorm:"size:64" json:"-"`
	CreatedAt        time.Time `json:"created_at"`

	Categories   []Category    `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
