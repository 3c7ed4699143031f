package domain

import (
	"time"

	"github.com/google/uuid"
)

// User Model
type User struct {
	ID           uuid.UUID     `gorm:"column:user_id;type:char(36);primaryKey" json:"user_id"`               // Primary key
	Email        string        `gorm:"size:255;uniqueIndex;not null" json:"email"`                           // Unique, compared as stored
	Name         string        `gorm:"size:100;not null" json:"name"`                                        // Display name
	PasswordHash string        `gorm:"size:255;not null" json:"-"`                                           // bcrypt hash, never serialized
	CreatedAt    time.Time     `gorm:"not null" json:"created_at"`                                           // Creation timestamp
	Categories   []Category    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"` // Owned categories
	Transactions []Transaction `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"` // Owned transactions
	Budgets      []Budget      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"` // Owned budgets
}
