package domain

import (
	"time"

	"github.com/google/uuid"
)

// Budget Model. One row per (user, category, month).
type Budget struct {
	ID         uuid.UUID `gorm:"column:budget_id;type:char(36);primaryKey" json:"budget_id"`                           // Primary key
	UserID     uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_budget_user_category_month" json:"user_id"`     // Owner
	CategoryID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_budget_user_category_month" json:"category_id"` // Budgeted category
	Amount     int64     `gorm:"not null" json:"amount"`                                                               // Planned amount
	Month      Date      `gorm:"not null;uniqueIndex:idx_budget_user_category_month" json:"month"`                     // First day of the month
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`                                                           // Creation timestamp
}
