package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// DefaultColor is the gray assigned to categories created without a color.
const DefaultColor = "#808080"

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Frequency is how often a recurring category is expected to see a transaction.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// ParseFrequency returns the matching frequency or an error for anything else.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(s); f {
	case FrequencyMonthly, FrequencyYearly:
		return f, nil
	default:
		return "", fmt.Errorf("frequency must be one of monthly, yearly")
	}
}

// Category Model
type Category struct {
	ID            uuid.UUID       `gorm:"column:category_id;type:char(36);primaryKey" json:"category_id"` // Primary key
	UserID        uuid.UUID       `gorm:"type:char(36);not null;index" json:"user_id"`                    // Owner
	Name          string          `gorm:"size:100;not null" json:"name"`                                  // Display name
	Type          TransactionType `gorm:"type:varchar(16);not null" json:"type"`                          // income or expense
	Color         string          `gorm:"size:7;not null;default:'#808080'" json:"color"`                 // #RRGGBB
	IsRecurring   bool            `gorm:"not null;default:false" json:"is_recurring"`                     // Expected every period
	Frequency     *Frequency      `gorm:"type:varchar(16)" json:"frequency"`                              // Required when recurring
	DefaultAmount *int64          `json:"default_amount"`                                                 // Required when recurring
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`                                     // Creation timestamp
	Transactions  []Transaction   `gorm:"foreignKey:CategoryID;references:ID" json:"-"`
	Budgets       []Budget        `gorm:"foreignKey:CategoryID;references:ID" json:"-"`
}

// Validate checks the invariants that span more than one field.
func (c *Category) Validate() error {
	if _, err := ParseTransactionType(string(c.Type)); err != nil {
		return err
	}
	if !colorPattern.MatchString(c.Color) {
		return fmt.Errorf("color must be a #RRGGBB hex code")
	}
	if c.Frequency != nil {
		if _, err := ParseFrequency(string(*c.Frequency)); err != nil {
			return err
		}
	}
	if c.DefaultAmount != nil && *c.DefaultAmount < 0 {
		return fmt.Errorf("default_amount must not be negative")
	}
	if c.IsRecurring {
		if c.Frequency == nil {
			return fmt.Errorf("frequency is required for recurring categories")
		}
		if c.DefaultAmount == nil || *c.DefaultAmount <= 0 {
			return fmt.Errorf("default_amount must be positive for recurring categories")
		}
	}
	return nil
}
