package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionType is either income or expense.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// ParseTransactionType returns the matching type or an error for anything else.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return t, nil
	default:
		return "", fmt.Errorf("type must be one of income, expense")
	}
}

// Valid reports whether t is one of the known types.
func (t TransactionType) Valid() bool {
	_, err := ParseTransactionType(string(t))
	return err == nil
}

// Transaction Model
type Transaction struct {
	ID         uuid.UUID       `gorm:"column:transaction_id;type:char(36);primaryKey" json:"transaction_id"` // Primary key
	UserID     uuid.UUID       `gorm:"type:char(36);not null;index" json:"user_id"`                          // Owner
	CategoryID uuid.UUID       `gorm:"type:char(36);not null;index" json:"category_id"`                      // Category reference
	Amount     int64           `gorm:"not null" json:"amount"`                                               // Smallest currency unit
	Type       TransactionType `gorm:"type:varchar(16);not null" json:"type"`                                // Mirrors the category type
	Date       Date            `gorm:"not null;index" json:"date"`                                           // Calendar date
	Memo       *string         `gorm:"type:text" json:"memo"`                                                // Optional free text
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`                                           // Creation timestamp
}
