package models

import "github.com/shopspring/decimal"

// TransactionType discriminates income from expense entries.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known discriminant.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single income or expense entry. Amount is stored
// as a non-negative magnitude; the sign is implied by Type.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Date        Date            `gorm:"not null" json:"date"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Type        TransactionType `gorm:"size:20;not null" json:"type"`
	CategoryID  *uint           `json:"category_id,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
