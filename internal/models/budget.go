package models

import "github.com/shopspring/decimal"

// MonthlyBudget is the overall spending budget for one calendar
// month. At most one row exists per (user, month); writes replace
// the amount.
type MonthlyBudget struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	UserID uint            `gorm:"not null;uniqueIndex:idx_monthly_budget_user_month" json:"user_id"`
	Month  string          `gorm:"size:7;not null;uniqueIndex:idx_monthly_budget_user_month" json:"month"`
	Amount decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
}

// CategoryBudget is the spending budget for one category in one
// calendar month. At most one row exists per (user, category,
// month); writes replace the amount.
type CategoryBudget struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;uniqueIndex:idx_category_budget_key" json:"user_id"`
	CategoryID uint            `gorm:"not null;uniqueIndex:idx_category_budget_key" json:"category_id"`
	Month      string          `gorm:"size:7;not null;uniqueIndex:idx_category_budget_key" json:"month"`
	Amount     decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
