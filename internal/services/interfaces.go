package services

import (
	"time"

	"github.com/shopspring/decimal"

	"pennywise/internal/models"
	"pennywise/internal/pagination"
	"pennywise/internal/summary"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	UpsertGoogleUser(googleID, email, name, avatarURL string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name, color string) (*models.Category, error)
	GetUserCategories(userID uint) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	UpdateCategory(userID, categoryID uint, name, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
}

// TransactionInput carries the user-editable fields of a transaction.
type TransactionInput struct {
	Date        models.Date
	Description string
	Amount      decimal.Decimal
	Type        models.TransactionType
	CategoryID  *uint
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID uint, in TransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, in TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}

// BudgetServicer defines the contract for monthly and per-category
// budget logic. Get returns nil (without error) when no budget is
// set for the month; Set has upsert semantics on the unique key.
type BudgetServicer interface {
	GetMonthlyBudget(userID uint, month string) (*models.MonthlyBudget, error)
	SetMonthlyBudget(userID uint, month string, amount decimal.Decimal) (*models.MonthlyBudget, error)
	GetCategoryBudgets(userID uint, month string) ([]models.CategoryBudget, error)
	SetCategoryBudget(userID, categoryID uint, month string, amount decimal.Decimal) (*models.CategoryBudget, error)
}

// Dashboard bundles the aggregation output with its budget evaluation.
type Dashboard struct {
	Summary summary.MonthlySummary   `json:"summary"`
	Budget  summary.BudgetEvaluation `json:"budget"`
}

// DashboardServicer assembles the dashboard from a fresh snapshot of
// the user's data. The reference instant is explicit so callers (and
// tests) control what "this month" means.
type DashboardServicer interface {
	GetDashboard(userID uint, now time.Time) (*Dashboard, error)
}
