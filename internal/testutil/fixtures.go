package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pennywise/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique provider subject id.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	user := &models.User{
		GoogleID:  fmt.Sprintf("google-sub-%d", n),
		Email:     fmt.Sprintf("user%d@test.com", n),
		Name:      fmt.Sprintf("Test User %d", n),
		AvatarURL: "https://example.com/avatar.png",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Color:  models.DefaultCategoryColor,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction on the given date.
// Amount is given as a decimal string, e.g. "12.50".
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, date models.Date, amount string, txType models.TransactionType, categoryID *uint) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Date:        date,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:      decimal.RequireFromString(amount),
		Type:        txType,
		CategoryID:  categoryID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestMonthlyBudget creates an overall budget for a month.
func CreateTestMonthlyBudget(t *testing.T, db *gorm.DB, userID uint, month, amount string) *models.MonthlyBudget {
	t.Helper()

	budget := &models.MonthlyBudget{
		UserID: userID,
		Month:  month,
		Amount: decimal.RequireFromString(amount),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test monthly budget: %v", err)
	}
	return budget
}

// CreateTestCategoryBudget creates one category's budget for a month.
func CreateTestCategoryBudget(t *testing.T, db *gorm.DB, userID, categoryID uint, month, amount string) *models.CategoryBudget {
	t.Helper()

	budget := &models.CategoryBudget{
		UserID:     userID,
		CategoryID: categoryID,
		Month:      month,
		Amount:     decimal.RequireFromString(amount),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test category budget: %v", err)
	}
	return budget
}
