package services

import (
	"errors"
	"regexp"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

var monthKeyRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// budgetService handles monthly and per-category budget logic.
type budgetService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, categoryService CategoryServicer) BudgetServicer {
	return &budgetService{db: db, categoryService: categoryService}
}

func validateBudgetKey(month string, amount decimal.Decimal) error {
	if !monthKeyRegex.MatchString(month) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be in YYYY-MM form")
	}
	if amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	return nil
}

// GetMonthlyBudget returns the user's overall budget for a month, or
// nil when none is set. "No budget" is a normal state, not an error.
func (s *budgetService) GetMonthlyBudget(userID uint, month string) (*models.MonthlyBudget, error) {
	var budget models.MonthlyBudget
	err := s.db.Where("user_id = ? AND month = ?", userID, month).First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// SetMonthlyBudget writes the overall budget for a month. Writing a
// month that already has one replaces the amount; the unique
// (user, month) key resolves concurrent writes last-writer-wins.
func (s *budgetService) SetMonthlyBudget(userID uint, month string, amount decimal.Decimal) (*models.MonthlyBudget, error) {
	if err := validateBudgetKey(month, amount); err != nil {
		return nil, err
	}

	budget := &models.MonthlyBudget{UserID: userID, Month: month, Amount: amount}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount"}),
	}).Create(budget).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var out models.MonthlyBudget
	if err := s.db.Where("user_id = ? AND month = ?", userID, month).First(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &out, nil
}

// GetCategoryBudgets lists the user's per-category budgets for a month.
func (s *budgetService) GetCategoryBudgets(userID uint, month string) ([]models.CategoryBudget, error) {
	var budgets []models.CategoryBudget
	if err := s.db.Where("user_id = ? AND month = ?", userID, month).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// SetCategoryBudget writes one category's budget for a month with
// the same upsert semantics as SetMonthlyBudget, keyed by
// (user, category, month). The category must belong to the user.
func (s *budgetService) SetCategoryBudget(userID, categoryID uint, month string, amount decimal.Decimal) (*models.CategoryBudget, error) {
	if err := validateBudgetKey(month, amount); err != nil {
		return nil, err
	}

	if _, err := s.categoryService.GetCategoryByID(userID, categoryID); err != nil {
		return nil, err
	}

	budget := &models.CategoryBudget{UserID: userID, CategoryID: categoryID, Month: month, Amount: amount}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount"}),
	}).Create(budget).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var out models.CategoryBudget
	if err := s.db.Where("user_id = ? AND category_id = ? AND month = ?", userID, categoryID, month).First(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &out, nil
}
