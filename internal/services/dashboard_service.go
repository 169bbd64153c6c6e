package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/summary"
)

// dashboardService loads a snapshot of the user's data and feeds it
// through the pure aggregation and budget-evaluation functions. The
// result is recomputed in full on every call; there is no cache to
// go stale.
type dashboardService struct {
	db            *gorm.DB
	budgetService BudgetServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, budgetService BudgetServicer) DashboardServicer {
	return &dashboardService{db: db, budgetService: budgetService}
}

// GetDashboard builds the monthly summary and budget evaluation for
// the calendar month of now. The reference instant is required;
// reading an ambient clock here would make the result untestable.
func (s *dashboardService) GetDashboard(userID uint, now time.Time) (*Dashboard, error) {
	if now.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "reference time is required")
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	month := now.Format(models.MonthLayout)

	globalBudget := decimal.Zero
	if b, err := s.budgetService.GetMonthlyBudget(userID, month); err != nil {
		return nil, err
	} else if b != nil {
		globalBudget = b.Amount
	}

	categoryBudgetRows, err := s.budgetService.GetCategoryBudgets(userID, month)
	if err != nil {
		return nil, err
	}
	categoryBudgets := make(map[uint]decimal.Decimal, len(categoryBudgetRows))
	for _, cb := range categoryBudgetRows {
		categoryBudgets[cb.CategoryID] = cb.Amount
	}

	monthlySummary := summary.Compute(snapshotTransactions(transactions), snapshotCategories(categories), now)
	evaluation := summary.Evaluate(monthlySummary, globalBudget, categoryBudgets)

	return &Dashboard{Summary: monthlySummary, Budget: evaluation}, nil
}

// snapshotTransactions maps stored rows to the engine's wire shape.
func snapshotTransactions(txs []models.Transaction) []summary.Transaction {
	out := make([]summary.Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, summary.Transaction{
			ID:          tx.ID,
			Date:        tx.Date.String(),
			Description: tx.Description,
			Amount:      tx.Amount,
			Type:        tx.Type,
			CategoryID:  tx.CategoryID,
		})
	}
	return out
}

func snapshotCategories(cats []models.Category) []summary.Category {
	out := make([]summary.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, summary.Category{ID: c.ID, Name: c.Name, Color: c.Color})
	}
	return out
}
