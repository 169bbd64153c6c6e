package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/services"
)

// BudgetHandler handles monthly and per-category budget requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// SetBudgetRequest represents the payload for writing a budget amount.
type SetBudgetRequest struct {
	Month  string          `json:"month" binding:"omitempty,month"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthQuery holds the optional month query parameter.
type MonthQuery struct {
	Month string `form:"month" binding:"omitempty,month"`
}

// monthOrCurrent falls back to the current calendar month when the
// client does not name one. This default lives at the HTTP edge; the
// aggregation core always receives the month explicitly.
func monthOrCurrent(month string) string {
	if month != "" {
		return month
	}
	return time.Now().Format(models.MonthLayout)
}

// GetMonthlyBudget returns the overall budget for a month. An unset
// budget is a normal state and answers with a null amount.
// @Summary     Get monthly budget
// @Description Get the overall budget for a month (defaults to the current month)
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Calendar month (YYYY-MM)"
// @Success     200 {object} map[string]interface{} "Month and amount (null when unset)"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Router      /budget [get]
func (h *BudgetHandler) GetMonthlyBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	month := monthOrCurrent(q.Month)

	budget, err := h.budgetService.GetMonthlyBudget(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if budget == nil {
		c.JSON(http.StatusOK, gin.H{"month": month, "amount": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": budget.Month, "amount": budget.Amount})
}

// SetMonthlyBudget upserts the overall budget for a month.
// @Summary     Set monthly budget
// @Description Write the overall budget for a month; an existing amount is replaced
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetBudgetRequest true "Month and amount"
// @Success     200 {object} models.MonthlyBudget "Stored budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /budget [put]
func (h *BudgetHandler) SetMonthlyBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.SetMonthlyBudget(userID, monthOrCurrent(req.Month), req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": budget.Month, "amount": budget.Amount})
}

// GetCategoryBudgets lists per-category budgets for a month.
// @Summary     List category budgets
// @Description Get the per-category budgets for a month (defaults to the current month)
// @Tags        budget
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Calendar month (YYYY-MM)"
// @Success     200 {object} map[string]interface{} "Month and budgets"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Router      /budget/categories [get]
func (h *BudgetHandler) GetCategoryBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	month := monthOrCurrent(q.Month)

	budgets, err := h.budgetService.GetCategoryBudgets(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": month, "budgets": budgets})
}

// SetCategoryBudget upserts one category's budget for a month.
// @Summary     Set a category budget
// @Description Write one category's budget for a month; an existing amount is replaced
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       categoryId path int true "Category ID"
// @Param       request body SetBudgetRequest true "Month and amount"
// @Success     200 {object} models.CategoryBudget "Stored budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /budget/categories/{categoryId} [put]
func (h *BudgetHandler) SetCategoryBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "categoryId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.SetCategoryBudget(userID, categoryID, monthOrCurrent(req.Month), req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category_id": budget.CategoryID,
		"month":       budget.Month,
		"amount":      budget.Amount,
	})
}
