package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categoryService CategoryServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		categoryService: categoryService,
	}
}

// validateInput rejects malformed records before they reach storage
// or the aggregation engine.
func (s *transactionService) validateInput(userID uint, in TransactionInput) error {
	if in.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if in.Amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if !in.Type.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if in.CategoryID != nil {
		// A transaction may only reference a category of its own user.
		if _, err := s.categoryService.GetCategoryByID(userID, *in.CategoryID); err != nil {
			return err
		}
	}
	return nil
}

// CreateTransaction creates a new transaction for a user.
func (s *transactionService) CreateTransaction(userID uint, in TransactionInput) (*models.Transaction, error) {
	if err := s.validateInput(userID, in); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		CategoryID:  in.CategoryID,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetUserTransactions retrieves a page of the user's transactions,
// newest first with id as the tie-break for same-date entries.
func (s *transactionService) GetUserTransactions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user.
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction replaces the editable fields of a transaction.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, in TransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if err := s.validateInput(userID, in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"date":        in.Date,
		"description": in.Description,
		"amount":      in.Amount,
		"type":        in.Type,
		"category_id": in.CategoryID,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// DeleteTransaction deletes a transaction. There is no soft delete.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
