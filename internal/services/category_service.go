package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category, defaulting the color when
// none is given. Duplicate names are allowed.
func (s *categoryService) CreateCategory(userID uint, name, color string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if color == "" {
		color = models.DefaultCategoryColor
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Color:  color,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories retrieves all categories for a user, by name.
func (s *categoryService) GetUserCategories(userID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID for a specific user.
func (s *categoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates an existing category's name and color.
func (s *categoryService) UpdateCategory(userID, categoryID uint, name, color string) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if color == "" {
		color = models.DefaultCategoryColor
	}

	updates := map[string]interface{}{"name": name, "color": color}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// DeleteCategory deletes a category. A category referenced by at
// least one transaction cannot be deleted; the caller gets a
// distinguishable conflict instead of an orphaned reference.
func (s *categoryService) DeleteCategory(userID, categoryID uint) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	var refCount int64
	if err := s.db.Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&refCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if refCount > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
