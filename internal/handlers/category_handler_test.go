package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/services"
)

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn    func(userID uint, name, color string) (*models.Category, error)
	getUserCategoriesFn func(userID uint) ([]models.Category, error)
	getCategoryByIDFn   func(userID, categoryID uint) (*models.Category, error)
	updateCategoryFn    func(userID, categoryID uint, name, color string) (*models.Category, error)
	deleteCategoryFn    func(userID, categoryID uint) error
}

func (m *mockCategoryService) CreateCategory(userID uint, name, color string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(userID, name, color)
	}
	return &models.Category{ID: 1, UserID: userID, Name: name, Color: color}, nil
}

func (m *mockCategoryService) GetUserCategories(userID uint) ([]models.Category, error) {
	if m.getUserCategoriesFn != nil {
		return m.getUserCategoriesFn(userID)
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(userID, categoryID uint) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(userID, categoryID)
	}
	return &models.Category{ID: categoryID, UserID: userID}, nil
}

func (m *mockCategoryService) UpdateCategory(userID, categoryID uint, name, color string) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(userID, categoryID, name, color)
	}
	return &models.Category{ID: categoryID, UserID: userID, Name: name, Color: color}, nil
}

func (m *mockCategoryService) DeleteCategory(userID, categoryID uint) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(userID, categoryID)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	r.POST("/categories", injectUserID(1), handler.CreateCategory)
	r.GET("/categories", injectUserID(1), handler.GetUserCategories)
	r.GET("/categories/:id", injectUserID(1), handler.GetCategoryByID)
	r.PUT("/categories/:id", injectUserID(1), handler.UpdateCategory)
	r.DELETE("/categories/:id", injectUserID(1), handler.DeleteCategory)
	return r
}

// --- tests ---

func TestCreateCategoryHandler(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, http.MethodPost, "/categories", `{"name": "Groceries", "color": "#FF5733"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		category, ok := result["category"].(map[string]interface{})
		if !ok || category["name"] != "Groceries" {
			t.Errorf("expected created category, got %s", rec.Body.String())
		}
	})

	t.Run("missing_name", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, http.MethodPost, "/categories", `{"color": "#FF5733"}`)
		assertErrorCode(t, rec, http.StatusBadRequest, "INVALID_INPUT")
	})

	t.Run("malformed_color", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, http.MethodPost, "/categories", `{"name": "Groceries", "color": "red"}`)
		assertErrorCode(t, rec, http.StatusBadRequest, "INVALID_INPUT")
	})
}

func TestGetUserCategoriesHandler(t *testing.T) {
	svc := &mockCategoryService{
		getUserCategoriesFn: func(userID uint) ([]models.Category, error) {
			return []models.Category{
				{ID: 1, UserID: userID, Name: "Bills"},
				{ID: 2, UserID: userID, Name: "Groceries"},
			}, nil
		},
	}
	handler := NewCategoryHandler(svc)
	r := setupCategoryRouter(handler)

	rec := doRequest(r, http.MethodGet, "/categories", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	categories, ok := result["categories"].([]interface{})
	if !ok || len(categories) != 2 {
		t.Errorf("expected 2 categories, got %s", rec.Body.String())
	}
}

func TestGetCategoryByIDHandler(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryByIDFn: func(userID, categoryID uint) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		handler := NewCategoryHandler(svc)
		r := setupCategoryRouter(handler)

		rec := doRequest(r, http.MethodGet, "/categories/42", "")
		assertErrorCode(t, rec, http.StatusNotFound, "CATEGORY_NOT_FOUND")
	})

	t.Run("bad_path_id", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, http.MethodGet, "/categories/abc", "")
		assertErrorCode(t, rec, http.StatusBadRequest, "INVALID_INPUT")
	})
}

func TestUpdateCategoryHandler(t *testing.T) {
	handler := NewCategoryHandler(&mockCategoryService{})
	r := setupCategoryRouter(handler)

	rec := doRequest(r, http.MethodPut, "/categories/3", `{"name": "Renamed", "color": "#123456"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	category, ok := result["category"].(map[string]interface{})
	if !ok || category["name"] != "Renamed" {
		t.Errorf("expected renamed category, got %s", rec.Body.String())
	}
}

func TestDeleteCategoryHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var deletedID uint
		svc := &mockCategoryService{
			deleteCategoryFn: func(userID, categoryID uint) error {
				deletedID = categoryID
				return nil
			},
		}
		handler := NewCategoryHandler(svc)
		r := setupCategoryRouter(handler)

		rec := doRequest(r, http.MethodDelete, "/categories/7", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deletedID != 7 {
			t.Errorf("expected delete of category 7, got %d", deletedID)
		}
	})

	t.Run("in_use_conflict", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteCategoryFn: func(userID, categoryID uint) error {
				return apperrors.ErrCategoryInUse
			},
		}
		handler := NewCategoryHandler(svc)
		r := setupCategoryRouter(handler)

		rec := doRequest(r, http.MethodDelete, "/categories/7", "")
		assertErrorCode(t, rec, http.StatusConflict, "CATEGORY_IN_USE")
	})
}
