package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// UpsertGoogleUser creates the user on first login, keyed by the
// provider subject id, and refreshes the profile fields on every
// subsequent login.
func (s *userService) UpsertGoogleUser(googleID, email, name, avatarURL string) (*models.User, error) {
	if googleID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "provider subject id is required")
	}

	user := &models.User{
		GoogleID:  googleID,
		Email:     email,
		Name:      name,
		AvatarURL: avatarURL,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "google_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "avatar_url"}),
	}).Create(user).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Re-read by the unique key so the returned record carries the
	// authoritative id regardless of which branch the upsert took.
	var out models.User
	if err := s.db.Where("google_id = ?", googleID).First(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &out, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// StoreRefreshTokenHash records the hash of the user's current
// refresh token; issuing a new one invalidates the old.
func (s *userService) StoreRefreshTokenHash(userID uint, tokenHash string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token_hash", tokenHash)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token hash for a user.
func (s *userService) GetRefreshTokenHash(userID uint) (string, error) {
	var user models.User
	if err := s.db.Select("refresh_token_hash").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user.RefreshTokenHash, nil
}
