package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pennywise/internal/auth"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/middleware"
	"pennywise/internal/models"
	"pennywise/internal/services"
)

const stateCookieName = "oauth_state"

// AuthHandler drives the identity-provider sign-in flow and token
// lifecycle. The API never sees a password; Google authenticates the
// user and the handler upserts the account and issues JWTs.
type AuthHandler struct {
	userService services.UserServicer
	verifier    auth.Verifier
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer, verifier auth.Verifier) *AuthHandler {
	return &AuthHandler{userService: userService, verifier: verifier}
}

// RefreshRequest represents the token refresh payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse represents an issued token pair with the user profile.
type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// GoogleLogin redirects the browser to the provider's consent page.
// @Summary     Start Google sign-in
// @Description Redirect to the Google OAuth consent page
// @Tags        auth
// @Success     302 "Redirect to provider"
// @Router      /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.New().String()
	// The state round-trips through a short-lived cookie to bind the
	// callback to this browser session.
	c.SetCookie(stateCookieName, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.verifier.AuthCodeURL(state))
}

// GoogleCallback completes the handshake: verifies state, exchanges
// the code, upserts the user, and issues a token pair.
// @Summary     Complete Google sign-in
// @Description Exchange the OAuth code, upsert the user, and return tokens
// @Tags        auth
// @Produce     json
// @Param       state query string true "Opaque state from the login redirect"
// @Param       code  query string true "Authorization code"
// @Success     200 {object} TokenResponse "Signed-in user and token pair"
// @Failure     401 {object} ErrorResponse "Handshake failed"
// @Router      /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	expected, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != expected {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrOAuthFailed, "State mismatch"))
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrOAuthFailed, "Missing authorization code"))
		return
	}

	profile, err := h.verifier.Exchange(c.Request.Context(), code)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrOAuthFailed, err))
		return
	}

	user, err := h.userService.UpsertGoogleUser(profile.Subject, profile.Email, profile.Name, profile.AvatarURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.issueTokens(c, user)
}

// Refresh rotates the token pair for a valid refresh token.
// @Summary     Refresh tokens
// @Description Exchange a valid refresh token for a new token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} TokenResponse "New token pair"
// @Failure     401 {object} ErrorResponse "Invalid refresh token"
// @Router      /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	claims, err := middleware.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	storedHash, err := h.userService.GetRefreshTokenHash(claims.UserID)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}
	if storedHash == "" || storedHash != middleware.HashToken(req.RefreshToken) {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	h.issueTokens(c, user)
}

// GetProfile returns the authenticated user's profile.
// @Summary     Get user profile
// @Description Get the authenticated user's profile information
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.User "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// issueTokens generates an access/refresh pair, stores the refresh
// hash for rotation, and writes the response.
func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) {
	accessToken, err := middleware.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	refreshToken, err := middleware.GenerateRefreshToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	if err := h.userService.StoreRefreshTokenHash(user.ID, middleware.HashToken(refreshToken)); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          user,
	})
}
