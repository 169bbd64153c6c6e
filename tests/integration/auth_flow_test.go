package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuthFlow_SignInAndProfile(t *testing.T) {
	app := setupApp(t)
	token, _, userID := app.signInUser(t, "alice@test.com")

	rec := app.request("GET", "/api/v1/profile", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	if user["email"] != "alice@test.com" {
		t.Errorf("expected alice@test.com, got %v", user["email"])
	}
	if user["id"].(float64) != userID {
		t.Errorf("expected user id %.0f, got %v", userID, user["id"])
	}
	if _, leaked := user["refresh_token_hash"]; leaked {
		t.Error("refresh token hash must not appear in responses")
	}
}

func TestAuthFlow_RepeatSignInKeepsAccount(t *testing.T) {
	app := setupApp(t)
	_, _, firstID := app.signInUser(t, "alice@test.com")
	_, _, secondID := app.signInUser(t, "alice@test.com")

	if firstID != secondID {
		t.Errorf("expected the same account on repeat sign-in, got %.0f and %.0f", firstID, secondID)
	}
}

func TestAuthFlow_RefreshRotation(t *testing.T) {
	app := setupApp(t)
	_, refreshToken, _ := app.signInUser(t, "alice@test.com")

	// Exchange the refresh token for a new pair.
	body := fmt.Sprintf(`{"refresh_token":%q}`, refreshToken)
	rec := app.request("POST", "/api/v1/auth/refresh", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	newAccess := result["access_token"].(string)

	// The new access token works.
	rec = app.request("GET", "/api/v1/profile", "", newAccess)
	if rec.Code != http.StatusOK {
		t.Errorf("expected new access token to work, got %d", rec.Code)
	}

	// The old refresh token was rotated out.
	rec = app.request("POST", "/api/v1/auth/refresh", body, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected rotated-out refresh token to fail, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_ProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	for _, path := range []string{"/api/v1/profile", "/api/v1/dashboard", "/api/v1/transactions", "/api/v1/categories", "/api/v1/budget"} {
		rec := app.request("GET", path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for %s without token, got %d", path, rec.Code)
		}
	}
}
