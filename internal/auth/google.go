// Package auth implements the identity-provider handshake. The
// application never stores passwords; Google vouches for the user
// and the API issues its own JWTs afterwards.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"

// Profile is the subset of the OpenID Connect userinfo response the
// application keeps.
type Profile struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"picture"`
}

// Verifier is the identity-provider contract used by the auth
// handler, kept narrow so tests can substitute a fake.
type Verifier interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*Profile, error)
}

// GoogleVerifier performs the Google OAuth authorization-code flow.
type GoogleVerifier struct {
	cfg *oauth2.Config
}

// NewGoogleVerifier builds a verifier for the given OAuth client.
func NewGoogleVerifier(clientID, clientSecret, redirectURL string) *GoogleVerifier {
	return &GoogleVerifier{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL returns the provider URL to redirect the browser to.
func (g *GoogleVerifier) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

// Exchange trades the authorization code for a token and fetches the
// user's profile from the userinfo endpoint.
func (g *GoogleVerifier) Exchange(ctx context.Context, code string) (*Profile, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	resp, err := g.cfg.Client(ctx, tok).Get(userinfoEndpoint)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request: unexpected status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if profile.Subject == "" {
		return nil, fmt.Errorf("userinfo response missing subject")
	}

	return &profile, nil
}
