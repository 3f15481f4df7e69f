package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleConfig struct {
	Config *oauth2.Config
	// UserInfoURL is overridable for tests.
	UserInfoURL string
}

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// NewGoogleConfig returns nil when no OAuth client is configured, which
// turns Google sign-in off.
func NewGoogleConfig(s GoogleSettings) *GoogleConfig {
	if s.ClientID == "" || s.ClientSecret == "" {
		return nil
	}

	return &GoogleConfig{
		Config: &oauth2.Config{
			ClientID:     s.ClientID,
			ClientSecret: s.ClientSecret,
			RedirectURL:  s.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		UserInfoURL: googleUserInfoURL,
	}
}

func (g *GoogleConfig) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return g.Config.Exchange(ctx, code)
}

// GetUserInfo fetches the profile of the account that granted token.
func (g *GoogleConfig) GetUserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	client := g.Config.Client(ctx, token)
	resp, err := client.Get(g.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: status %d", resp.StatusCode)
	}

	var userInfo GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &userInfo, nil
}

// ResolveEmail exchanges an authorization code and returns the email of the
// Google account behind it.
func (g *GoogleConfig) ResolveEmail(ctx context.Context, code string) (string, bool, error) {
	token, err := g.ExchangeCode(ctx, code)
	if err != nil {
		return "", false, fmt.Errorf("failed to exchange code: %w", err)
	}
	info, err := g.GetUserInfo(ctx, token)
	if err != nil {
		return "", false, err
	}
	return info.Email, info.VerifiedEmail, nil
}
