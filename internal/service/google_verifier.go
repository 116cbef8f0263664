package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"youngmoney/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// GoogleVerifier resolves a Google access token to the profile it belongs to.
type GoogleVerifier interface {
	Verify(ctx context.Context, accessToken string) (*GoogleProfile, error)
}

// OAuthGoogleVerifier calls the Google userinfo endpoint with the client's access token.
type OAuthGoogleVerifier struct {
	conf        *oauth2.Config
	userInfoURL string
}

// NewGoogleVerifier returns nil when no client id is configured.
func NewGoogleVerifier(cfg *config.OAuthConfig) *OAuthGoogleVerifier {
	if cfg.GoogleClientID == "" {
		return nil
	}
	return &OAuthGoogleVerifier{
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (v *OAuthGoogleVerifier) Verify(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	client := v.conf.Client(ctx, &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	resp, err := client.Get(v.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("google userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidGoogleToken
	}
	var p GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return &p, nil
}
