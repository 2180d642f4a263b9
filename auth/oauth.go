package auth

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"synthflow/config"
)

// NewOAuthConfig builds the oauth2 client configuration for the server-side
// Google authorization-code flow.
func NewOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.OAuthRedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}
