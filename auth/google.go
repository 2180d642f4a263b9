package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"synthflow/apperrors"
)

// GoogleClaims are the identity claims returned by Google's tokeninfo
// endpoint for an ID token. The endpoint encodes booleans as strings.
type GoogleClaims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
}

// CredentialVerifier exchanges an opaque external credential for verified
// identity claims.
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleClaims, error)
}

// GoogleVerifier validates Google ID tokens against the remote tokeninfo
// introspection endpoint.
type GoogleVerifier struct {
	clientID     string
	tokenInfoURL string
	client       *http.Client
}

func NewGoogleVerifier(clientID, tokenInfoURL string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID:     clientID,
		tokenInfoURL: tokenInfoURL,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify introspects the credential with Google and checks that the token was
// issued for this application and that the email is verified.
func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (*GoogleClaims, error) {
	endpoint := fmt.Sprintf("%s?%s", v.tokenInfoURL, url.Values{"id_token": {credential}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Warn("Google rejected credential")
		return nil, apperrors.ErrInvalidCredential
	}

	var claims GoogleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if claims.Audience != v.clientID {
		logrus.WithFields(logrus.Fields{
			"expected": v.clientID,
			"received": claims.Audience,
		}).Warn("Google token audience mismatch")
		return nil, apperrors.ErrAudienceMismatch
	}

	if claims.EmailVerified != "true" {
		return nil, apperrors.ErrEmailUnverified
	}

	return &claims, nil
}
