package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"synthflow/apperrors"
	"synthflow/metrics"
	"synthflow/services"
)

// OAuthController implements the server-side Google authorization-code flow.
// The callback's exchanged token carries an ID token, which feeds the same
// login flow as the POST /api/auth/google credential exchange.
type OAuthController struct {
	oauth       *oauth2.Config
	authService *services.AuthService
	accessTTL   time.Duration
	stateStore  *sync.Map
}

func NewOAuthController(oauth *oauth2.Config, authService *services.AuthService, accessTTL time.Duration) *OAuthController {
	return &OAuthController{
		oauth:       oauth,
		authService: authService,
		accessTTL:   accessTTL,
		stateStore:  &sync.Map{},
	}
}

// Login redirects the user to Google's consent page.
func (oc *OAuthController) Login(c echo.Context) error {
	state, err := generateStateToken()
	if err != nil {
		return err
	}
	oc.stateStore.Store(state, time.Now().Add(5*time.Minute))

	url := oc.oauth.AuthCodeURL(state)
	return c.Redirect(http.StatusTemporaryRedirect, url)
}

// Callback validates the state token, exchanges the authorization code and
// logs the user in with the ID token from the exchange.
func (oc *OAuthController) Callback(c echo.Context) error {
	ctx := c.Request().Context()
	logger := logrus.WithFields(logrus.Fields{
		"handler":  "OAuthCallback",
		"provider": "google",
	})

	state := c.QueryParam("state")
	if !oc.validStateToken(state) {
		logger.Warn("Invalid state token")
		return apperrors.New(http.StatusBadRequest, "invalid state token")
	}

	code := c.QueryParam("code")
	token, err := oc.oauth.Exchange(ctx, code)
	if err != nil {
		logger.WithError(err).Error("Token exchange failed")
		return apperrors.ErrInvalidCredential
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		logger.Error("Exchange response missing id_token")
		return apperrors.ErrInvalidCredential
	}

	user, accessToken, refreshToken, err := oc.authService.AuthenticateWithGoogle(ctx, idToken)
	if err != nil {
		return err
	}

	metrics.LoginsCounter.Inc()
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(oc.accessTTL.Seconds()),
		User:         newUserResponse(user),
	})
}

func (oc *OAuthController) validStateToken(state string) bool {
	if state == "" {
		return false
	}
	expiry, ok := oc.stateStore.Load(state)
	if !ok {
		return false
	}
	oc.stateStore.Delete(state)
	return time.Now().Before(expiry.(time.Time))
}

func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
