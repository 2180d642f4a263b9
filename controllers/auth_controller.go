package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"synthflow/metrics"
	"synthflow/middlewares"
	"synthflow/services"
)

// AuthController handles the credential exchange, token refresh and logout
// endpoints.
type AuthController struct {
	authService *services.AuthService
	accessTTL   time.Duration
}

func NewAuthController(authService *services.AuthService, accessTTL time.Duration) *AuthController {
	return &AuthController{
		authService: authService,
		accessTTL:   accessTTL,
	}
}

// GoogleLogin exchanges a Google ID token for an access/refresh pair.
func (ac *AuthController) GoogleLogin(c echo.Context) error {
	var req GoogleAuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, accessToken, refreshToken, err := ac.authService.AuthenticateWithGoogle(c.Request().Context(), req.Credential)
	if err != nil {
		return err
	}

	metrics.LoginsCounter.Inc()
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(ac.accessTTL.Seconds()),
		User:         newUserResponse(user),
	})
}

// Refresh exchanges a valid refresh token for a new access token.
func (ac *AuthController) Refresh(c echo.Context) error {
	var req RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, accessToken, err := ac.authService.RefreshAccessToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	metrics.TokenRefreshesCounter.Inc()
	return c.JSON(http.StatusOK, RefreshResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(ac.accessTTL.Seconds()),
	})
}

// Logout revokes a refresh token. Succeeds even if the token is unknown or
// already revoked.
func (ac *AuthController) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := ac.authService.RevokeRefreshToken(c.Request().Context(), req.RefreshToken); err != nil {
		return err
	}

	metrics.LogoutsCounter.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (ac *AuthController) Me(c echo.Context) error {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "user not found in context")
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}
