package middlewares

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"synthflow/apperrors"
	"synthflow/auth"
	"synthflow/models"
	"synthflow/repositories"
)

// TokenVerifier validates an access token and returns its claims.
type TokenVerifier interface {
	VerifyAccess(token string) (*auth.Claims, error)
}

// AuthMiddleware authenticates requests via Bearer access tokens and loads
// the user into the request context.
type AuthMiddleware struct {
	verifier TokenVerifier
	userRepo repositories.UserRepository
}

func NewAuthMiddleware(verifier TokenVerifier, userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		userRepo: userRepo,
	}
}

func (am *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return apperrors.ErrUnauthorized
			}

			claims, err := am.verifier.VerifyAccess(token)
			if err != nil {
				return apperrors.ErrUnauthorized
			}

			user, err := am.userRepo.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				return apperrors.New(http.StatusUnauthorized, "User not found")
			}

			c.Set("user", user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user stashed by RequireAuth.
func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get("user").(*models.User)
	return user, ok
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
