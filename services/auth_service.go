package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"synthflow/apperrors"
	"synthflow/auth"
	"synthflow/models"
	"synthflow/repositories"
)

// AuthService orchestrates the Google credential exchange and the refresh
// token lifecycle.
type AuthService struct {
	users    repositories.UserRepository
	tokens   repositories.RefreshTokenRepository
	codec    *auth.TokenCodec
	verifier auth.CredentialVerifier
	transact func(ctx context.Context, fn func(tx *gorm.DB) error) error
	now      func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	users repositories.UserRepository,
	tokens repositories.RefreshTokenRepository,
	codec *auth.TokenCodec,
	verifier auth.CredentialVerifier,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		codec:    codec,
		verifier: verifier,
		transact: func(ctx context.Context, fn func(tx *gorm.DB) error) error {
			return db.WithContext(ctx).Transaction(fn)
		},
		now: time.Now,
	}
}

// AuthenticateWithGoogle runs the full login flow: verify the credential with
// Google, upsert the user by (provider, subject), issue an access/refresh
// pair and persist the refresh token. The upsert and the token persistence
// share one transaction, so a persistence failure returns an error and no
// tokens.
func (s *AuthService) AuthenticateWithGoogle(ctx context.Context, credential string) (*models.User, string, string, error) {
	claims, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, "", "", err
	}

	var (
		user         *models.User
		accessToken  string
		refreshToken string
	)
	err = s.transact(ctx, func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		tokens := s.tokens.WithTx(tx)

		isNew := false
		user, err = users.FindByOAuthID(ctx, "google", claims.Subject)
		switch {
		case err == nil:
			// Profile fields track the provider on every login.
			user.Name = claims.Name
			user.AvatarURL = claims.Picture
			if err := users.Update(ctx, user); err != nil {
				return err
			}
		case errors.Is(err, repositories.ErrRecordNotFound):
			isNew = true
			user = &models.User{
				Email:         claims.Email,
				Name:          claims.Name,
				AvatarURL:     claims.Picture,
				OAuthProvider: "google",
				OAuthID:       claims.Subject,
				Plan:          "free",
			}
			if err := users.Create(ctx, user); err != nil {
				return err
			}
		default:
			return err
		}

		accessToken, err = s.codec.IssueAccess(user.ID, user.Email)
		if err != nil {
			return err
		}
		refreshToken, err = s.codec.IssueRefresh(user.ID)
		if err != nil {
			return err
		}

		if err := tokens.Create(ctx, &models.RefreshToken{
			UserID:    user.ID,
			Token:     refreshToken,
			ExpiresAt: s.now().Add(s.codec.RefreshTTL()),
		}); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"is_new_user": isNew,
			"method":      "google",
		}).Info("User authenticated")
		return nil
	})
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// RefreshAccessToken validates a refresh token against both its signature and
// the revocation store, then issues a new access token. The refresh token is
// not rotated.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*models.User, string, error) {
	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, "", apperrors.ErrInvalidRefreshToken
	}

	stored, err := s.tokens.FindActive(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, "", apperrors.ErrTokenRevokedOrUnknown
		}
		return nil, "", err
	}

	if stored.ExpiresAt.Before(s.now()) {
		return nil, "", apperrors.ErrTokenExpired
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, "", apperrors.ErrUserNotFound
		}
		return nil, "", err
	}

	accessToken, err := s.codec.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	logrus.WithField("user_id", user.ID).Info("Token refreshed")
	return user, accessToken, nil
}

// RevokeRefreshToken revokes a refresh token (logout). Unknown tokens succeed
// silently so repeated logouts are a no-op.
func (s *AuthService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}
