package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"synthflow/models"
)

// RefreshTokenRepository defines persistence operations for refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	// FindActive returns the stored token matching the exact string with
	// revoked=false, or ErrRecordNotFound.
	FindActive(ctx context.Context, token string) (*models.RefreshToken, error)
	// Revoke marks the token revoked. Unknown or already-revoked tokens are
	// not an error, so logout stays idempotent.
	Revoke(ctx context.Context, token string) error
	WithTx(tx *gorm.DB) RefreshTokenRepository
}

type refreshTokenRepositoryImpl struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new RefreshTokenRepository instance.
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{db: db}
}

func (r *refreshTokenRepositoryImpl) WithTx(tx *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{db: tx}
}

func (r *refreshTokenRepositoryImpl) Create(ctx context.Context, token *models.RefreshToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *refreshTokenRepositoryImpl) FindActive(ctx context.Context, token string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND revoked = ?", token, false).
		First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find refresh token: %w", err)
	}
	return &stored, nil
}

// Revoke is a conditional update: WHERE token = ? AND revoked = false. A token
// revoked by a concurrent request matches zero rows, so revocation never
// flips back and a racing refresh can only succeed if its lookup committed
// before this update.
func (r *refreshTokenRepositoryImpl) Revoke(ctx context.Context, token string) error {
	err := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token = ? AND revoked = ?", token, false).
		Update("revoked", true).Error
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
