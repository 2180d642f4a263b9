package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"synthflow/models"
)

// ErrRecordNotFound is returned by lookups that find no row.
var ErrRecordNotFound = gorm.ErrRecordNotFound

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByOAuthID(ctx context.Context, provider, oauthID string) (*models.User, error)
	WithTx(tx *gorm.DB) UserRepository
}

type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) WithTx(tx *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: tx}
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepositoryImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *userRepositoryImpl) FindByOAuthID(ctx context.Context, provider, oauthID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("oauth_provider = ? AND oauth_id = ?", provider, oauthID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find user by oauth id: %w", err)
	}
	return &user, nil
}
