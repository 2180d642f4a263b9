package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestFindActiveFiltersRevoked(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "token", "revoked", "expires_at", "created_at", "updated_at"}).
		AddRow("rt-1", "user-1", "the-token", false, time.Now().Add(time.Hour), time.Now(), time.Now())
	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens" WHERE token = \$1 AND revoked = \$2`).
		WillReturnRows(rows)

	stored, err := repo.FindActive(context.Background(), "the-token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", stored.UserID)
	assert.False(t, stored.Revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens" WHERE token = \$1 AND revoked = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindActive(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeIsConditionalUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "refresh_tokens" SET .+ WHERE token = \$\d+ AND revoked = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Revoke(context.Background(), "the-token"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeUnknownTokenSucceeds(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRefreshTokenRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "refresh_tokens" SET .+ WHERE token = \$\d+ AND revoked = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	// Zero rows affected is still success; logout stays idempotent.
	require.NoError(t, repo.Revoke(context.Background(), "never-seen"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByOAuthID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "email", "name", "oauth_provider", "oauth_id", "plan"}).
		AddRow("user-1", "a@x.com", "Ada", "google", "g-1", "free")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE oauth_provider = \$1 AND oauth_id = \$2`).
		WillReturnRows(rows)

	user, err := repo.FindByOAuthID(context.Background(), "google", "g-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "g-1", user.OAuthID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
