package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthflow/apperrors"
)

func newTestCodec() *TokenCodec {
	return NewTokenCodec("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestIssueAccessRoundTrip(t *testing.T) {
	codec := newTestCodec()

	token, err := codec.IssueAccess("user-1", "a@x.com")
	require.NoError(t, err)

	claims, err := codec.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestIssueRefreshRoundTrip(t *testing.T) {
	codec := newTestCodec()

	token, err := codec.IssueRefresh("user-1")
	require.NoError(t, err)

	claims, err := codec.VerifyRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Empty(t, claims.Email)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestIssueRefreshTokensAreUnique(t *testing.T) {
	codec := newTestCodec()

	first, err := codec.IssueRefresh("user-1")
	require.NoError(t, err)
	second, err := codec.IssueRefresh("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "refresh tokens minted in the same second must differ")
}

func TestVerifyWrongTokenType(t *testing.T) {
	codec := newTestCodec()

	access, err := codec.IssueAccess("user-1", "a@x.com")
	require.NoError(t, err)
	refresh, err := codec.IssueRefresh("user-1")
	require.NoError(t, err)

	_, err = codec.VerifyAccess(refresh)
	assert.ErrorIs(t, err, apperrors.ErrWrongTokenType)

	_, err = codec.VerifyRefresh(access)
	assert.ErrorIs(t, err, apperrors.ErrWrongTokenType)
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	codec := newTestCodec()

	token, err := codec.IssueAccess("user-1", "a@x.com")
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = codec.Decode(tampered)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestDecodeRejectsForeignSignature(t *testing.T) {
	codec := newTestCodec()
	other := NewTokenCodec("other-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := other.IssueAccess("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestDecodeRejectsMalformedToken(t *testing.T) {
	codec := newTestCodec()

	_, err := codec.Decode("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	codec := newTestCodec()
	codec.now = func() time.Time { return time.Now().Add(-time.Hour) }

	// Issued an hour ago with a 15 minute TTL; expired by verification time.
	token, err := codec.IssueAccess("user-1", "a@x.com")
	require.NoError(t, err)

	codec.now = time.Now
	_, err = codec.VerifyAccess(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	codec := newTestCodec()

	token, err := codec.IssueAccess("", "a@x.com")
	require.NoError(t, err)

	_, err = codec.VerifyAccess(token)
	assert.ErrorIs(t, err, apperrors.ErrMissingSubject)
}
