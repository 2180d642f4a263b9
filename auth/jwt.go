package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"synthflow/apperrors"
)

// Token type discriminators.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims are the recognized JWT claims. Email is only set on access tokens.
type Claims struct {
	Email     string `json:"email,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies signed, time-bound tokens. It is pure over
// the configured secret and TTLs; no side effects.
type TokenCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenCodec(secret string, accessTTL, refreshTTL time.Duration) *TokenCodec {
	return &TokenCodec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssueAccess creates a short-lived access token carrying subject and email.
func (c *TokenCodec) IssueAccess(userID, email string) (string, error) {
	return c.sign(&Claims{
		Email:     email,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(c.now()),
			ExpiresAt: jwt.NewNumericDate(c.now().Add(c.accessTTL)),
		},
	})
}

// IssueRefresh creates a long-lived refresh token carrying the subject only.
// The jti keeps tokens unique even when two logins land in the same second;
// the stored token string has a unique constraint riding on that.
func (c *TokenCodec) IssueRefresh(userID string) (string, error) {
	return c.sign(&Claims{
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(c.now()),
			ExpiresAt: jwt.NewNumericDate(c.now().Add(c.refreshTTL)),
		},
	})
}

// Decode parses and validates a token's signature and expiry.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// VerifyAccess decodes a token and checks it is an access token with a subject.
func (c *TokenCodec) VerifyAccess(tokenString string) (*Claims, error) {
	return c.verify(tokenString, TokenTypeAccess)
}

// VerifyRefresh decodes a token and checks it is a refresh token with a subject.
func (c *TokenCodec) VerifyRefresh(tokenString string) (*Claims, error) {
	return c.verify(tokenString, TokenTypeRefresh)
}

func (c *TokenCodec) verify(tokenString, tokenType string) (*Claims, error) {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, apperrors.ErrWrongTokenType
	}
	if claims.Subject == "" {
		return nil, apperrors.ErrMissingSubject
	}
	return claims, nil
}

// AccessTTL reports the configured access-token lifetime.
func (c *TokenCodec) AccessTTL() time.Duration {
	return c.accessTTL
}

// RefreshTTL reports the configured refresh-token lifetime.
func (c *TokenCodec) RefreshTTL() time.Duration {
	return c.refreshTTL
}

func (c *TokenCodec) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}
