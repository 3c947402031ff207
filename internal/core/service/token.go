package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenCodec issues and validates HS256-signed bearer tokens. Validity is
// recomputed entirely from the token's own signed content plus wall-clock
// time; there is no server-side token state and no revocation list.
//
// Expiry is compared exactly, with no clock-skew leeway.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec returns a codec signing with secret. TTL defaults to 24h
// when non-positive.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issue produces a signed token embedding the user's id, username, and role.
func (c *TokenCodec) Issue(user *domain.User) (string, error) {
	now := c.now().UTC()
	claims := tokenClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Validate parses raw, verifies the signature and expiry, and returns the
// embedded principal. Failures map onto the token error taxonomy:
// domain.ErrTokenExpired, domain.ErrBadSignature, domain.ErrTokenMalformed.
func (c *TokenCodec) Validate(raw string) (*domain.Principal, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrBadSignature
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.Principal{
		UserID:   claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
