package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// Claims carried by a validated session token.
type Claims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// IssueToken mints an HS256 session token bound to a user id. The jti claim
// identifies this token instance so logout can revoke it individually.
func IssueToken(userID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": RandomHex(16),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ValidateToken verifies signature and expiry and returns the token's claims.
// Any failure maps to domain.ErrInvalidToken; callers never see parser detail.
func ValidateToken(token, secret string) (*Claims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidToken
	}
	jti, _ := claims["jti"].(string)

	var exp time.Time
	if e, err := claims.GetExpirationTime(); err == nil && e != nil {
		exp = e.Time
	}

	return &Claims{UserID: sub, TokenID: jti, ExpiresAt: exp}, nil
}
