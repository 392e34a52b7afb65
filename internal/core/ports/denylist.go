package ports

import (
	"context"
	"time"
)

// TokenDenylist records revoked session token ids (jti) until their natural
// expiry. Session tokens are otherwise stateless.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
