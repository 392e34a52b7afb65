package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/core/ports"
	"github.com/ecotriz/cee-visits/internal/pkg/auth"
)

const resetTokenTTL = time.Hour

// AuthService implements registration, login and the password workflows.
type AuthService struct {
	users    ports.UserRepository
	clients  ports.ClientRepository
	notifier ports.Notifier
	denylist ports.TokenDenylist
	secret   string
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	clients ports.ClientRepository,
	notifier ports.Notifier,
	denylist ports.TokenDenylist,
	secret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		clients:  clients,
		notifier: notifier,
		denylist: denylist,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register creates an account and returns a fresh session token. Email
// uniqueness is the store's authority: a duplicate surfaces as ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		ClientID:     input.ClientID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := auth.IssueToken(created.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")

	return &ports.AuthResult{Token: token, User: created, Client: s.clientSummary(ctx, created.ClientID)}, nil
}

// Login authenticates by email and password. The failure is uniform: a
// missing account and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := auth.IssueToken(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.AuthResult{Token: token, User: user, Client: s.clientSummary(ctx, user.ClientID)}, nil
}

// RequestPasswordReset stores a one-hour reset token on the account and hands
// it to the notifier. Unknown emails fail with ErrUserNotFound.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	token := auth.NewResetToken()
	expiry := time.Now().UTC().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	s.notifier.EnqueueReset(user.Email, token)
	s.logger.Info().Str("user_id", user.ID).Time("expiry", expiry).Msg("password reset requested")
	return nil
}

// CompletePasswordReset redeems a reset token. The repository performs the
// compare-and-clear, so a token can be redeemed exactly once even under
// concurrent attempts; an exactly-expired token counts as expired.
func (s *AuthService) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user, err := s.users.RedeemResetToken(ctx, token, hash, time.Now().UTC())
	if err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

// ChangePassword rotates the hash after verifying the current password.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(currentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// Logout denylists the token's jti for its remaining lifetime. An already
// invalid token is rejected; revoking it would be meaningless.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := auth.ValidateToken(token, s.secret)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.TokenID, ttl)
}

// clientSummary resolves the tenant summary for scoped accounts. A lookup
// failure only degrades the response; auth itself already succeeded.
func (s *AuthService) clientSummary(ctx context.Context, clientID string) *domain.ClientSummary {
	if clientID == "" {
		return nil
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		s.logger.Warn().Str("client_id", clientID).Err(err).Msg("client summary lookup failed")
		return nil
	}
	return client.Summary()
}
