package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/core/ports"
)

// UserService implements user administration with tenant scoping.
type UserService struct {
	users   ports.UserRepository
	clients ports.ClientRepository
	logger  zerolog.Logger
}

func NewUserService(users ports.UserRepository, clients ports.ClientRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, clients: clients, logger: logger}
}

// List returns every user the actor may see: all of them for an admin, only
// the actor's tenant for a client admin.
func (s *UserService) List(ctx context.Context, actor *domain.User) ([]*ports.UserDetail, error) {
	clientID := ""
	if actor.Role == domain.RoleClientAdmin {
		clientID = actor.ClientID
	}

	users, err := s.users.List(ctx, clientID)
	if err != nil {
		return nil, err
	}

	details := make([]*ports.UserDetail, 0, len(users))
	for _, u := range users {
		details = append(details, &ports.UserDetail{User: u, Client: s.clientSummary(ctx, u.ClientID)})
	}
	return details, nil
}

// Get returns one user. A client admin looking up a user of another tenant
// gets ErrUserNotFound: existence is not revealed across tenants.
func (s *UserService) Get(ctx context.Context, actor *domain.User, id string) (*ports.UserDetail, error) {
	user, err := s.visibleUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return &ports.UserDetail{User: user, Client: s.clientSummary(ctx, user.ClientID)}, nil
}

// Update applies a partial update. Cross-tenant targets are masked the same
// way Get masks them.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, input ports.UpdateUserInput) (*ports.UserDetail, error) {
	user, err := s.visibleUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.ClientID != nil {
		user.ClientID = *input.ClientID
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("actor_id", actor.ID).Msg("user updated")
	return &ports.UserDetail{User: user, Client: s.clientSummary(ctx, user.ClientID)}, nil
}

// Delete removes an account. Role gating (admin only) happens at the
// authorization boundary before this is reached.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("user deleted")
	return nil
}

// UpdateProfile lets any authenticated user edit their own identity fields.
func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, input ports.UpdateProfileInput) (*ports.UserDetail, error) {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &ports.UserDetail{User: user, Client: s.clientSummary(ctx, user.ClientID)}, nil
}

// visibleUser loads a user and applies scope-masking: outside the actor's
// tenant the account simply does not exist.
func (s *UserService) visibleUser(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleClientAdmin && user.ClientID != actor.ClientID {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) clientSummary(ctx context.Context, clientID string) *domain.ClientSummary {
	if clientID == "" {
		return nil
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil
	}
	return client.Summary()
}
