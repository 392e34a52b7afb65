package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/core/ports"
)

// ClientService implements tenant administration.
type ClientService struct {
	clients ports.ClientRepository
	logger  zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, logger: logger}
}

func (s *ClientService) Create(ctx context.Context, input ports.ClientInput) (*domain.Client, error) {
	now := time.Now().UTC()
	client := &domain.Client{
		ID:           uuid.NewString(),
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		Phone:        input.Phone,
		Address:      input.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("client_id", created.ID).Str("name", created.Name).Msg("client created")
	return created, nil
}

// Get returns one tenant. Client admins may read exactly their own; other
// tenants resolve as not found.
func (s *ClientService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Client, error) {
	if actor.Role == domain.RoleClientAdmin && id != actor.ClientID {
		return nil, domain.ErrClientNotFound
	}
	return s.clients.FindByID(ctx, id)
}

// List returns all tenants for admins, and the actor's own tenant for client
// admins.
func (s *ClientService) List(ctx context.Context, actor *domain.User) ([]*domain.Client, error) {
	if actor.Role == domain.RoleClientAdmin {
		client, err := s.clients.FindByID(ctx, actor.ClientID)
		if err != nil {
			return nil, err
		}
		return []*domain.Client{client}, nil
	}
	return s.clients.List(ctx)
}

func (s *ClientService) Update(ctx context.Context, id string, input ports.ClientInput) (*domain.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = input.Name
	client.ContactEmail = input.ContactEmail
	client.Phone = input.Phone
	client.Address = input.Address
	client.UpdatedAt = time.Now().UTC()

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("client_id", id).Msg("client deleted")
	return nil
}
