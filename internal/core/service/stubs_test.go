package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/core/ports"
)

// In-memory doubles for the persistence and collaborator ports.

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.seq++
		copy.ID = "user-" + strconv.Itoa(r.seq)
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, clientID string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if clientID == "" || u.ClientID == clientID {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, id, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = token
	u.ResetExpiry = &expiry
	return nil
}

func (r *stubUserRepo) RedeemResetToken(_ context.Context, token, hash string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken == token && u.ResetToken != "" && u.ResetExpiry != nil && u.ResetExpiry.After(now) {
			u.PasswordHash = hash
			u.ResetToken = ""
			u.ResetExpiry = nil
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrInvalidResetToken
}

type stubClientRepo struct {
	clients map[string]*domain.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	clone := *c
	r.clients[c.ID] = &clone
	return c, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	if c, ok := r.clients[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, c := range r.clients {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, c *domain.Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return domain.ErrClientNotFound
	}
	clone := *c
	r.clients[c.ID] = &clone
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

type stubVisitRepo struct {
	visits map[string]*domain.Visit
}

func newStubVisitRepo() *stubVisitRepo {
	return &stubVisitRepo{visits: make(map[string]*domain.Visit)}
}

func (r *stubVisitRepo) Create(_ context.Context, v *domain.Visit) (*domain.Visit, error) {
	clone := *v
	r.visits[v.ID] = &clone
	return v, nil
}

func (r *stubVisitRepo) FindByID(_ context.Context, id string) (*domain.Visit, error) {
	if v, ok := r.visits[id]; ok {
		clone := *v
		return &clone, nil
	}
	return nil, domain.ErrVisitNotFound
}

func (r *stubVisitRepo) List(_ context.Context, filter ports.VisitFilter) ([]*domain.Visit, error) {
	var out []*domain.Visit
	for _, v := range r.visits {
		if filter.ClientID != "" && v.ClientID != filter.ClientID {
			continue
		}
		if filter.TechnicianID != "" && v.TechnicianID != filter.TechnicianID {
			continue
		}
		clone := *v
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubVisitRepo) Update(_ context.Context, v *domain.Visit) error {
	if _, ok := r.visits[v.ID]; !ok {
		return domain.ErrVisitNotFound
	}
	clone := *v
	r.visits[v.ID] = &clone
	return nil
}

func (r *stubVisitRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.visits[id]; !ok {
		return domain.ErrVisitNotFound
	}
	delete(r.visits, id)
	return nil
}

type stubNotifier struct {
	mu    sync.Mutex
	sent  []string
	token string
}

func (n *stubNotifier) EnqueueReset(recipient, token string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, recipient)
	n.token = token
}

type stubDenylist struct {
	revoked map[string]bool
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]bool)}
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	d.revoked[tokenID] = true
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return d.revoked[tokenID], nil
}
