package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/pkg/auth"
)

type fakeUserRepo struct {
	user *domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil }
func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, domain.ErrUserNotFound
}
func (r *fakeUserRepo) List(_ context.Context, _ string) ([]*domain.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(_ context.Context, _ *domain.User) error           { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, _ string) error                 { return nil }
func (r *fakeUserRepo) UpdatePassword(_ context.Context, _, _ string) error      { return nil }
func (r *fakeUserRepo) SetResetToken(_ context.Context, _, _ string, _ time.Time) error {
	return nil
}
func (r *fakeUserRepo) RedeemResetToken(_ context.Context, _, _ string, _ time.Time) (*domain.User, error) {
	return nil, domain.ErrInvalidResetToken
}

type fakeDenylist struct {
	revoked map[string]bool
}

func (d *fakeDenylist) Revoke(_ context.Context, id string, _ time.Duration) error {
	d.revoked[id] = true
	return nil
}
func (d *fakeDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	return d.revoked[id], nil
}

func runAuth(t *testing.T, header string, repo *fakeUserRepo, denylist *fakeDenylist) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret", repo, denylist)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestAuth_ValidToken(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleAdmin}
	token, _ := auth.IssueToken("user-1", "secret", time.Hour)

	rec, err := runAuth(t, "Bearer "+token, &fakeUserRepo{user: user}, &fakeDenylist{revoked: map[string]bool{}})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := runAuth(t, "", &fakeUserRepo{}, &fakeDenylist{revoked: map[string]bool{}})
	if httpStatus(t, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401")
	}
}

func TestAuth_BadScheme(t *testing.T) {
	_, err := runAuth(t, "Basic abc", &fakeUserRepo{}, &fakeDenylist{revoked: map[string]bool{}})
	if httpStatus(t, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401")
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	_, err := runAuth(t, "Bearer garbage", &fakeUserRepo{}, &fakeDenylist{revoked: map[string]bool{}})
	if httpStatus(t, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401")
	}
}

func TestAuth_RevokedToken(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleAdmin}
	token, _ := auth.IssueToken("user-1", "secret", time.Hour)
	claims, _ := auth.ValidateToken(token, "secret")

	denylist := &fakeDenylist{revoked: map[string]bool{claims.TokenID: true}}
	_, err := runAuth(t, "Bearer "+token, &fakeUserRepo{user: user}, denylist)
	if httpStatus(t, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token")
	}
}

func TestAuth_DeletedAccount(t *testing.T) {
	token, _ := auth.IssueToken("user-1", "secret", time.Hour)
	_, err := runAuth(t, "Bearer "+token, &fakeUserRepo{user: nil}, &fakeDenylist{revoked: map[string]bool{}})
	if httpStatus(t, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted account")
	}
}
