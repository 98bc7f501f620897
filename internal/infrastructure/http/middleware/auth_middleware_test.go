package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wobblehealth/checkin-api/internal/domain/entities"
	"github.com/wobblehealth/checkin-api/internal/usecase/auth"
	"github.com/wobblehealth/checkin-api/pkg/jwt"
)

// stubProfileRepo serves a single known profile
type stubProfileRepo struct {
	profile *entities.Profile
}

func (s *stubProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	if s.profile != nil && s.profile.ID == id {
		return s.profile, nil
	}
	return nil, entities.ErrProfileNotFound
}

func newAuthFixture(t *testing.T) (*jwt.Manager, *entities.Profile, echo.MiddlewareFunc) {
	t.Helper()
	manager := jwt.NewManager("mw-test-secret", time.Hour)
	profile := &entities.Profile{
		ID:        uuid.New(),
		Email:     "parent@example.com",
		ChildName: "Sam",
	}
	svc := auth.NewService(&stubProfileRepo{profile: profile}, manager, nil, nil)
	return manager, profile, EchoAuth(svc)
}

func runProtected(t *testing.T, mw echo.MiddlewareFunc, decorate func(*http.Request)) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/conversation", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, c, reached
}

func TestEchoAuth_BearerToken(t *testing.T) {
	manager, profile, mw := newAuthFixture(t)
	token, err := manager.GenerateAccessToken(profile.ID, profile.Email)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec, c, reached := runProtected(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if !reached {
		t.Fatalf("expected handler to be reached, got %d: %s", rec.Code, rec.Body.String())
	}
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok || userID != profile.ID {
		t.Fatalf("expected user_id %s in context, got %v", profile.ID, c.Get("user_id"))
	}
	got, ok := c.Get("user").(*entities.Profile)
	if !ok || got.ChildName != "Sam" {
		t.Fatalf("expected profile in context, got %v", c.Get("user"))
	}
}

func TestEchoAuth_CookieFallback(t *testing.T) {
	manager, profile, mw := newAuthFixture(t)
	token, err := manager.GenerateAccessToken(profile.ID, profile.Email)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, _, reached := runProtected(t, mw, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	})
	if !reached {
		t.Fatal("expected cookie token to authenticate")
	}
}

func TestEchoAuth_MissingToken(t *testing.T) {
	_, _, mw := newAuthFixture(t)

	rec, _, reached := runProtected(t, mw, nil)
	if reached {
		t.Fatal("handler must not be reached without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestEchoAuth_UnknownProfile(t *testing.T) {
	manager, _, mw := newAuthFixture(t)
	token, err := manager.GenerateAccessToken(uuid.New(), "stranger@example.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec, _, reached := runProtected(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if reached {
		t.Fatal("handler must not be reached for an unknown profile")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestEchoAuth_GarbageToken(t *testing.T) {
	_, _, mw := newAuthFixture(t)

	rec, _, reached := runProtected(t, mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-jwt")
	})
	if reached {
		t.Fatal("handler must not be reached with a malformed token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
