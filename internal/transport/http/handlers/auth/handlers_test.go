package authhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hrform/internal/domain/auth"
	"hrform/internal/transport/http/middleware"
)

type fakeAuth struct {
	err error
}

func (f fakeAuth) Login(_ context.Context, email, password string) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	if email != "hr@example.com" || password != "correct horse" {
		return "", time.Time{}, auth.ErrInvalidCredentials
	}
	return "signed", time.Date(2026, 1, 1, 16, 0, 0, 0, time.UTC), nil
}

func login(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))
	return rec
}

func TestHandleLogin(t *testing.T) {
	h := NewHandler(fakeAuth{})

	rec := login(h, `{"email":"hr@example.com","password":"correct horse"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var env struct {
		Data LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Token != "signed" || env.Data.ExpiresAt.IsZero() {
		t.Fatalf("unexpected response %+v", env.Data)
	}
}

func TestHandleLoginFailures(t *testing.T) {
	cases := []struct {
		name string
		h    *Handler
		body string
		want int
	}{
		{name: "bad password", h: NewHandler(fakeAuth{}), body: `{"email":"hr@example.com","password":"nope"}`, want: http.StatusUnauthorized},
		{name: "malformed", h: NewHandler(fakeAuth{}), body: `{`, want: http.StatusBadRequest},
		{name: "store down", h: NewHandler(fakeAuth{err: errors.New("db down")}), body: `{"email":"a","password":"b"}`, want: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := login(tc.h, tc.body); rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestHandleMe(t *testing.T) {
	h := NewHandler(fakeAuth{})

	rec := httptest.NewRecorder()
	h.HandleMe(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	ctx := middleware.WithOperator(context.Background(), auth.OperatorContext{OperatorID: "op-1", Role: auth.RoleViewer})
	rec = httptest.NewRecorder()
	h.HandleMe(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil).WithContext(ctx))
	if !strings.Contains(rec.Body.String(), `"canEditForm":false`) {
		t.Fatalf("viewer should not edit, got %s", rec.Body.String())
	}
}
