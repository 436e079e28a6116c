// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/blogicum-go/internal/store"
)

func TestAuthRedirectsAnonymous(t *testing.T) {
	sm := scs.New()

	called := false
	handler := Auth(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts/create", nil)
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if called {
		t.Error("handler ran for anonymous request")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != RouteLogin {
		t.Errorf("Location = %q, want %q", loc, RouteLogin)
	}
}

func TestAuthPassesAuthenticated(t *testing.T) {
	sm := scs.New()

	called := false
	handler := Auth(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts/create", nil)
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	sm.Put(ctx, SessionKeyUserID, int64(7))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if !called {
		t.Error("handler did not run for authenticated request")
	}
}

func TestGetUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if got := GetUser(req); got != nil {
		t.Errorf("GetUser without user = %+v, want nil", got)
	}
	if got := GetUserID(req); got != 0 {
		t.Errorf("GetUserID without user = %d, want 0", got)
	}

	user := store.User{ID: 42, Username: "author"}
	ctx := context.WithValue(req.Context(), ContextKeyUser, user)
	req = req.WithContext(ctx)

	got := GetUser(req)
	if got == nil || got.ID != 42 || got.Username != "author" {
		t.Errorf("GetUser = %+v", got)
	}
	if id := GetUserID(req); id != 42 {
		t.Errorf("GetUserID = %d, want 42", id)
	}
}
