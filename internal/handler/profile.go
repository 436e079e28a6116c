// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/blogicum-go/internal/middleware"
	"github.com/olegiv/blogicum-go/internal/render"
	"github.com/olegiv/blogicum-go/internal/store"
)

// ProfileHandler handles user profile pages and profile editing.
type ProfileHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *ProfileHandler {
	return &ProfileHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// ProfileData holds data for the profile template.
type ProfileData struct {
	Profile    store.User
	Posts      []store.PostWithMeta
	Pagination Pagination
	IsOwner    bool
}

// ProfileFormData holds data for the profile edit template.
type ProfileFormData struct {
	Form ProfileForm
}

// Detail handles GET /profile/{username} - the user's paginated posts.
// The owner sees all of their posts, including unpublished and future-dated
// ones; everyone else sees only publicly visible posts.
func (h *ProfileHandler) Detail(w http.ResponseWriter, r *http.Request) {
	now := middleware.GetRequestTime(r)
	username := chi.URLParam(r, "username")

	profile, err := h.queries.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			renderNotFound(w, r, h.renderer)
			return
		}
		renderServerError(w, r, h.renderer, "failed to get user", "username", username, "error", err)
		return
	}

	isOwner := middleware.GetUserID(r) == profile.ID

	var total int64
	if isOwner {
		total, err = h.queries.CountPostsByAuthor(r.Context(), profile.ID)
	} else {
		total, err = h.queries.CountVisiblePostsByAuthor(r.Context(), store.CountVisiblePostsByAuthorParams{
			AuthorID: profile.ID,
			Now:      now,
		})
	}
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to count profile posts", "username", username, "error", err)
		return
	}

	pagination := BuildPagination(ParsePageParam(r), total, PostsPerPage, profileURL(profile.Username))

	var posts []store.PostWithMeta
	if isOwner {
		posts, err = h.queries.ListPostsByAuthor(r.Context(), store.ListPostsByAuthorParams{
			AuthorID: profile.ID,
			Limit:    PostsPerPage,
			Offset:   pagination.Offset(),
		})
	} else {
		posts, err = h.queries.ListVisiblePostsByAuthor(r.Context(), store.ListVisiblePostsByAuthorParams{
			AuthorID: profile.ID,
			Now:      now,
			Limit:    PostsPerPage,
			Offset:   pagination.Offset(),
		})
	}
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list profile posts", "username", username, "error", err)
		return
	}

	data := baseData(r, profile.FullName())
	data.Data = ProfileData{
		Profile:    profile,
		Posts:      posts,
		Pagination: pagination,
		IsOwner:    isOwner,
	}

	if err := h.renderer.Render(w, r, "blog/profile", data); err != nil {
		logAndInternalError(w, "failed to render profile", "error", err)
	}
}

// EditForm handles GET /profile/edit - form prefilled with the viewer's data.
func (h *ProfileHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	data := baseData(r, "Edit profile")
	data.Data = ProfileFormData{
		Form: ProfileForm{
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Errors:    make(map[string]string),
		},
	}

	if err := h.renderer.Render(w, r, "blog/user", data); err != nil {
		logAndInternalError(w, "failed to render profile form", "error", err)
	}
}

// Edit handles POST /profile/edit. Only the owner's own profile is ever
// touched: the target row comes from the session, not the form.
func (h *ProfileHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, RouteProfileEdit, "Invalid form data")
		return
	}

	form := ParseProfileForm(r)
	if form.Validate() {
		taken, err := h.queries.UsernameExists(r.Context(), form.Username, user.ID)
		if err != nil {
			renderServerError(w, r, h.renderer, "failed to check username", "error", err)
			return
		}
		if taken {
			form.Errors["username"] = "This username is already taken."
		}
	}

	if len(form.Errors) > 0 {
		data := baseData(r, "Edit profile")
		data.Data = ProfileFormData{Form: form}
		if err := h.renderer.Render(w, r, "blog/user", data); err != nil {
			logAndInternalError(w, "failed to render profile form", "error", err)
		}
		return
	}

	if err := h.queries.UpdateUserProfile(r.Context(), store.UpdateUserProfileParams{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		UpdatedAt: time.Now().UTC(),
		ID:        user.ID,
	}); err != nil {
		renderServerError(w, r, h.renderer, "failed to update profile", "user_id", user.ID, "error", err)
		return
	}

	slog.Info("profile updated", "user_id", user.ID)
	flashSuccess(w, r, h.renderer, profileURL(form.Username), "Profile updated.")
}
