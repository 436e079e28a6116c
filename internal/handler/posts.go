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

	"github.com/olegiv/blogicum-go/internal/middleware"
	"github.com/olegiv/blogicum-go/internal/render"
	"github.com/olegiv/blogicum-go/internal/store"
)

// PostsHandler handles post creation, editing, and deletion. All routes
// require an authenticated viewer; edit and delete additionally require the
// viewer to be the post's author.
type PostsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *PostsHandler {
	return &PostsHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// PostFormData holds data for the post create/edit template.
type PostFormData struct {
	Form       PostForm
	Categories []store.Category
	Locations  []store.Location
	IsEdit     bool
	PostID     int64
}

// PostDeleteData holds data for the post delete confirmation template.
type PostDeleteData struct {
	Post store.PostWithMeta
}

// canMutate is the permission guard: only the author may change an entity.
func canMutate(viewerID, authorID int64) bool {
	return viewerID != 0 && viewerID == authorID
}

// loadFormChoices fetches the published categories and locations offered in
// the post form selects.
func (h *PostsHandler) loadFormChoices(r *http.Request, data *PostFormData) error {
	categories, err := h.queries.ListPublishedCategories(r.Context())
	if err != nil {
		return err
	}
	locations, err := h.queries.ListPublishedLocations(r.Context())
	if err != nil {
		return err
	}
	data.Categories = categories
	data.Locations = locations
	return nil
}

func (h *PostsHandler) renderForm(w http.ResponseWriter, r *http.Request, title string, data PostFormData) {
	if err := h.loadFormChoices(r, &data); err != nil {
		renderServerError(w, r, h.renderer, "failed to load form choices", "error", err)
		return
	}

	tmplData := baseData(r, title)
	tmplData.Data = data

	if err := h.renderer.Render(w, r, "blog/create", tmplData); err != nil {
		logAndInternalError(w, "failed to render post form", "error", err)
	}
}

// CreateForm handles GET /posts/create - renders an empty post form.
func (h *PostsHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, "New post", PostFormData{
		Form: PostForm{Errors: make(map[string]string)},
	})
}

// Create handles POST /posts/create.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, RoutePostCreate, "Invalid form data")
		return
	}

	form := ParsePostForm(r, false, time.Time{})
	if !form.Validate() {
		h.renderForm(w, r, "New post", PostFormData{Form: form})
		return
	}

	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		Title:       form.Title,
		Text:        form.Text,
		PubDate:     form.PubDate,
		IsPublished: true,
		AuthorID:    user.ID,
		CategoryID:  form.CategoryID,
		LocationID:  form.LocationID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to create post", "error", err)
		return
	}

	slog.Info("post created", "post_id", post.ID, "author_id", user.ID)
	flashSuccess(w, r, h.renderer, profileURL(user.Username), "Post created.")
}

// requireOwnPost fetches a post and applies the permission guard. When the
// viewer is not the author, the request is redirected to the post's detail
// page with no error surfaced (soft denial). Returns the post and true only
// when the caller may proceed.
func (h *PostsHandler) requireOwnPost(w http.ResponseWriter, r *http.Request) (store.PostWithMeta, bool) {
	postID := parseIDParam(r, "id")
	if postID == 0 {
		renderNotFound(w, r, h.renderer)
		return store.PostWithMeta{}, false
	}

	post, err := h.queries.GetPostByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			renderNotFound(w, r, h.renderer)
			return store.PostWithMeta{}, false
		}
		renderServerError(w, r, h.renderer, "failed to get post", "post_id", postID, "error", err)
		return store.PostWithMeta{}, false
	}

	if !canMutate(middleware.GetUserID(r), post.AuthorID) {
		http.Redirect(w, r, postDetailURL(post.ID), http.StatusSeeOther)
		return store.PostWithMeta{}, false
	}

	return post, true
}

// EditForm handles GET /posts/{id}/edit - renders the form prefilled with the
// post's current values. Once the publish date has passed it can no longer be
// changed, so the field is locked.
func (h *PostsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requireOwnPost(w, r)
	if !ok {
		return
	}

	now := middleware.GetRequestTime(r)
	form := PostForm{
		Title:         post.Title,
		Text:          post.Text,
		PubDate:       post.PubDate,
		PubDateRaw:    post.PubDate.Format("2006-01-02T15:04"),
		CategoryID:    post.CategoryID,
		LocationID:    post.LocationID,
		PubDateLocked: post.PubDate.Before(now),
		Errors:        make(map[string]string),
	}

	h.renderForm(w, r, "Edit post", PostFormData{Form: form, IsEdit: true, PostID: post.ID})
}

// Edit handles POST /posts/{id}/edit.
func (h *PostsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requireOwnPost(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, postDetailURL(post.ID), "Invalid form data")
		return
	}

	now := middleware.GetRequestTime(r)
	locked := post.PubDate.Before(now)
	form := ParsePostForm(r, locked, post.PubDate)
	if !form.Validate() {
		h.renderForm(w, r, "Edit post", PostFormData{Form: form, IsEdit: true, PostID: post.ID})
		return
	}

	if err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		Title:      form.Title,
		Text:       form.Text,
		PubDate:    form.PubDate,
		CategoryID: form.CategoryID,
		LocationID: form.LocationID,
		ID:         post.ID,
	}); err != nil {
		renderServerError(w, r, h.renderer, "failed to update post", "post_id", post.ID, "error", err)
		return
	}

	slog.Info("post updated", "post_id", post.ID, "author_id", post.AuthorID)
	flashSuccess(w, r, h.renderer, postDetailURL(post.ID), "Post updated.")
}

// DeleteForm handles GET /posts/{id}/delete - renders a confirmation page.
func (h *PostsHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requireOwnPost(w, r)
	if !ok {
		return
	}

	data := baseData(r, "Delete post")
	data.Data = PostDeleteData{Post: post}

	if err := h.renderer.Render(w, r, "blog/delete", data); err != nil {
		logAndInternalError(w, "failed to render delete confirmation", "error", err)
	}
}

// Delete handles POST /posts/{id}/delete. The post's comments are removed by
// the cascade constraint.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requireOwnPost(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeletePost(r.Context(), post.ID); err != nil {
		renderServerError(w, r, h.renderer, "failed to delete post", "post_id", post.ID, "error", err)
		return
	}

	slog.Info("post deleted", "post_id", post.ID, "author_id", post.AuthorID)
	flashSuccess(w, r, h.renderer, RouteRoot, "Post deleted.")
}
