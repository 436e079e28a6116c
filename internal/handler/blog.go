// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides HTTP handlers for the application.
package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/blogicum-go/internal/middleware"
	"github.com/olegiv/blogicum-go/internal/render"
	"github.com/olegiv/blogicum-go/internal/store"
	"github.com/olegiv/blogicum-go/internal/util"
)

// BlogHandler handles the public blog pages: index, category archives, and
// post detail.
type BlogHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *BlogHandler {
	return &BlogHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// PostListData holds data for post listing templates.
type PostListData struct {
	Posts      []store.PostWithMeta
	Pagination Pagination
	Category   *store.Category
}

// PostDetailData holds data for the post detail template.
type PostDetailData struct {
	Post        store.PostWithMeta
	Comments    []store.CommentWithAuthor
	CommentForm *CommentForm
	CanEdit     bool
}

// NotFound renders the themed 404 page for unmatched routes.
func (h *BlogHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r, h.renderer)
}

// Forbidden renders the 403 page. Wired as the CSRF failure handler.
func (h *BlogHandler) Forbidden(w http.ResponseWriter, r *http.Request) {
	renderForbidden(w, r, h.renderer)
}

// Index handles GET / - the paginated listing of publicly visible posts.
func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	now := middleware.GetRequestTime(r)

	total, err := h.queries.CountVisiblePosts(r.Context(), now)
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to count posts", "error", err)
		return
	}

	pagination := BuildPagination(ParsePageParam(r), total, PostsPerPage, RouteRoot)

	posts, err := h.queries.ListVisiblePosts(r.Context(), store.ListVisiblePostsParams{
		Now:    now,
		Limit:  PostsPerPage,
		Offset: pagination.Offset(),
	})
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list posts", "error", err)
		return
	}

	data := baseData(r, "Latest posts")
	data.Data = PostListData{Posts: posts, Pagination: pagination}

	if err := h.renderer.Render(w, r, "blog/index", data); err != nil {
		logAndInternalError(w, "failed to render index", "error", err)
	}
}

// Category handles GET /category/{slug} - posts of one published category.
// An unpublished or unknown category slug yields a 404.
func (h *BlogHandler) Category(w http.ResponseWriter, r *http.Request) {
	now := middleware.GetRequestTime(r)
	slug := chi.URLParam(r, "slug")
	if !util.IsValidSlug(slug) {
		renderNotFound(w, r, h.renderer)
		return
	}

	category, err := h.queries.GetPublishedCategoryBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			renderNotFound(w, r, h.renderer)
			return
		}
		renderServerError(w, r, h.renderer, "failed to get category", "slug", slug, "error", err)
		return
	}

	total, err := h.queries.CountVisiblePostsByCategory(r.Context(), store.CountVisiblePostsByCategoryParams{
		CategoryID: category.ID,
		Now:        now,
	})
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to count category posts", "slug", slug, "error", err)
		return
	}

	pagination := BuildPagination(ParsePageParam(r), total, PostsPerPage, "/category/"+category.Slug)

	posts, err := h.queries.ListVisiblePostsByCategory(r.Context(), store.ListVisiblePostsByCategoryParams{
		CategoryID: category.ID,
		Now:        now,
		Limit:      PostsPerPage,
		Offset:     pagination.Offset(),
	})
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list category posts", "slug", slug, "error", err)
		return
	}

	data := baseData(r, category.Title)
	data.Data = PostListData{Posts: posts, Pagination: pagination, Category: &category}

	if err := h.renderer.Render(w, r, "blog/category", data); err != nil {
		logAndInternalError(w, "failed to render category", "error", err)
	}
}

// PostDetail handles GET /posts/{id} - a single post with its comments.
// The author sees their own post unconditionally; everyone else gets a 404
// unless the post passes the public visibility rules.
func (h *BlogHandler) PostDetail(w http.ResponseWriter, r *http.Request) {
	now := middleware.GetRequestTime(r)

	postID := parseIDParam(r, "id")
	if postID == 0 {
		renderNotFound(w, r, h.renderer)
		return
	}

	post, err := h.queries.GetPostByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			renderNotFound(w, r, h.renderer)
			return
		}
		renderServerError(w, r, h.renderer, "failed to get post", "post_id", postID, "error", err)
		return
	}

	viewer := middleware.GetUser(r)
	viewerID := middleware.GetUserID(r)
	if !post.VisibleTo(viewerID, now) {
		renderNotFound(w, r, h.renderer)
		return
	}

	comments, err := h.queries.ListCommentsByPost(r.Context(), post.ID)
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to list comments", "post_id", postID, "error", err)
		return
	}

	detail := PostDetailData{
		Post:     post,
		Comments: comments,
		CanEdit:  viewerID == post.AuthorID,
	}
	if viewer != nil {
		form := CommentForm{}
		detail.CommentForm = &form
	}

	data := baseData(r, post.Title)
	data.Data = detail

	if err := h.renderer.Render(w, r, "blog/detail", data); err != nil {
		logAndInternalError(w, "failed to render post detail", "error", err)
	}
}
