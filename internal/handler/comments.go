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

// CommentsHandler handles adding, editing, and deleting comments. All routes
// require an authenticated viewer; edit and delete additionally require the
// viewer to be the comment's author.
type CommentsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewCommentsHandler creates a new CommentsHandler.
func NewCommentsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *CommentsHandler {
	return &CommentsHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// CommentFormData holds data for the comment edit template.
type CommentFormData struct {
	Form    CommentForm
	PostID  int64
	Comment store.Comment
	IsEdit  bool
}

// CommentDeleteData holds data for the comment delete confirmation template.
type CommentDeleteData struct {
	Comment store.Comment
	PostID  int64
}

// Add handles POST /posts/{id}/comment. The comment's author and parent post
// come from the session and the URL, never from form fields. The target post
// must be visible to the viewer.
func (h *CommentsHandler) Add(w http.ResponseWriter, r *http.Request) {
	now := middleware.GetRequestTime(r)
	user := middleware.GetUser(r)

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

	if !post.VisibleTo(user.ID, now) {
		renderNotFound(w, r, h.renderer)
		return
	}

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, postDetailURL(post.ID), "Invalid form data")
		return
	}

	form := ParseCommentForm(r)
	if !form.Validate() {
		// The original behavior: an invalid comment is silently dropped and
		// the viewer lands back on the post page.
		flashError(w, r, h.renderer, postDetailURL(post.ID), "Comment text is required.")
		return
	}

	comment, err := h.queries.CreateComment(r.Context(), store.CreateCommentParams{
		Text:      form.Text,
		AuthorID:  user.ID,
		PostID:    post.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		renderServerError(w, r, h.renderer, "failed to create comment", "post_id", post.ID, "error", err)
		return
	}

	slog.Info("comment added", "comment_id", comment.ID, "post_id", post.ID, "author_id", user.ID)
	http.Redirect(w, r, postDetailURL(post.ID), http.StatusSeeOther)
}

// requireOwnComment fetches a comment belonging to the post in the URL and
// applies the permission guard. A viewer who is not the comment's author is
// soft-denied: redirected to the post detail page with nothing changed.
func (h *CommentsHandler) requireOwnComment(w http.ResponseWriter, r *http.Request) (store.Comment, bool) {
	postID := parseIDParam(r, "id")
	commentID := parseIDParam(r, "cid")
	if postID == 0 || commentID == 0 {
		renderNotFound(w, r, h.renderer)
		return store.Comment{}, false
	}

	comment, err := h.queries.GetCommentByID(r.Context(), commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			renderNotFound(w, r, h.renderer)
			return store.Comment{}, false
		}
		renderServerError(w, r, h.renderer, "failed to get comment", "comment_id", commentID, "error", err)
		return store.Comment{}, false
	}

	if comment.PostID != postID {
		renderNotFound(w, r, h.renderer)
		return store.Comment{}, false
	}

	if !canMutate(middleware.GetUserID(r), comment.AuthorID) {
		http.Redirect(w, r, postDetailURL(postID), http.StatusSeeOther)
		return store.Comment{}, false
	}

	return comment, true
}

// EditForm handles GET /posts/{id}/edit_comment/{cid}.
func (h *CommentsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.requireOwnComment(w, r)
	if !ok {
		return
	}

	data := baseData(r, "Edit comment")
	data.Data = CommentFormData{
		Form:    CommentForm{Text: comment.Text, Errors: make(map[string]string)},
		PostID:  comment.PostID,
		Comment: comment,
		IsEdit:  true,
	}

	if err := h.renderer.Render(w, r, "blog/comment", data); err != nil {
		logAndInternalError(w, "failed to render comment form", "error", err)
	}
}

// Edit handles POST /posts/{id}/edit_comment/{cid}.
func (h *CommentsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.requireOwnComment(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, postDetailURL(comment.PostID), "Invalid form data")
		return
	}

	form := ParseCommentForm(r)
	if !form.Validate() {
		data := baseData(r, "Edit comment")
		data.Data = CommentFormData{Form: form, PostID: comment.PostID, Comment: comment, IsEdit: true}
		if err := h.renderer.Render(w, r, "blog/comment", data); err != nil {
			logAndInternalError(w, "failed to render comment form", "error", err)
		}
		return
	}

	if err := h.queries.UpdateComment(r.Context(), store.UpdateCommentParams{
		Text: form.Text,
		ID:   comment.ID,
	}); err != nil {
		renderServerError(w, r, h.renderer, "failed to update comment", "comment_id", comment.ID, "error", err)
		return
	}

	slog.Info("comment updated", "comment_id", comment.ID, "author_id", comment.AuthorID)
	flashSuccess(w, r, h.renderer, postDetailURL(comment.PostID), "Comment updated.")
}

// DeleteForm handles GET /posts/{id}/delete_comment/{cid} - confirmation page.
func (h *CommentsHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.requireOwnComment(w, r)
	if !ok {
		return
	}

	data := baseData(r, "Delete comment")
	data.Data = CommentDeleteData{Comment: comment, PostID: comment.PostID}

	if err := h.renderer.Render(w, r, "blog/comment_delete", data); err != nil {
		logAndInternalError(w, "failed to render comment delete confirmation", "error", err)
	}
}

// Delete handles POST /posts/{id}/delete_comment/{cid}.
func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	comment, ok := h.requireOwnComment(w, r)
	if !ok {
		return
	}

	if err := h.queries.DeleteComment(r.Context(), comment.ID); err != nil {
		renderServerError(w, r, h.renderer, "failed to delete comment", "comment_id", comment.ID, "error", err)
		return
	}

	slog.Info("comment deleted", "comment_id", comment.ID, "author_id", comment.AuthorID)
	flashSuccess(w, r, h.renderer, postDetailURL(comment.PostID), "Comment deleted.")
}
