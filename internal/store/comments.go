// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// CreateCommentParams holds the fields for CreateComment.
type CreateCommentParams struct {
	Text      string
	AuthorID  int64
	PostID    int64
	CreatedAt time.Time
}

// CreateComment inserts a new comment and returns the stored row.
func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (Comment, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO comments (text, author_id, post_id, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id, text, author_id, post_id, created_at`,
		arg.Text, arg.AuthorID, arg.PostID, arg.CreatedAt)
	var c Comment
	err := row.Scan(&c.ID, &c.Text, &c.AuthorID, &c.PostID, &c.CreatedAt)
	return c, err
}

// GetCommentByID fetches a comment by primary key.
func (q *Queries) GetCommentByID(ctx context.Context, id int64) (Comment, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, text, author_id, post_id, created_at
		FROM comments WHERE id = ?`, id)
	var c Comment
	err := row.Scan(&c.ID, &c.Text, &c.AuthorID, &c.PostID, &c.CreatedAt)
	return c, err
}

// ListCommentsByPost returns a post's comments with author names, oldest first.
func (q *Queries) ListCommentsByPost(ctx context.Context, postID int64) ([]CommentWithAuthor, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT cm.id, cm.text, cm.author_id, cm.post_id, cm.created_at,
		       u.username, u.first_name, u.last_name
		FROM comments cm
		JOIN users u ON u.id = cm.author_id
		WHERE cm.post_id = ?
		ORDER BY cm.created_at, cm.id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []CommentWithAuthor
	for rows.Next() {
		var c CommentWithAuthor
		if err := rows.Scan(&c.ID, &c.Text, &c.AuthorID, &c.PostID, &c.CreatedAt,
			&c.AuthorUsername, &c.AuthorFirstName, &c.AuthorLastName); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CountCommentsByPost counts a post's comments.
func (q *Queries) CountCommentsByPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID).Scan(&count)
	return count, err
}

// UpdateCommentParams holds the fields for UpdateComment.
type UpdateCommentParams struct {
	Text string
	ID   int64
}

// UpdateComment replaces a comment's text. Authorship and the parent post
// are never changed.
func (q *Queries) UpdateComment(ctx context.Context, arg UpdateCommentParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE comments SET text = ? WHERE id = ?`, arg.Text, arg.ID)
	return err
}

// DeleteComment removes a comment.
func (q *Queries) DeleteComment(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	return err
}
