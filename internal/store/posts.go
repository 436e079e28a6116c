// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// postSelect joins a post with its author, category, location, and comment
// count. Every post list query and GetPostByID shares this shape.
const postSelect = `
	SELECT p.id, p.title, p.text, p.pub_date, p.is_published,
	       p.author_id, p.category_id, p.location_id, p.created_at,
	       u.username, u.first_name, u.last_name,
	       c.title, c.slug, c.is_published,
	       l.name, l.is_published,
	       COUNT(cm.id) AS comment_count
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN locations l ON l.id = p.location_id
	LEFT JOIN comments cm ON cm.post_id = p.id`

// visiblePredicate is the default public visibility filter: the post and its
// category are published and the scheduled publish date has passed. Posts
// without a category never match (NULL is not published).
const visiblePredicate = `p.is_published = 1 AND c.is_published = 1 AND p.pub_date <= ?`

func scanPostWithMeta(s interface{ Scan(...any) error }) (PostWithMeta, error) {
	var p PostWithMeta
	err := s.Scan(&p.ID, &p.Title, &p.Text, &p.PubDate, &p.IsPublished,
		&p.AuthorID, &p.CategoryID, &p.LocationID, &p.CreatedAt,
		&p.AuthorUsername, &p.AuthorFirstName, &p.AuthorLastName,
		&p.CategoryTitle, &p.CategorySlug, &p.CategoryIsPublished,
		&p.LocationName, &p.LocationIsPublished,
		&p.CommentCount)
	return p, err
}

func (q *Queries) listPosts(ctx context.Context, query string, args ...any) ([]PostWithMeta, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []PostWithMeta
	for rows.Next() {
		p, err := scanPostWithMeta(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (q *Queries) countPosts(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// ListVisiblePostsParams holds the fields for ListVisiblePosts.
type ListVisiblePostsParams struct {
	Now    time.Time
	Limit  int64
	Offset int64
}

// ListVisiblePosts returns publicly visible posts, newest publish date first.
func (q *Queries) ListVisiblePosts(ctx context.Context, arg ListVisiblePostsParams) ([]PostWithMeta, error) {
	return q.listPosts(ctx, postSelect+`
		WHERE `+visiblePredicate+`
		GROUP BY p.id
		ORDER BY p.pub_date DESC
		LIMIT ? OFFSET ?`,
		arg.Now, arg.Limit, arg.Offset)
}

// CountVisiblePosts counts publicly visible posts.
func (q *Queries) CountVisiblePosts(ctx context.Context, now time.Time) (int64, error) {
	return q.countPosts(ctx, `
		SELECT COUNT(*)
		FROM posts p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE `+visiblePredicate, now)
}

// ListVisiblePostsByCategoryParams holds the fields for ListVisiblePostsByCategory.
type ListVisiblePostsByCategoryParams struct {
	CategoryID int64
	Now        time.Time
	Limit      int64
	Offset     int64
}

// ListVisiblePostsByCategory returns publicly visible posts in a category.
func (q *Queries) ListVisiblePostsByCategory(ctx context.Context, arg ListVisiblePostsByCategoryParams) ([]PostWithMeta, error) {
	return q.listPosts(ctx, postSelect+`
		WHERE p.category_id = ? AND `+visiblePredicate+`
		GROUP BY p.id
		ORDER BY p.pub_date DESC
		LIMIT ? OFFSET ?`,
		arg.CategoryID, arg.Now, arg.Limit, arg.Offset)
}

// CountVisiblePostsByCategoryParams holds the fields for CountVisiblePostsByCategory.
type CountVisiblePostsByCategoryParams struct {
	CategoryID int64
	Now        time.Time
}

// CountVisiblePostsByCategory counts publicly visible posts in a category.
func (q *Queries) CountVisiblePostsByCategory(ctx context.Context, arg CountVisiblePostsByCategoryParams) (int64, error) {
	return q.countPosts(ctx, `
		SELECT COUNT(*)
		FROM posts p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = ? AND `+visiblePredicate,
		arg.CategoryID, arg.Now)
}

// ListPostsByAuthorParams holds the fields for ListPostsByAuthor.
type ListPostsByAuthorParams struct {
	AuthorID int64
	Limit    int64
	Offset   int64
}

// ListPostsByAuthor returns all of an author's posts with no visibility
// filter. Used when the profile owner views their own page: drafts and
// future-dated posts are included.
func (q *Queries) ListPostsByAuthor(ctx context.Context, arg ListPostsByAuthorParams) ([]PostWithMeta, error) {
	return q.listPosts(ctx, postSelect+`
		WHERE p.author_id = ?
		GROUP BY p.id
		ORDER BY p.pub_date DESC
		LIMIT ? OFFSET ?`,
		arg.AuthorID, arg.Limit, arg.Offset)
}

// CountPostsByAuthor counts all of an author's posts.
func (q *Queries) CountPostsByAuthor(ctx context.Context, authorID int64) (int64, error) {
	return q.countPosts(ctx,
		`SELECT COUNT(*) FROM posts p WHERE p.author_id = ?`, authorID)
}

// ListVisiblePostsByAuthorParams holds the fields for ListVisiblePostsByAuthor.
type ListVisiblePostsByAuthorParams struct {
	AuthorID int64
	Now      time.Time
	Limit    int64
	Offset   int64
}

// ListVisiblePostsByAuthor returns an author's publicly visible posts. Used
// when anyone other than the owner views a profile page.
func (q *Queries) ListVisiblePostsByAuthor(ctx context.Context, arg ListVisiblePostsByAuthorParams) ([]PostWithMeta, error) {
	return q.listPosts(ctx, postSelect+`
		WHERE p.author_id = ? AND `+visiblePredicate+`
		GROUP BY p.id
		ORDER BY p.pub_date DESC
		LIMIT ? OFFSET ?`,
		arg.AuthorID, arg.Now, arg.Limit, arg.Offset)
}

// CountVisiblePostsByAuthorParams holds the fields for CountVisiblePostsByAuthor.
type CountVisiblePostsByAuthorParams struct {
	AuthorID int64
	Now      time.Time
}

// CountVisiblePostsByAuthor counts an author's publicly visible posts.
func (q *Queries) CountVisiblePostsByAuthor(ctx context.Context, arg CountVisiblePostsByAuthorParams) (int64, error) {
	return q.countPosts(ctx, `
		SELECT COUNT(*)
		FROM posts p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.author_id = ? AND `+visiblePredicate,
		arg.AuthorID, arg.Now)
}

// GetPostByID fetches a single post with joined metadata regardless of
// visibility. Callers decide with PostWithMeta.VisibleTo whether the viewer
// may see it.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (PostWithMeta, error) {
	row := q.db.QueryRowContext(ctx, postSelect+`
		WHERE p.id = ?
		GROUP BY p.id`, id)
	return scanPostWithMeta(row)
}

// CreatePostParams holds the fields for CreatePost.
type CreatePostParams struct {
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	AuthorID    int64
	CategoryID  sql.NullInt64
	LocationID  sql.NullInt64
	CreatedAt   time.Time
}

// CreatePost inserts a new post and returns the stored row.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, text, pub_date, is_published, author_id, category_id, location_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, title, text, pub_date, is_published, author_id, category_id, location_id, created_at`,
		arg.Title, arg.Text, arg.PubDate, arg.IsPublished, arg.AuthorID,
		arg.CategoryID, arg.LocationID, arg.CreatedAt)
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Text, &p.PubDate, &p.IsPublished,
		&p.AuthorID, &p.CategoryID, &p.LocationID, &p.CreatedAt)
	return p, err
}

// UpdatePostParams holds the fields for UpdatePost.
type UpdatePostParams struct {
	Title      string
	Text       string
	PubDate    time.Time
	CategoryID sql.NullInt64
	LocationID sql.NullInt64
	ID         int64
}

// UpdatePost updates the client-editable fields of a post. Authorship and
// publication status are never changed here.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE posts
		SET title = ?, text = ?, pub_date = ?, category_id = ?, location_id = ?
		WHERE id = ?`,
		arg.Title, arg.Text, arg.PubDate, arg.CategoryID, arg.LocationID, arg.ID)
	return err
}

// DeletePost removes a post. Its comments are removed by the ON DELETE
// CASCADE constraint.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	return err
}
