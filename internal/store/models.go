// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

// User represents a registered author.
type User struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// FullName returns the user's display name, falling back to the username.
// Value receiver so templates can call it on non-addressable values.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// Category groups posts under a unique slug.
type Category struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	IsPublished bool
	CreatedAt   time.Time
}

// Location is an optional place attribute of a post.
type Location struct {
	ID          int64
	Name        string
	IsPublished bool
	CreatedAt   time.Time
}

// Post represents a blog post row.
type Post struct {
	ID          int64
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	AuthorID    int64
	CategoryID  sql.NullInt64
	LocationID  sql.NullInt64
	CreatedAt   time.Time
}

// PostWithMeta is a post row joined with its author, category, location,
// and comment count. Returned by all post list queries and GetPostByID.
type PostWithMeta struct {
	Post
	AuthorUsername      string
	AuthorFirstName     string
	AuthorLastName      string
	CategoryTitle       sql.NullString
	CategorySlug        sql.NullString
	CategoryIsPublished sql.NullBool
	LocationName        sql.NullString
	LocationIsPublished sql.NullBool
	CommentCount        int64
}

// VisibleTo reports whether the post may be served to the given viewer at the
// given instant. The author always sees their own post; everyone else only
// when the post and its category are published and the publish date has passed.
func (p PostWithMeta) VisibleTo(viewerID int64, now time.Time) bool {
	if viewerID != 0 && viewerID == p.AuthorID {
		return true
	}
	return p.IsPublished &&
		p.CategoryIsPublished.Valid && p.CategoryIsPublished.Bool &&
		!p.PubDate.After(now)
}

// AuthorFullName returns the author's display name, falling back to the username.
func (p PostWithMeta) AuthorFullName() string {
	u := User{Username: p.AuthorUsername, FirstName: p.AuthorFirstName, LastName: p.AuthorLastName}
	return u.FullName()
}

// Comment represents a reader comment on a post.
type Comment struct {
	ID        int64
	Text      string
	AuthorID  int64
	PostID    int64
	CreatedAt time.Time
}

// CommentWithAuthor is a comment row joined with its author's names.
type CommentWithAuthor struct {
	Comment
	AuthorUsername  string
	AuthorFirstName string
	AuthorLastName  string
}

// AuthorFullName returns the author's display name, falling back to the username.
func (c CommentWithAuthor) AuthorFullName() string {
	u := User{Username: c.AuthorUsername, FirstName: c.AuthorFirstName, LastName: c.AuthorLastName}
	return u.FullName()
}
