// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/blogicum-go/internal/auth"
	"github.com/olegiv/blogicum-go/internal/util"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "changeme"
)

// seedCategories are created on first start so the blog is usable immediately.
// Slugs are derived from the titles.
var seedCategories = []CreateCategoryParams{
	{Title: "Travel", Description: "Trip reports and travel notes.", IsPublished: true},
	{Title: "Food", Description: "Recipes and restaurant reviews.", IsPublished: true},
	{Title: "Tech", Description: "Software and hardware.", IsPublished: true},
}

var seedLocations = []CreateLocationParams{
	{Name: "Amsterdam", IsPublished: true},
	{Name: "Lisbon", IsPublished: true},
	{Name: "Tbilisi", IsPublished: true},
}

// Seed creates initial data in the database: a default admin user and a
// starter set of categories and locations. Safe to call on every start.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetUserByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := queries.WithTx(tx)

	now := time.Now()
	user, err := qtx.CreateUser(ctx, CreateUserParams{
		Username:     DefaultAdminUsername,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	for _, c := range seedCategories {
		c.Slug = util.Slugify(c.Title)
		exists, err := qtx.CategorySlugExists(ctx, c.Slug)
		if err != nil {
			return fmt.Errorf("checking category %q: %w", c.Slug, err)
		}
		if exists {
			continue
		}
		c.CreatedAt = now
		if _, err := qtx.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("creating category %q: %w", c.Slug, err)
		}
	}
	for _, l := range seedLocations {
		l.CreatedAt = now
		if _, err := qtx.CreateLocation(ctx, l); err != nil {
			return fmt.Errorf("creating location %q: %w", l.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"username", user.Username,
		"password", DefaultAdminPassword,
	)

	return nil
}
