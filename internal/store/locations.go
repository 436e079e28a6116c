// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const locationColumns = `id, name, is_published, created_at`

// CreateLocationParams holds the fields for CreateLocation.
type CreateLocationParams struct {
	Name        string
	IsPublished bool
	CreatedAt   time.Time
}

// CreateLocation inserts a new location and returns the stored row.
func (q *Queries) CreateLocation(ctx context.Context, arg CreateLocationParams) (Location, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO locations (name, is_published, created_at)
		VALUES (?, ?, ?)
		RETURNING `+locationColumns,
		arg.Name, arg.IsPublished, arg.CreatedAt)
	var l Location
	err := row.Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt)
	return l, err
}

// ListPublishedLocations returns all published locations ordered by name.
func (q *Queries) ListPublishedLocations(ctx context.Context) ([]Location, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE is_published = 1 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name, &l.IsPublished, &l.CreatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
