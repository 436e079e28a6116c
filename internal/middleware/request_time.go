// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"time"
)

// ContextKeyRequestTime is the context key for the request timestamp.
const ContextKeyRequestTime ContextKey = "request_time"

// RequestTime creates middleware that stores a single timestamp in the
// request context. Every visibility check within one request compares
// against this instant, so a post cannot flip between visible and hidden
// while the response is being built.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestTime, time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestTime retrieves the request timestamp from the context.
// Falls back to the current time if the middleware did not run.
func GetRequestTime(r *http.Request) time.Time {
	now, ok := r.Context().Value(ContextKeyRequestTime).(time.Time)
	if !ok {
		return time.Now().UTC()
	}
	return now
}
