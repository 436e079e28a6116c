// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/blogicum-go/internal/middleware"
	"github.com/olegiv/blogicum-go/internal/render"
)

// baseData builds the common template data for a request: page title and the
// current viewer (nil for anonymous visitors).
func baseData(r *http.Request, title string) render.TemplateData {
	return render.TemplateData{
		Title:  title,
		Viewer: middleware.GetUser(r),
	}
}

// renderNotFound renders the 404 page. Used both for genuinely missing
// records and for posts the viewer is not allowed to see, so the response
// never reveals whether a hidden post exists.
func renderNotFound(w http.ResponseWriter, r *http.Request, renderer *render.Renderer) {
	data := baseData(r, "Page not found")
	if err := renderer.RenderStatus(w, r, http.StatusNotFound, "errors/404", data); err != nil {
		slog.Error("failed to render 404 page", "error", err)
		http.NotFound(w, r)
	}
}

// renderForbidden renders the 403 page.
func renderForbidden(w http.ResponseWriter, r *http.Request, renderer *render.Renderer) {
	data := baseData(r, "Forbidden")
	if err := renderer.RenderStatus(w, r, http.StatusForbidden, "errors/403", data); err != nil {
		slog.Error("failed to render 403 page", "error", err)
		http.Error(w, "Forbidden", http.StatusForbidden)
	}
}

// renderServerError logs the failure and renders the 500 page.
func renderServerError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	data := baseData(r, "Server error")
	if err := renderer.RenderStatus(w, r, http.StatusInternalServerError, "errors/500", data); err != nil {
		slog.Error("failed to render 500 page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
