// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/blogicum-go/internal/render"
)

// PagesHandler serves the static informational pages.
type PagesHandler struct {
	renderer *render.Renderer
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(renderer *render.Renderer) *PagesHandler {
	return &PagesHandler{renderer: renderer}
}

// About handles GET /pages/about.
func (h *PagesHandler) About(w http.ResponseWriter, r *http.Request) {
	data := baseData(r, "About")
	if err := h.renderer.Render(w, r, "pages/about", data); err != nil {
		logAndInternalError(w, "failed to render about page", "error", err)
	}
}

// Rules handles GET /pages/rules.
func (h *PagesHandler) Rules(w http.ResponseWriter, r *http.Request) {
	data := baseData(r, "Our rules")
	if err := h.renderer.Render(w, r, "pages/rules", data); err != nil {
		logAndInternalError(w, "failed to render rules page", "error", err)
	}
}
