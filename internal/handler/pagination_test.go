// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		perPage    int
		want       int
	}{
		{"zero items", 0, 10, 1},
		{"less than one page", 5, 10, 1},
		{"exactly one page", 10, 10, 1},
		{"one item over", 11, 10, 2},
		{"multiple pages", 25, 10, 3},
		{"exact multiple", 30, 10, 3},
		{"zero per page", 10, 0, 1},
		{"negative per page", 10, -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotalPages(tt.totalItems, tt.perPage)
			if got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.totalItems, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"valid page", 3, 5, 3},
		{"first page", 1, 5, 1},
		{"last page", 5, 5, 5},
		{"below minimum", 0, 5, 1},
		{"negative page", -1, 5, 1},
		{"above maximum", 10, 5, 5},
		{"way above maximum", 100, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampPage(tt.page, tt.totalPages)
			if got != tt.want {
				t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		totalItems     int
		perPage        int
		wantPage       int
		wantTotalPages int
	}{
		{"valid page", 2, 50, 10, 2, 5},
		{"page too high", 10, 50, 10, 5, 5},
		{"page too low", 0, 50, 10, 1, 5},
		{"single page", 1, 5, 10, 1, 1},
		{"empty list", 1, 0, 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPage, gotTotal := NormalizePagination(tt.page, tt.totalItems, tt.perPage)
			if gotPage != tt.wantPage || gotTotal != tt.wantTotalPages {
				t.Errorf("NormalizePagination(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.totalItems, tt.perPage, gotPage, gotTotal, tt.wantPage, tt.wantTotalPages)
			}
		})
	}
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"valid page", "page=3", 3},
		{"first page", "page=1", 1},
		{"no param", "", 1},
		{"empty param", "page=", 1},
		{"invalid param", "page=abc", 1},
		{"zero page", "page=0", 1},
		{"negative page", "page=-1", 1},
		{"large page", "page=999", 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got := ParsePageParam(req)
			if got != tt.want {
				t.Errorf("ParsePageParam() with query %q = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(3, 45, 10, "/")

	if p.CurrentPage != 3 {
		t.Errorf("CurrentPage = %d, want 3", p.CurrentPage)
	}
	if p.TotalPages != 5 {
		t.Errorf("TotalPages = %d, want 5", p.TotalPages)
	}
	if !p.HasPrev || !p.HasNext {
		t.Errorf("HasPrev = %v, HasNext = %v, want both true", p.HasPrev, p.HasNext)
	}
	if p.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", p.Offset())
	}
	if got := p.PrevURL(); got != "/?page=2" {
		t.Errorf("PrevURL() = %q, want %q", got, "/?page=2")
	}
	if got := p.NextURL(); got != "/?page=4" {
		t.Errorf("NextURL() = %q, want %q", got, "/?page=4")
	}
}

func TestBuildPaginationClampsOutOfRangePage(t *testing.T) {
	// Requesting a page past the end lands on the last page
	p := BuildPagination(99, 25, 10, "/category/travel")

	if p.CurrentPage != 3 {
		t.Errorf("CurrentPage = %d, want 3", p.CurrentPage)
	}
	if p.HasNext {
		t.Error("HasNext = true, want false on last page")
	}
	if p.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", p.Offset())
	}
}

func TestPaginationShouldShow(t *testing.T) {
	if BuildPagination(1, 5, 10, "/").ShouldShow() {
		t.Error("ShouldShow() = true for a single page")
	}
	if !BuildPagination(1, 15, 10, "/").ShouldShow() {
		t.Error("ShouldShow() = false for multiple pages")
	}
}
