// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"
	"testing"
)

func TestMarkdownRendersBasicFormatting(t *testing.T) {
	got := string(Markdown("Some **bold** and *italic* text."))

	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("bold not rendered: %q", got)
	}
	if !strings.Contains(got, "<em>italic</em>") {
		t.Errorf("italic not rendered: %q", got)
	}
}

func TestMarkdownStripsScripts(t *testing.T) {
	got := string(Markdown("hello <script>alert('x')</script> world"))

	if strings.Contains(got, "<script") {
		t.Errorf("script tag survived sanitization: %q", got)
	}
	if !strings.Contains(got, "hello") || !strings.Contains(got, "world") {
		t.Errorf("surrounding text lost: %q", got)
	}
}

func TestMarkdownStripsEventHandlers(t *testing.T) {
	got := string(Markdown(`<a href="/x" onclick="steal()">link</a>`))

	if strings.Contains(got, "onclick") {
		t.Errorf("event handler survived sanitization: %q", got)
	}
}

func TestMarkdownKeepsLinks(t *testing.T) {
	got := string(Markdown("[a trip report](https://example.com/trip)"))

	if !strings.Contains(got, `href="https://example.com/trip"`) {
		t.Errorf("link not rendered: %q", got)
	}
}

func TestMarkdownEmptyInput(t *testing.T) {
	if got := strings.TrimSpace(string(Markdown(""))); got != "" {
		t.Errorf("empty input produced %q", got)
	}
}
