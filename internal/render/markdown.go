// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// ugcPolicy sanitizes user-generated HTML after markdown conversion.
var ugcPolicy = bluemonday.UGCPolicy()

// Markdown converts user-submitted markdown to sanitized HTML.
// Post bodies and comments are stored as plain markdown and rendered on read.
func Markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		slog.Error("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(ugcPolicy.SanitizeBytes(buf.Bytes()))
}
