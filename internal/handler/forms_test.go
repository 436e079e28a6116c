// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func formRequest(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := req.ParseForm(); err != nil {
		t.Fatalf("failed to parse form: %v", err)
	}
	return req
}

func TestPostFormValidate(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		valid     bool
		errorKeys []string
	}{
		{
			"valid form",
			url.Values{"title": {"Hello"}, "text": {"World"}, "pub_date": {"2026-08-01T12:00"}},
			true, nil,
		},
		{
			"date only",
			url.Values{"title": {"Hello"}, "text": {"World"}, "pub_date": {"2026-08-01"}},
			true, nil,
		},
		{
			"missing title",
			url.Values{"text": {"World"}, "pub_date": {"2026-08-01T12:00"}},
			false, []string{"title"},
		},
		{
			"missing text",
			url.Values{"title": {"Hello"}, "pub_date": {"2026-08-01T12:00"}},
			false, []string{"text"},
		},
		{
			"missing pub date",
			url.Values{"title": {"Hello"}, "text": {"World"}},
			false, []string{"pub_date"},
		},
		{
			"garbage pub date",
			url.Values{"title": {"Hello"}, "text": {"World"}, "pub_date": {"not-a-date"}},
			false, []string{"pub_date"},
		},
		{
			"title too long",
			url.Values{"title": {strings.Repeat("x", 257)}, "text": {"World"}, "pub_date": {"2026-08-01T12:00"}},
			false, []string{"title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := ParsePostForm(formRequest(t, tt.values), false, time.Time{})
			if got := form.Validate(); got != tt.valid {
				t.Errorf("Validate() = %v, want %v (errors: %v)", got, tt.valid, form.Errors)
			}
			for _, key := range tt.errorKeys {
				if form.Errors[key] == "" {
					t.Errorf("expected error for %q, got none", key)
				}
			}
		})
	}
}

func TestPostFormLockedPubDateIgnoresSubmittedValue(t *testing.T) {
	locked := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	values := url.Values{
		"title":    {"Hello"},
		"text":     {"World"},
		"pub_date": {"2030-01-01T00:00"},
	}

	form := ParsePostForm(formRequest(t, values), true, locked)
	if !form.Validate() {
		t.Fatalf("Validate() = false, errors: %v", form.Errors)
	}
	if !form.PubDate.Equal(locked) {
		t.Errorf("PubDate = %v, want locked %v", form.PubDate, locked)
	}
}

func TestCommentFormValidate(t *testing.T) {
	form := ParseCommentForm(formRequest(t, url.Values{"text": {"  hi there  "}}))
	if !form.Validate() {
		t.Fatalf("Validate() = false, errors: %v", form.Errors)
	}
	if form.Text != "hi there" {
		t.Errorf("Text = %q, want trimmed", form.Text)
	}

	empty := ParseCommentForm(formRequest(t, url.Values{"text": {"   "}}))
	if empty.Validate() {
		t.Error("Validate() = true for whitespace-only text")
	}
}

func TestProfileFormValidate(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		valid    bool
	}{
		{"valid", "alice", "alice@example.com", true},
		{"empty email ok", "alice", "", true},
		{"empty username", "", "", false},
		{"username too short", "ab", "", false},
		{"username bad chars", "a lice!", "", false},
		{"bad email", "alice", "not-an-email", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := ParseProfileForm(formRequest(t, url.Values{
				"username": {tt.username},
				"email":    {tt.email},
			}))
			if got := form.Validate(); got != tt.valid {
				t.Errorf("Validate() = %v, want %v (errors: %v)", got, tt.valid, form.Errors)
			}
		})
	}
}

func TestRegisterFormValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		valid    bool
	}{
		{"valid", "password123", "password123", true},
		{"too short", "short", "short", false},
		{"mismatch", "password123", "password124", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := ParseRegisterForm(formRequest(t, url.Values{
				"username":         {"alice"},
				"password":         {tt.password},
				"password_confirm": {tt.confirm},
			}))
			if got := form.Validate(); got != tt.valid {
				t.Errorf("Validate() = %v, want %v (errors: %v)", got, tt.valid, form.Errors)
			}
		})
	}
}
