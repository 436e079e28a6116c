// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/blogicum-go/internal/util"
)

// pubDateFormats are accepted publish date inputs, tried in order.
// datetime-local inputs submit the first form, plain date inputs the second.
var pubDateFormats = []string{"2006-01-02T15:04", "2006-01-02"}

// PostForm holds submitted post fields and validation errors. The author and
// publication status are server-assigned and deliberately absent.
type PostForm struct {
	Title      string
	Text       string
	PubDateRaw string
	PubDate    time.Time
	CategoryID sql.NullInt64
	LocationID sql.NullInt64

	// PubDateLocked is true when editing a post whose publish date has
	// already passed: the date field is hidden and submitted values are ignored.
	PubDateLocked bool

	Errors map[string]string
}

// ParsePostForm reads post fields from the submitted form. When the publish
// date is locked, the client-submitted date is discarded and lockedPubDate
// is carried over unchanged.
func ParsePostForm(r *http.Request, locked bool, lockedPubDate time.Time) PostForm {
	f := PostForm{
		Title:         strings.TrimSpace(r.FormValue("title")),
		Text:          strings.TrimSpace(r.FormValue("text")),
		PubDateRaw:    strings.TrimSpace(r.FormValue("pub_date")),
		CategoryID:    util.ParseNullInt64Positive(r.FormValue("category_id")),
		LocationID:    util.ParseNullInt64Positive(r.FormValue("location_id")),
		PubDateLocked: locked,
		Errors:        make(map[string]string),
	}
	if locked {
		f.PubDate = lockedPubDate
		f.PubDateRaw = ""
	}
	return f
}

// Validate checks the form and fills Errors. Returns true when the form is valid.
func (f *PostForm) Validate() bool {
	if f.Title == "" {
		f.Errors["title"] = "Title is required."
	} else if len(f.Title) > 256 {
		f.Errors["title"] = "Title must be at most 256 characters."
	}

	if f.Text == "" {
		f.Errors["text"] = "Text is required."
	}

	if !f.PubDateLocked {
		if f.PubDateRaw == "" {
			f.Errors["pub_date"] = "Publish date is required."
		} else {
			parsed := false
			for _, layout := range pubDateFormats {
				if t, err := time.Parse(layout, f.PubDateRaw); err == nil {
					f.PubDate = t.UTC()
					parsed = true
					break
				}
			}
			if !parsed {
				f.Errors["pub_date"] = "Publish date is not a valid date."
			}
		}
	}

	return len(f.Errors) == 0
}

// CommentForm holds a submitted comment. Only the text is client-editable;
// the author and parent post are injected by the handler.
type CommentForm struct {
	Text   string
	Errors map[string]string
}

// ParseCommentForm reads the comment text from the submitted form.
func ParseCommentForm(r *http.Request) CommentForm {
	return CommentForm{
		Text:   strings.TrimSpace(r.FormValue("text")),
		Errors: make(map[string]string),
	}
}

// Validate checks the form and fills Errors. Returns true when the form is valid.
func (f *CommentForm) Validate() bool {
	if f.Text == "" {
		f.Errors["text"] = "Comment text is required."
	} else if len(f.Text) > 10000 {
		f.Errors["text"] = "Comment is too long."
	}
	return len(f.Errors) == 0
}

// ProfileForm holds submitted profile fields.
type ProfileForm struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Errors    map[string]string
}

// ParseProfileForm reads profile fields from the submitted form.
func ParseProfileForm(r *http.Request) ProfileForm {
	return ProfileForm{
		Username:  strings.TrimSpace(r.FormValue("username")),
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		Errors:    make(map[string]string),
	}
}

// Validate checks the form and fills Errors. Returns true when the form is valid.
func (f *ProfileForm) Validate() bool {
	if f.Username == "" {
		f.Errors["username"] = "Username is required."
	} else if !util.IsValidUsername(f.Username) {
		f.Errors["username"] = "Username must be 3-30 characters: letters, digits, '-' or '_'."
	}

	if f.Email != "" && !looksLikeEmail(f.Email) {
		f.Errors["email"] = "Enter a valid email address."
	}

	return len(f.Errors) == 0
}

// RegisterForm holds submitted registration fields.
type RegisterForm struct {
	ProfileForm
	Password        string
	PasswordConfirm string
}

// ParseRegisterForm reads registration fields from the submitted form.
func ParseRegisterForm(r *http.Request) RegisterForm {
	return RegisterForm{
		ProfileForm:     ParseProfileForm(r),
		Password:        r.FormValue("password"),
		PasswordConfirm: r.FormValue("password_confirm"),
	}
}

// Validate checks the form and fills Errors. Returns true when the form is valid.
func (f *RegisterForm) Validate() bool {
	valid := f.ProfileForm.Validate()

	if len(f.Password) < 8 {
		f.Errors["password"] = "Password must be at least 8 characters."
		valid = false
	}
	if f.Password != f.PasswordConfirm {
		f.Errors["password_confirm"] = "Passwords do not match."
		valid = false
	}

	return valid
}

// looksLikeEmail performs a shallow syntactic check. Real validation happens
// when mail is actually delivered.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	return !strings.ContainsAny(s, " \t\n")
}
