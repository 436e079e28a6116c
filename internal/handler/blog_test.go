// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestIndexShowsOnlyVisiblePosts(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)
	h := NewBlogHandler(db, renderer, sm)

	author := createTestUser(t, db, "author")
	category := createTestCategory(t, db, "travel", true)
	hidden := createTestCategory(t, db, "drafts", false)

	visible := createTestPost(t, db, testPost{
		Title: "Visible", AuthorID: author.ID, CategoryID: category.ID, IsPublished: true,
	})
	createTestPost(t, db, testPost{
		Title: "Unpublished", AuthorID: author.ID, CategoryID: category.ID, IsPublished: false,
	})
	createTestPost(t, db, testPost{
		Title: "Future", AuthorID: author.ID, CategoryID: category.ID, IsPublished: true,
		PubDate: time.Now().UTC().Add(24 * time.Hour),
	})
	createTestPost(t, db, testPost{
		Title: "Hidden category", AuthorID: author.ID, CategoryID: hidden.ID, IsPublished: true,
	})

	req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()
	h.Index(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, visible.Title) {
		t.Error("visible post missing from index")
	}
	for _, title := range []string{"Unpublished", "Future", "Hidden category"} {
		if strings.Contains(body, title) {
			t.Errorf("post %q should not appear on the index", title)
		}
	}
}

func TestCategoryUnpublishedIs404(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)
	h := NewBlogHandler(db, renderer, sm)

	createTestCategory(t, db, "drafts", false)

	req := httptest.NewRequest(http.MethodGet, "/category/drafts", nil)
	req = requestWithSession(sm, requestWithURLParams(req, map[string]string{"slug": "drafts"}))
	rec := httptest.NewRecorder()
	h.Category(rec, req)

	assertStatus(t, rec.Code, http.StatusNotFound)
}

func TestCategoryListsItsPosts(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)
	h := NewBlogHandler(db, renderer, sm)

	author := createTestUser(t, db, "author")
	travel := createTestCategory(t, db, "travel", true)
	food := createTestCategory(t, db, "food", true)

	createTestPost(t, db, testPost{Title: "Trip", AuthorID: author.ID, CategoryID: travel.ID, IsPublished: true})
	createTestPost(t, db, testPost{Title: "Dinner", AuthorID: author.ID, CategoryID: food.ID, IsPublished: true})

	req := httptest.NewRequest(http.MethodGet, "/category/travel", nil)
	req = requestWithSession(sm, requestWithURLParams(req, map[string]string{"slug": "travel"}))
	rec := httptest.NewRecorder()
	h.Category(rec, req)

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "Trip") {
		t.Error("category post missing")
	}
	if strings.Contains(body, "Dinner") {
		t.Error("post from another category leaked into listing")
	}
}

func TestPostDetailVisibility(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)
	h := NewBlogHandler(db, renderer, sm)

	author := createTestUser(t, db, "author")
	stranger := createTestUser(t, db, "stranger")
	category := createTestCategory(t, db, "travel", true)

	draft := createTestPost(t, db, testPost{
		Title: "Draft", AuthorID: author.ID, CategoryID: category.ID, IsPublished: false,
	})

	detail := func(r *http.Request) *httptest.ResponseRecorder {
		r = requestWithURLParams(r, map[string]string{"id": fmt.Sprintf("%d", draft.ID)})
		rec := httptest.NewRecorder()
		h.PostDetail(rec, r)
		return rec
	}

	// Anonymous viewer: hidden posts look like they do not exist
	rec := detail(requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/posts/1", nil)))
	assertStatus(t, rec.Code, http.StatusNotFound)

	// Another user: same 404
	rec = detail(requestAsUser(sm, httptest.NewRequest(http.MethodGet, "/posts/1", nil), stranger))
	assertStatus(t, rec.Code, http.StatusNotFound)

	// The author sees their own draft
	rec = detail(requestAsUser(sm, httptest.NewRequest(http.MethodGet, "/posts/1", nil), author))
	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Draft") {
		t.Error("author should see their own unpublished post")
	}
}

func TestPostDetailFutureDatedAuthorOnly(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)
	h := NewBlogHandler(db, renderer, sm)

	author := createTestUser(t, db, "author")
	category := createTestCategory(t, db, "travel", true)
	post := createTestPost(t, db, testPost{
		Title: "Scheduled", AuthorID: author.ID, CategoryID: category.ID, IsPublished: true,
		PubDate: time.Now().UTC().Add(48 * time.Hour),
	})

	params := map[string]string{"id": fmt.Sprintf("%d", post.ID)}

	req := requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/posts/1", nil))
	rec := httptest.NewRecorder()
	h.PostDetail(rec, requestWithURLParams(req, params))
	assertStatus(t, rec.Code, http.StatusNotFound)

	req = requestAsUser(sm, httptest.NewRequest(http.MethodGet, "/posts/1", nil), author)
	rec = httptest.NewRecorder()
	h.PostDetail(rec, requestWithURLParams(req, params))
	assertStatus(t, rec.Code, http.StatusOK)
}

func TestPostDetailBadID(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	renderer := testRenderer(t, sm)
	h := NewBlogHandler(db, renderer, sm)

	req := httptest.NewRequest(http.MethodGet, "/posts/abc", nil)
	req = requestWithSession(sm, requestWithURLParams(req, map[string]string{"id": "abc"}))
	rec := httptest.NewRecorder()
	h.PostDetail(rec, req)

	assertStatus(t, rec.Code, http.StatusNotFound)
}
