// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "fmt"

// PostsPerPage is the number of posts per listing page.
const PostsPerPage = 10

// Route constants used across handlers and the router.
const (
	RouteRoot         = "/"
	RouteLogin        = "/auth/login"
	RouteLogout       = "/auth/logout"
	RouteRegistration = "/auth/registration"
	RoutePostCreate   = "/posts/create"
	RouteProfileEdit  = "/profile/edit"
)

// postDetailURL builds the canonical URL of a post's detail page.
func postDetailURL(postID int64) string {
	return fmt.Sprintf("/posts/%d", postID)
}

// profileURL builds the URL of a user's profile page.
func profileURL(username string) string {
	return "/profile/" + username
}
