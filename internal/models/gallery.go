// Package models contains the JSON view types returned by the handlers
package models

import "time"

// ImageItem is a presentable gallery image. URL is a signed link that
// expires one hour after issuance and must not be persisted.
type ImageItem struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// PageResult is one page of the gallery, newest first.
type PageResult struct {
	Images      []ImageItem `json:"images"`
	TotalCount  int         `json:"totalCount"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
	HasNextPage bool        `json:"hasNextPage"`
	HasPrevPage bool        `json:"hasPrevPage"`
}

// ImageList is the non-paginated "most recent" listing.
type ImageList struct {
	Images []ImageItem `json:"images"`
}

// DeleteRequest is the body of an image deletion.
type DeleteRequest struct {
	Key string `json:"key"`
}

// LoginRequest is the body of a gallery login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Result is the generic success/failure envelope.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse is returned with every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AuthStatus reports whether the caller holds a valid session.
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
}

// PageData is the view model shared by the server-rendered pages.
type PageData struct {
	AppStoreURL string
	HasData     bool
	PageSize    int
}
