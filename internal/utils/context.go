// Package utils provides shared utility functions and constants
package utils

// CookieName is the name of the gallery session cookie
const CookieName = "gallery_session"

// SessionMaxAge is the lifetime of a session cookie in seconds (7 days)
const SessionMaxAge = 60 * 60 * 24 * 7
