// Package utils contains small helper functions used across the project.
package utils

import (
	"encoding/base64"
	"strings"
)

// ImageDataURL converts stored image bytes into a data: URL the frontend
// can drop straight into an <img> tag. Returns nil for empty input so the
// JSON field serializes as null, which the UI treats as "no image".
func ImageDataURL(data []byte) *string {
	if len(data) == 0 {
		return nil
	}
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	return &url
}

// NormalizeEmail lowercases and trims an email address so lookups and
// uniqueness checks are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
