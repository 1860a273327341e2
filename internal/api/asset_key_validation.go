package api

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Image extensions the asset view endpoint will sign URLs for.
var allowedAssetExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

const maxAssetObjectKeyLen = 200

// isValidUserAssetObjectKey reports whether key names an image object inside
// the caller's own asset prefix. Rejecting traversal sequences and foreign
// prefixes here keeps the presign endpoint from becoming an open redirect
// into the bucket.
func isValidUserAssetObjectKey(userID uint, key string) bool {
	if key == "" || !utf8.ValidString(key) || len(key) > maxAssetObjectKeyLen {
		return false
	}
	if !strings.HasPrefix(key, fmt.Sprintf("user-assets/%d/", userID)) {
		return false
	}
	if strings.Contains(key, "..") || strings.Contains(key, "\\") || strings.Contains(key, "//") {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(key))
	for _, ext := range allowedAssetExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
