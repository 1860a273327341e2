package api

import (
	"strings"
	"testing"
)

func TestIsValidUserAssetObjectKey(t *testing.T) {
	cases := []struct {
		name   string
		userID uint
		key    string
		want   bool
	}{
		{"own png", 7, "user-assets/7/photo.png", true},
		{"own jpeg", 7, "user-assets/7/photo.jpeg", true},
		{"own webp", 7, "user-assets/7/photo.webp", true},
		{"empty", 7, "", false},
		{"other user prefix", 7, "user-assets/8/photo.png", false},
		{"traversal", 7, "user-assets/7/../8/photo.png", false},
		{"backslash", 7, `user-assets/7\photo.png`, false},
		{"double slash", 7, "user-assets/7//photo.png", false},
		{"wrong extension", 7, "user-assets/7/archive.zip", false},
		{"no prefix", 7, "photo.png", false},
		{"too long", 7, "user-assets/7/" + strings.Repeat("a", 200) + ".png", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isValidUserAssetObjectKey(tc.userID, tc.key); got != tc.want {
				t.Fatalf("isValidUserAssetObjectKey(%d, %q) = %v, want %v", tc.userID, tc.key, got, tc.want)
			}
		})
	}
}
