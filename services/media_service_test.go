package services

import "testing"

func TestExtractPublicIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/rank_booking/winners/abc123.jpg", "rank_booking/winners/abc123"},
		{"https://res.cloudinary.com/demo/image/upload/rank_booking/proofs/xyz.png", "rank_booking/proofs/xyz"},
		{"https://res.cloudinary.com/demo/video/upload/v1/clips/match.mp4", "clips/match"},
		{"https://example.com/static/logo.png", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ExtractPublicIDFromURL(tc.url); got != tc.want {
			t.Errorf("ExtractPublicIDFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
