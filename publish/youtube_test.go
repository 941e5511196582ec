package publish

import (
	"context"
	"strings"
	"testing"

	"roboshorts/config"
	"roboshorts/types"
)

func TestPublishSkipsWithMissingCredentials(t *testing.T) {
	cases := []struct {
		name  string
		creds config.YouTubeCredentials
	}{
		{"all missing", config.YouTubeCredentials{}},
		{"no client id", config.YouTubeCredentials{ClientSecret: "s", RefreshToken: "r"}},
		{"no client secret", config.YouTubeCredentials{ClientID: "i", RefreshToken: "r"}},
		{"no refresh token", config.YouTubeCredentials{ClientID: "i", ClientSecret: "s"}},
	}

	res := types.RenderResult{
		// Nonexistent path: a real upload attempt would fail opening it, so
		// a clean skip proves no upload was started.
		VideoPath: "/nonexistent/out.mp4",
		Title:     "t",
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pub := NewPublisher(tc.creds)
			got, err := pub.Publish(context.Background(), res)
			if err != nil {
				t.Fatalf("skip path must not fail: %v", err)
			}
			if !got.Skipped || got.VideoID != "" {
				t.Errorf("expected a skipped result, got %+v", got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 200)
	if got := truncate(long, config.MaxTitleLength); len(got) != config.MaxTitleLength {
		t.Errorf("got %d chars, want %d", len(got), config.MaxTitleLength)
	}
	if got := truncate("short", 95); got != "short" {
		t.Errorf("short strings must pass through, got %q", got)
	}
	if got := truncate("héllo wörld", 5); got != "héllo" {
		t.Errorf("truncate must be rune-safe, got %q", got)
	}
}
