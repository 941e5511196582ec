package config

import (
	"os"
	"strings"
)

// YouTubeCredentials holds the OAuth2 refresh-token flow inputs. All three
// values are required for a real upload; anything less means the publish
// step runs in dry-run mode.
type YouTubeCredentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Configured reports whether every credential needed for an upload is set.
func (c YouTubeCredentials) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// Config carries every environment-derived setting. It is read once at
// startup and passed into component constructors so that fallback paths
// are selectable in tests without mutating the process environment.
type Config struct {
	// OpenRouter chat-completions access. Empty key = placeholder scripts.
	OpenRouterKey     string
	OpenRouterBaseURL string
	OpenRouterModel   string

	// Pexels stock-footage access. Empty key = bundled fallback clip only.
	PexelsKey string

	// StoreURL lands in the CTA footer and the video description.
	StoreURL string

	Feeds []string

	// Local assets; either may be absent.
	FallbackClip string
	MusicPath    string

	OutputDir string

	YouTube YouTubeCredentials

	// Optional S3 artifact archive. Empty bucket = archival skipped.
	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool
}

// Load reads configuration from the environment, applying defaults for
// everything that is optional.
func Load() Config {
	cfg := Config{
		OpenRouterKey:     strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterBaseURL: getenvDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OpenRouterModel:   getenvDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
		PexelsKey:         strings.TrimSpace(os.Getenv("PEXELS_API_KEY")),
		StoreURL:          getenvDefault("STORE_URL", "https://example.com"),
		Feeds:             DefaultFeeds,
		FallbackClip:      getenvDefault("FALLBACK_CLIP", "assets/fallback_stock.mp4"),
		MusicPath:         getenvDefault("MUSIC_PATH", "assets/music.mp3"),
		OutputDir:         getenvDefault("OUTPUT_DIR", "."),
		YouTube: YouTubeCredentials{
			ClientID:     strings.TrimSpace(os.Getenv("YT_CLIENT_ID")),
			ClientSecret: strings.TrimSpace(os.Getenv("YT_CLIENT_SECRET")),
			RefreshToken: strings.TrimSpace(os.Getenv("YT_REFRESH_TOKEN")),
		},
		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Prefix:       strings.Trim(strings.TrimSpace(os.Getenv("S3_PREFIX")), "/"),
		S3UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
