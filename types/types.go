package types

// NewsItem is one deduplicated feed entry. The trimmed title is the
// uniqueness key across feeds.
type NewsItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Script is the voiceover script generated for a single news item.
type Script struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// RenderResult references the files produced for one item plus the
// metadata the publisher needs. The files stay on disk until the caller
// removes them.
type RenderResult struct {
	VideoPath     string   `json:"video_path"`
	ThumbnailPath string   `json:"thumbnail_path"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
}
