package config

import "time"

// Video output constants
const (
	// VideoWidth and VideoHeight define the 9:16 vertical canvas.
	VideoWidth  = 1080
	VideoHeight = 1920

	// TargetDuration is the hard cap for Shorts, in seconds.
	TargetDuration = 60.0

	// MinClipSeconds is the minimum share of the target each b-roll clip gets.
	MinClipSeconds = 8.0

	// MaxBrollClips caps how many stock clips are downloaded per video.
	MaxBrollClips = 2

	VideoCodec   = "libx264"
	AudioCodec   = "aac"
	AudioBitrate = "192k"
	VideoPreset  = "veryfast"
	FrameRate    = 30

	// MusicVolume scales the background track relative to its source level.
	MusicVolume = 0.22
)

// Caption layout constants
const (
	CaptionFontSize = 60
	FooterFontSize  = 40

	// SafeMarginX is the horizontal margin kept clear on each side of the
	// frame; captions wrap against VideoWidth minus both margins.
	SafeMarginX = 60

	// CaptionTopRatio positions the caption block from the top of the frame;
	// FooterBottomRatio positions the CTA from the top.
	CaptionTopRatio   = 0.14
	FooterBottomRatio = 0.92

	// CaptionLeadIn delays the first caption slightly past the video start.
	CaptionLeadIn = 0.3

	// MinCaptionSeconds is the shortest a caption stays on screen.
	MinCaptionSeconds = 0.9

	// MinCaptionSlots spreads short scripts over at least this many slots.
	MinCaptionSlots = 8

	// CaptionStride advances each caption at 90% of the previous one's
	// duration so lines overlap slightly instead of leaving dead air.
	CaptionStride = 0.9

	// CTASeconds is how long the footer shows at the end of the video.
	CTASeconds = 8.0
)

// Feed constants
const (
	// MaxEntriesPerFeed bounds how many entries are read from one feed.
	MaxEntriesPerFeed = 10
)

// DefaultFeeds lists the robotics news sources polled each run.
var DefaultFeeds = []string{
	"https://news.google.com/rss/search?q=robotics+OR+robot+arm+OR+autonomous+robots+when:1d&hl=en-GB&gl=GB&ceid=GB:en",
	"https://www.robotics247.com/rss",
	"https://spectrum.ieee.org/robotics/rss",
}

// Pipeline constants
const (
	// ItemDelay is the pause between items, purely to avoid API spikes.
	ItemDelay = 5 * time.Second
)

// YouTube constants
const (
	// YouTubeCategoryID for Science & Technology
	YouTubeCategoryID = "28"

	YouTubePrivacyStatus = "public"

	MaxTitleLength       = 95
	MaxDescriptionLength = 4900
)

// Thumbnail constants
const (
	// ThumbnailWidth is the width the extracted frame is resized to.
	ThumbnailWidth = 1080

	ThumbnailQuality = 85
)
