package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"roboshorts/config"
	"roboshorts/types"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrNoFootage means no stock clip could be downloaded and no bundled
// fallback asset exists. It is the only fatal condition in a render.
var ErrNoFootage = errors.New("no b-roll available (stock key missing and no fallback asset)")

// defaultKeywords drive the stock-footage searches, in priority order.
var defaultKeywords = []string{"robot", "robot arm", "automation", "factory", "ai lab"}

// Composer assembles one vertical video per news item: b-roll background,
// burned-in captions, CTA footer, optional music, plus a thumbnail frame.
type Composer struct {
	cfg      config.Config
	stock    *StockClient
	keywords []string
}

// NewComposer builds a composer from the loaded configuration.
func NewComposer(cfg config.Config) *Composer {
	return &Composer{
		cfg:      cfg,
		stock:    NewStockClient(cfg.PexelsKey),
		keywords: defaultKeywords,
	}
}

// Render produces the video and thumbnail files for one item. Every
// sub-step except b-roll acquisition degrades gracefully: missing music or
// thumbnail trouble logs and continues, only ErrNoFootage aborts.
func (c *Composer) Render(ctx context.Context, item types.NewsItem, script types.Script) (types.RenderResult, error) {
	title := firstNonEmpty(script.Title, item.Title)
	body := firstNonEmpty(script.Body, item.Title)
	tags := script.Tags
	if len(tags) == 0 {
		tags = []string{"robotics", "ai", "news"}
	}

	clips, cleanup, err := c.gatherBroll(ctx)
	if err != nil {
		return types.RenderResult{}, err
	}
	defer cleanup()

	durations, usable := planDurations(probeClips(clips), config.TargetDuration, config.MinClipSeconds)

	lines := wrapCaption(body, maxCaptionChars(config.CaptionFontSize, safeWidth()))
	captions := layoutCaptions(lines, usable)
	footer := captionLine{
		Text:  "More at " + c.cfg.StoreURL,
		Start: math.Max(0, usable-config.CTASeconds),
		End:   usable,
	}

	assPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s_captions.ass", uuid.NewString()))
	if err := writeASS(assPath, captions, footer); err != nil {
		return types.RenderResult{}, fmt.Errorf("failed to generate captions: %w", err)
	}
	defer os.Remove(assPath)

	ts := time.Now().UTC().Format("20060102_150405")
	outPath := filepath.Join(c.cfg.OutputDir, "out_"+ts+".mp4")

	withMusic := false
	if _, statErr := os.Stat(c.cfg.MusicPath); statErr == nil {
		withMusic = true
	}

	if err := c.renderOnce(clips, durations, usable, assPath, outPath, withMusic); err != nil {
		if !withMusic {
			return types.RenderResult{}, err
		}
		log.Printf("Music mix failed, retrying silent: %v", err)
		if err := c.renderOnce(clips, durations, usable, assPath, outPath, false); err != nil {
			return types.RenderResult{}, err
		}
	}

	thumbPath := c.saveThumbnail(outPath, filepath.Join(c.cfg.OutputDir, "thumb_"+ts+".jpg"), usable)

	description := fmt.Sprintf("%s\n\nSource: %s\n\nMore: %s", body, item.Link, c.cfg.StoreURL)

	return types.RenderResult{
		VideoPath:     outPath,
		ThumbnailPath: thumbPath,
		Title:         title,
		Description:   description,
		Tags:          tags,
	}, nil
}

// gatherBroll downloads up to MaxBrollClips stock clips, one per keyword.
// With no results it falls back to the bundled asset; with nothing at all
// it reports ErrNoFootage. cleanup removes only the downloaded temp files.
func (c *Composer) gatherBroll(ctx context.Context) ([]string, func(), error) {
	var tmps []string
	cleanup := func() {
		for _, p := range tmps {
			os.Remove(p)
		}
	}

	var paths []string
	if c.stock.Enabled() {
		for _, keyword := range c.keywords {
			urls, err := c.stock.Search(ctx, keyword)
			if err != nil {
				log.Printf("stock search %q failed: %v", keyword, err)
				continue
			}
			if len(urls) == 0 {
				continue
			}

			dest := filepath.Join(os.TempDir(), fmt.Sprintf("broll_%s.mp4", uuid.NewString()))
			if err := c.stock.Download(ctx, urls[0], dest); err != nil {
				log.Printf("stock download for %q failed: %v", keyword, err)
				os.Remove(dest)
				continue
			}
			tmps = append(tmps, dest)
			paths = append(paths, dest)
			if len(paths) >= config.MaxBrollClips {
				break
			}
		}
	}

	if len(paths) == 0 {
		if _, err := os.Stat(c.cfg.FallbackClip); err == nil {
			paths = []string{c.cfg.FallbackClip}
		}
	}
	if len(paths) == 0 {
		cleanup()
		return nil, func() {}, ErrNoFootage
	}
	return paths, cleanup, nil
}

// renderOnce runs a single ffmpeg pass: per-clip scale/crop/trim, concat,
// caption burn-in, optional looped music at reduced volume, and export.
func (c *Composer) renderOnce(clips []string, durations []float64, usable float64, assPath, outPath string, withMusic bool) error {
	streams := make([]*ffmpeg.Stream, len(clips))
	for i, path := range clips {
		streams[i] = ffmpeg.Input(path, ffmpeg.KwArgs{"t": fmt.Sprintf("%.2f", durations[i])}).
			Filter("scale", ffmpeg.Args{fmt.Sprintf("-2:%d", config.VideoHeight)}).
			Filter("crop", ffmpeg.Args{fmt.Sprintf("%d:%d", config.VideoWidth, config.VideoHeight)})
	}

	background := streams[0]
	if len(streams) > 1 {
		background = ffmpeg.Concat(streams)
	}

	withSubs := background.Filter("ass", ffmpeg.Args{assPathForFFmpeg(assPath)})

	kwargs := ffmpeg.KwArgs{
		"c:v":     config.VideoCodec,
		"preset":  config.VideoPreset,
		"r":       config.FrameRate,
		"t":       fmt.Sprintf("%.2f", usable),
		"pix_fmt": "yuv420p",
	}

	var out *ffmpeg.Stream
	if withMusic {
		music := ffmpeg.Input(c.cfg.MusicPath, ffmpeg.KwArgs{"stream_loop": -1}).
			Filter("volume", ffmpeg.Args{fmt.Sprintf("%.2f", config.MusicVolume)})
		kwargs["c:a"] = config.AudioCodec
		kwargs["b:a"] = config.AudioBitrate
		out = ffmpeg.Output([]*ffmpeg.Stream{withSubs, music}, outPath, kwargs)
	} else {
		kwargs["an"] = ""
		out = withSubs.Output(outPath, kwargs)
	}

	if err := out.OverWriteOutput().Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

// saveThumbnail grabs a frame near the start of the rendered video and
// optimizes it. Returns the empty string when extraction fails; thumbnail
// trouble never fails the render.
func (c *Composer) saveThumbnail(videoPath, thumbPath string, usable float64) string {
	at := math.Min(0.5, math.Max(0.1, usable/10))

	err := ffmpeg.Input(videoPath, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.2f", at)}).
		Output(thumbPath, ffmpeg.KwArgs{"vframes": 1, "q:v": 2}).
		OverWriteOutput().Run()
	if err != nil {
		log.Printf("Thumbnail extraction failed: %v", err)
		return ""
	}

	if err := optimizeThumbnail(thumbPath); err != nil {
		log.Printf("Thumbnail optimize failed: %v", err)
	}
	return thumbPath
}

// planDurations assigns each clip its share of the target duration. Each
// clip gets min(actual length, share) where share is at least minShare;
// unknown lengths (<= 0) count as a full share since the encoder trims
// them anyway. The usable total never exceeds target.
func planDurations(actual []float64, target, minShare float64) ([]float64, float64) {
	if len(actual) == 0 {
		return nil, 0
	}

	share := target / float64(len(actual))
	if share < minShare {
		share = minShare
	}

	durations := make([]float64, len(actual))
	total := 0.0
	for i, d := range actual {
		if d <= 0 || d > share {
			d = share
		}
		durations[i] = d
		total += d
	}
	return durations, math.Min(total, target)
}

func probeClips(paths []string) []float64 {
	durations := make([]float64, len(paths))
	for i, path := range paths {
		d, err := probeDuration(path)
		if err != nil {
			log.Printf("probe failed for %s: %v", path, err)
			d = 0
		}
		durations[i] = d
	}
	return durations
}

func probeDuration(path string) (float64, error) {
	data, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, err
	}

	var probed struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(data), &probed); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(probed.Format.Duration, 64)
}

// assPathForFFmpeg converts a path to the form the ass filter expects
// (forward slashes, escaped colons).
func assPathForFFmpeg(path string) string {
	p := filepath.ToSlash(path)
	return strings.ReplaceAll(p, ":", "\\:")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
