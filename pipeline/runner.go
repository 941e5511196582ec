package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"roboshorts/publish"
	"roboshorts/types"
)

// Fetcher returns up to limit unique news items.
type Fetcher interface {
	Fetch(limit int) []types.NewsItem
}

// ScriptComposer turns a news item (plus optional article excerpt) into a
// voiceover script.
type ScriptComposer interface {
	Compose(ctx context.Context, item types.NewsItem, excerpt string) (types.Script, error)
}

// Renderer composes the final vertical video for one scripted item.
type Renderer interface {
	Render(ctx context.Context, item types.NewsItem, script types.Script) (types.RenderResult, error)
}

// Publisher uploads a rendered video, or skips when unconfigured.
type Publisher interface {
	Publish(ctx context.Context, res types.RenderResult) (publish.Result, error)
}

// Archiver stores run artifacts after a successful publish step.
type Archiver interface {
	Store(ctx context.Context, item types.NewsItem, res types.RenderResult) error
}

// Runner drives the fetch, script, render, publish cycle for a batch of
// news items. Each item is processed independently so one bad article
// cannot sink the whole run.
type Runner struct {
	Feeds     Fetcher
	Scripts   ScriptComposer
	Video     Renderer
	Publisher Publisher

	// Archiver is optional; nil disables artifact archival.
	Archiver Archiver

	// Enrich fetches extra article text for the script prompt. Optional.
	Enrich func(item types.NewsItem) string

	// Delay between items, to stay polite with upstream APIs.
	Delay time.Duration
}

// Run processes up to limit items end to end. It returns an error only
// when every item failed; partial failures are logged and survived.
func (r *Runner) Run(ctx context.Context, limit int) error {
	items := r.Feeds.Fetch(limit)
	if len(items) == 0 {
		log.Println("No items found.")
		return nil
	}

	failed := 0
	for i, item := range items {
		log.Println(bannerStyle.Render(fmt.Sprintf("=== VIDEO %d/%d ===", i+1, len(items))))
		log.Println(infoStyle.Render("Item: " + item.Title))

		if err := r.processOne(ctx, item); err != nil {
			failed++
			log.Println(errorStyle.Render(fmt.Sprintf("Item failed: %v", err)))
		} else {
			log.Println(successStyle.Render("Item done."))
		}

		if i < len(items)-1 {
			if err := sleepCtx(ctx, r.Delay); err != nil {
				return err
			}
		}
	}

	if failed == len(items) {
		return fmt.Errorf("all %d items failed", len(items))
	}
	log.Printf("Run complete: %d/%d items succeeded", len(items)-failed, len(items))
	return nil
}

func (r *Runner) processOne(ctx context.Context, item types.NewsItem) error {
	var excerpt string
	if r.Enrich != nil {
		excerpt = r.Enrich(item)
	}

	script, err := r.Scripts.Compose(ctx, item, excerpt)
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}

	res, err := r.Video.Render(ctx, item, script)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	pub, err := r.Publisher.Publish(ctx, res)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	if pub.VideoID != "" {
		log.Printf("Published video %s", pub.VideoID)
	}

	if r.Archiver != nil {
		if err := r.Archiver.Store(ctx, item, res); err != nil {
			// Archival is best effort; the video is already out.
			log.Printf("Archive failed: %v", err)
		}
	}
	return nil
}

// sleepCtx pauses for d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
