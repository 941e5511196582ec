package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"roboshorts/publish"
	"roboshorts/types"
)

type fakeFetcher struct {
	items []types.NewsItem
}

func (f *fakeFetcher) Fetch(limit int) []types.NewsItem {
	if limit < len(f.items) {
		return f.items[:limit]
	}
	return f.items
}

type fakeComposer struct {
	failFor map[string]bool
	calls   []string
}

func (f *fakeComposer) Compose(_ context.Context, item types.NewsItem, _ string) (types.Script, error) {
	f.calls = append(f.calls, item.Title)
	if f.failFor[item.Title] {
		return types.Script{}, errors.New("llm down")
	}
	return types.Script{Title: item.Title, Body: "body"}, nil
}

type fakeRenderer struct {
	failFor map[string]bool
	calls   []string
}

func (f *fakeRenderer) Render(_ context.Context, item types.NewsItem, script types.Script) (types.RenderResult, error) {
	f.calls = append(f.calls, item.Title)
	if f.failFor[item.Title] {
		return types.RenderResult{}, errors.New("no footage")
	}
	return types.RenderResult{VideoPath: "/tmp/" + item.Title + ".mp4", Title: script.Title}, nil
}

type fakePublisher struct {
	calls []string
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, res types.RenderResult) (publish.Result, error) {
	f.calls = append(f.calls, res.Title)
	if f.err != nil {
		return publish.Result{}, f.err
	}
	return publish.Result{VideoID: "vid-" + res.Title}, nil
}

type fakeArchiver struct {
	calls []string
	err   error
}

func (f *fakeArchiver) Store(_ context.Context, item types.NewsItem, _ types.RenderResult) error {
	f.calls = append(f.calls, item.Title)
	return f.err
}

func newsItems(titles ...string) []types.NewsItem {
	items := make([]types.NewsItem, 0, len(titles))
	for _, t := range titles {
		items = append(items, types.NewsItem{Title: t, Link: "https://example.com/" + t})
	}
	return items
}

func testRunner(items []types.NewsItem) (*Runner, *fakeComposer, *fakeRenderer, *fakePublisher) {
	comp := &fakeComposer{failFor: map[string]bool{}}
	rend := &fakeRenderer{failFor: map[string]bool{}}
	pub := &fakePublisher{}
	r := &Runner{
		Feeds:     &fakeFetcher{items: items},
		Scripts:   comp,
		Video:     rend,
		Publisher: pub,
	}
	return r, comp, rend, pub
}

func TestRunNoItems(t *testing.T) {
	r, comp, _, _ := testRunner(nil)
	if err := r.Run(context.Background(), 3); err != nil {
		t.Fatalf("empty run must succeed: %v", err)
	}
	if len(comp.calls) != 0 {
		t.Errorf("no scripts should be composed, got %d", len(comp.calls))
	}
}

func TestRunProcessesAllItems(t *testing.T) {
	r, comp, rend, pub := testRunner(newsItems("a", "b", "c"))
	if err := r.Run(context.Background(), 3); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(comp.calls) != 3 || len(rend.calls) != 3 || len(pub.calls) != 3 {
		t.Errorf("all stages must see all items, got compose=%d render=%d publish=%d",
			len(comp.calls), len(rend.calls), len(pub.calls))
	}
}

func TestRunSurvivesSingleItemFailure(t *testing.T) {
	r, comp, rend, pub := testRunner(newsItems("a", "b", "c"))
	comp.failFor["b"] = true

	if err := r.Run(context.Background(), 3); err != nil {
		t.Fatalf("partial failure must not fail the run: %v", err)
	}
	if len(rend.calls) != 2 {
		t.Errorf("failed item must not reach the renderer, got %v", rend.calls)
	}
	if len(pub.calls) != 2 {
		t.Errorf("failed item must not reach the publisher, got %v", pub.calls)
	}
}

func TestRunFailsWhenEveryItemFails(t *testing.T) {
	r, _, rend, _ := testRunner(newsItems("a", "b"))
	rend.failFor["a"] = true
	rend.failFor["b"] = true

	if err := r.Run(context.Background(), 2); err == nil {
		t.Fatal("expected an error when every item fails")
	}
}

func TestRunArchiveFailureIsNonFatal(t *testing.T) {
	r, _, _, _ := testRunner(newsItems("a"))
	arch := &fakeArchiver{err: errors.New("bucket gone")}
	r.Archiver = arch

	if err := r.Run(context.Background(), 1); err != nil {
		t.Fatalf("archive failure must not fail the run: %v", err)
	}
	if len(arch.calls) != 1 {
		t.Errorf("archiver must be called once, got %d", len(arch.calls))
	}
}

func TestRunUsesEnrichment(t *testing.T) {
	r, _, _, _ := testRunner(newsItems("a"))
	var enriched []string
	r.Enrich = func(item types.NewsItem) string {
		enriched = append(enriched, item.Title)
		return "extra context"
	}
	if err := r.Run(context.Background(), 1); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(enriched) != 1 || enriched[0] != "a" {
		t.Errorf("enrichment must run per item, got %v", enriched)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	r, comp, _, _ := testRunner(newsItems("a", "b"))
	// Any positive delay forces the context check between items. Large enough
	// that the sleep timer cannot race the already-cancelled context in
	// sleepCtx's select; the closed Done channel returns immediately.
	r.Delay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The first item still runs; the cancelled context is observed at the
	// inter-item pause.
	err := r.Run(ctx, 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(comp.calls) != 1 {
		t.Errorf("only the first item should have been processed, got %v", comp.calls)
	}
}
