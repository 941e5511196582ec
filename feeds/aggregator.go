package feeds

import (
	"log"
	"net/http"
	"strings"
	"time"

	"roboshorts/config"
	"roboshorts/types"

	"github.com/mmcdole/gofeed"
)

// feedTimeout bounds one feed fetch; a stalled endpoint counts as a failed
// feed and the remaining feeds are still consulted.
const feedTimeout = 30 * time.Second

// Aggregator polls a fixed list of feeds and returns deduplicated news items.
type Aggregator struct {
	Feeds  []string
	Parser *gofeed.Parser
}

// NewAggregator builds an aggregator over the given feed URLs.
func NewAggregator(feedURLs []string) *Aggregator {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: feedTimeout}
	return &Aggregator{
		Feeds:  feedURLs,
		Parser: parser,
	}
}

// Fetch collects entries across all feeds in order, deduplicates by trimmed
// title preserving first-seen order, and stops once limit unique items are
// found. A feed that fails to parse contributes nothing; the remaining feeds
// are still consulted.
func (a *Aggregator) Fetch(limit int) []types.NewsItem {
	if limit <= 0 {
		return nil
	}

	parser := a.Parser
	if parser == nil {
		parser = gofeed.NewParser()
		parser.Client = &http.Client{Timeout: feedTimeout}
	}

	seen := make(map[string]struct{})
	var uniq []types.NewsItem

	for _, feedURL := range a.Feeds {
		entries, err := FetchFeed(parser, feedURL, config.MaxEntriesPerFeed)
		if err != nil {
			log.Printf("feed %s skipped: %v", feedURL, err)
			continue
		}

		for _, item := range entries {
			key := strings.TrimSpace(item.Title)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			uniq = append(uniq, item)
			if len(uniq) >= limit {
				return uniq
			}
		}
	}

	return uniq
}
