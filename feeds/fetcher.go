package feeds

import (
	"fmt"

	"roboshorts/types"

	"github.com/mmcdole/gofeed"
)

// FetchFeed retrieves and parses an RSS/Atom feed, returning up to maxCount
// entries as news items.
func FetchFeed(parser *gofeed.Parser, feedURL string, maxCount int) ([]types.NewsItem, error) {
	feed, err := parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := min(len(feed.Items), maxCount)
	items := make([]types.NewsItem, 0, count)

	for i := 0; i < count; i++ {
		entry := feed.Items[i]
		items = append(items, types.NewsItem{
			Title: entry.Title,
			Link:  entry.Link,
		})
	}

	return items, nil
}
