package feeds

import (
	"log"
	"strings"
	"time"

	"roboshorts/types"

	readability "github.com/go-shiori/go-readability"
)

const (
	extractorTimeout = 30 * time.Second

	// maxExcerptRunes bounds the article text passed into the LLM prompt.
	maxExcerptRunes = 1200
)

// ArticleExcerpt fetches the linked article and returns readable plain text
// for prompt context. Any failure returns an empty excerpt; script
// generation works from the headline alone.
func ArticleExcerpt(item types.NewsItem) string {
	if item.Link == "" {
		return ""
	}

	article, err := readability.FromURL(item.Link, extractorTimeout)
	if err != nil {
		log.Printf("article extraction failed for %s: %v", item.Link, err)
		return ""
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		text = strings.TrimSpace(article.Excerpt)
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) > maxExcerptRunes {
		text = string(runes[:maxExcerptRunes]) + "..."
	}
	return text
}
