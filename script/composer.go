package script

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"roboshorts/config"
	"roboshorts/types"

	openai "github.com/sashabaranov/go-openai"
)

// systemPrompt fixes the tone, length, structure, and output shape of every
// generated voiceover.
const systemPrompt = "Write a 70-110 second YouTube Short voiceover about the news item.\n" +
	"Audience: curious teens & adults.\n" +
	"Style: clear, punchy, 2-sentence hook, then 3-4 crisp points, end with one-sentence takeaway.\n" +
	"NO clickbait. Mention the source topic naturally.\n" +
	"Return JSON with keys: title, body, tags (comma-separated up to 10)."

const (
	maxTokens   = 800
	temperature = 0.7

	// llmTimeout bounds one chat completion end to end; a stalled endpoint
	// surfaces as a call failure instead of hanging the run.
	llmTimeout = 90 * time.Second
)

var defaultTags = []string{"robotics", "ai", "news"}

// placeholderTags annotate scripts produced without an LLM key.
var placeholderTags = []string{"robotics", "ai", "technology"}

// Composer turns a news item into a voiceover script. Without an API key it
// produces a deterministic placeholder and never touches the network.
type Composer struct {
	client *openai.Client
	model  string
}

// NewComposer builds a composer from the loaded configuration.
func NewComposer(cfg config.Config) *Composer {
	c := &Composer{model: cfg.OpenRouterModel}
	if cfg.OpenRouterKey != "" {
		c.client = newLLMClient(cfg.OpenRouterKey, cfg.OpenRouterBaseURL, llmTimeout)
	}
	return c
}

func newLLMClient(key, baseURL string, timeout time.Duration) *openai.Client {
	clientCfg := openai.DefaultConfig(key)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}
	return openai.NewClientWithConfig(clientCfg)
}

// Compose builds the prompt for one item and asks the LLM for a script.
// A transport failure is returned to the caller; a response that fails to
// parse is recovered locally with a fallback script.
func (c *Composer) Compose(ctx context.Context, item types.NewsItem, excerpt string) (types.Script, error) {
	prompt := buildPrompt(item, excerpt)

	if c.client == nil {
		return types.Script{
			Title: "Robotics update",
			Body:  prompt + "\n(LLM key not set; placeholder script.)",
			Tags:  append([]string(nil), placeholderTags...),
		}, nil
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return types.Script{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return types.Script{}, errors.New("chat completion: empty choices")
	}

	return parseScript(item, resp.Choices[0].Message.Content), nil
}

func buildPrompt(item types.NewsItem, excerpt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "News headline: %s\nURL: %s\n", item.Title, item.Link)
	if excerpt != "" {
		fmt.Fprintf(&b, "Article excerpt: %s\n", excerpt)
	}
	b.WriteString("Compose now.")
	return b.String()
}
