package video

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"time"
)

const (
	defaultPexelsURL = "https://api.pexels.com/videos/search"
	searchTimeout    = 30 * time.Second
	downloadTimeout  = 60 * time.Second
)

// StockClient queries the Pexels video search API. With no API key every
// search returns empty without touching the network.
type StockClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewStockClient builds a client; an empty key produces a disabled client.
func NewStockClient(apiKey string) *StockClient {
	return &StockClient{
		apiKey:     apiKey,
		baseURL:    defaultPexelsURL,
		httpClient: &http.Client{Timeout: downloadTimeout},
	}
}

// Enabled reports whether real searches will be performed.
func (c *StockClient) Enabled() bool {
	return c.apiKey != ""
}

type pexelsVideoFile struct {
	Width int    `json:"width"`
	Link  string `json:"link"`
}

type pexelsResponse struct {
	Videos []struct {
		VideoFiles []pexelsVideoFile `json:"video_files"`
	} `json:"videos"`
}

// Search returns one download URL per candidate video for the query,
// choosing the smallest-width encode of each.
func (c *StockClient) Search(ctx context.Context, query string) ([]string, error) {
	if !c.Enabled() {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "5")
	params.Set("orientation", "portrait")
	params.Set("size", "medium")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stock search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stock search: status %d", resp.StatusCode)
	}

	var payload pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("stock search: decode: %w", err)
	}

	var urls []string
	for _, v := range payload.Videos {
		files := append([]pexelsVideoFile(nil), v.VideoFiles...)
		sort.Slice(files, func(i, j int) bool { return files[i].Width < files[j].Width })
		if len(files) > 0 {
			urls = append(urls, files[0].Link)
		}
	}
	return urls, nil
}

// Download streams the clip at srcURL to destPath.
func (c *StockClient) Download(ctx context.Context, srcURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download: status %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}
