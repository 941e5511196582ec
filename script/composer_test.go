package script

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"roboshorts/config"
)

func TestComposePlaceholderWithoutKey(t *testing.T) {
	comp := NewComposer(config.Config{OpenRouterModel: "openai/gpt-4o-mini"})

	got, err := comp.Compose(context.Background(), testItem, "")
	if err != nil {
		t.Fatalf("placeholder compose failed: %v", err)
	}

	if comp.client != nil {
		t.Fatal("composer without a key must not hold an API client")
	}
	if got.Title == "" || got.Body == "" || len(got.Tags) == 0 {
		t.Errorf("placeholder script has empty fields: %+v", got)
	}
	if !strings.Contains(got.Body, testItem.Title) {
		t.Errorf("placeholder body should embed the prompt, got %q", got.Body)
	}
}

func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "upstream unhappy", status)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testComposer(srvURL string) *Composer {
	return NewComposer(config.Config{
		OpenRouterKey:     "test-key",
		OpenRouterBaseURL: srvURL,
		OpenRouterModel:   "openai/gpt-4o-mini",
	})
}

func TestComposeParsesEmbeddedJSON(t *testing.T) {
	content := `blah {"title":"T","body":"B","tags":"a,b"} blah`
	srv := chatServer(t, http.StatusOK, content)

	got, err := testComposer(srv.URL).Compose(context.Background(), testItem, "")
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if got.Title != "T" || got.Body != "B" || len(got.Tags) != 2 {
		t.Errorf("unexpected script: %+v", got)
	}
}

func TestComposeTransportErrorPropagates(t *testing.T) {
	srv := chatServer(t, http.StatusInternalServerError, "")

	_, err := testComposer(srv.URL).Compose(context.Background(), testItem, "")
	if err == nil {
		t.Fatal("expected a transport error to propagate")
	}
}

func TestComposeRecoversUnparseableResponse(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "no json here at all")

	got, err := testComposer(srv.URL).Compose(context.Background(), testItem, "")
	if err != nil {
		t.Fatalf("parse failures must be recovered locally, got %v", err)
	}
	if got.Title != testItem.Title || got.Body != "no json here at all" {
		t.Errorf("unexpected fallback script: %+v", got)
	}
}

func TestComposeStalledEndpointFails(t *testing.T) {
	stalled := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect and
		// cancels the request context; otherwise Close deadlocks in cleanup.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	t.Cleanup(stalled.Close)

	comp := &Composer{
		client: newLLMClient("test-key", stalled.URL, 150*time.Millisecond),
		model:  "openai/gpt-4o-mini",
	}

	done := make(chan error, 1)
	go func() {
		_, err := comp.Compose(context.Background(), testItem, "")
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected a stalled endpoint to surface as a call failure")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("compose hung on a stalled endpoint; client timeout not applied")
	}
}

func TestBuildPromptIncludesExcerpt(t *testing.T) {
	prompt := buildPrompt(testItem, "robots are neat")

	for _, want := range []string{testItem.Title, testItem.Link, "robots are neat", "Compose now."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	bare := buildPrompt(testItem, "")
	if strings.Contains(bare, "excerpt") {
		t.Errorf("prompt without excerpt should omit the excerpt line:\n%s", bare)
	}
}
