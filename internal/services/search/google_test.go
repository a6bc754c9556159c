package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark-assistant-go/internal/config"
	"github.com/sirupsen/logrus"
)

const samplePage = `<html><body>
<a href="/url?q=https://example.com/one&amp;sa=U">one</a>
<a href="/url?q=https://example.com/one&amp;sa=U">dup</a>
<a href="/url?q=https://support.google.com/websearch&amp;sa=U">nav</a>
<a href="/url?q=https://haber.example.org/iki&amp;sa=U">two</a>
<a href="/url?q=https://example.net/uc&amp;sa=U">three</a>
<a href="/url?q=https://example.net/dort&amp;sa=U">four</a>
</body></html>`

func newTestClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(&config.ProviderConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}, logger)
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "hava durumu" {
			t.Errorf("query = %q, want %q", got, "hava durumu")
		}
		if got := r.URL.Query().Get("hl"); got != "tr" {
			t.Errorf("hl = %q, want %q", got, "tr")
		}
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).Search(context.Background(), "hava durumu", 3, "tr")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := []string{
		"https://example.com/one",
		"https://haber.example.org/iki",
		"https://example.net/uc",
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d: %v", len(results), len(want), results)
	}
	for i, w := range want {
		if results[i] != w {
			t.Errorf("result %d = %q, want %q", i, results[i], w)
		}
	}
}

func TestSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>no links here</body></html>`))
	}))
	defer server.Close()

	results, err := newTestClient(server.URL).Search(context.Background(), "x", 3, "tr")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Search(context.Background(), "x", 3, "tr"); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestExtractResultURLsSkipsRelativeLinks(t *testing.T) {
	page := `<a href="/url?q=/relative/path&amp;sa=U">rel</a><a href="/url?q=https://ok.example&amp;sa=U">ok</a>`
	results := extractResultURLs(page, 3)
	if len(results) != 1 || results[0] != "https://ok.example" {
		t.Fatalf("results = %v, want only https://ok.example", results)
	}
}
