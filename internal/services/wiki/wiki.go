package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mark-assistant-go/internal/config"
	"github.com/sirupsen/logrus"
)

// Client fetches short article summaries from the MediaWiki API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new encyclopedia client
func NewClient(cfg *config.ProviderConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type queryResponse struct {
	Query struct {
		Pages map[string]struct {
			PageID  int    `json:"pageid"`
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Summary returns a plain-text extract of up to sentences sentences for
// the given term. Titles are resolved through redirects but never
// auto-suggested to a different article.
func (c *Client) Summary(ctx context.Context, term string, sentences int) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts")
	params.Set("exsentences", fmt.Sprintf("%d", sentences))
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", term)

	reqURL := c.baseURL + "/w/api.php?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("wiki request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wiki returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read wiki response: %w", err)
	}

	var result queryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse wiki response: %w", err)
	}

	// Missing pages carry no extract, so an empty extract means no hit
	for _, page := range result.Query.Pages {
		if page.Extract == "" {
			continue
		}
		c.logger.WithField("title", page.Title).Debug("Wiki summary found")
		return strings.TrimSpace(page.Extract), nil
	}

	return "", fmt.Errorf("no article found for %q", term)
}
