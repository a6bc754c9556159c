package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/mark-assistant-go/internal/config"
	"github.com/sirupsen/logrus"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Client fetches top result URLs from Google's HTML search page
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new search client
func NewClient(cfg *config.ProviderConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Result links appear as /url?q=<target>& in the result page markup
var resultLinkRe = regexp.MustCompile(`/url\?q=([^&"]+)`)

// Search returns up to count result URLs for the query, in page order
func (c *Client) Search(ctx context.Context, query string, count int, lang string) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", count+2))
	params.Set("hl", lang)

	reqURL := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", lang)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search page: %w", err)
	}

	results := extractResultURLs(string(body), count)

	c.logger.WithFields(logrus.Fields{
		"query":   query,
		"results": len(results),
	}).Debug("Search completed")

	return results, nil
}

func extractResultURLs(page string, count int) []string {
	var results []string
	seen := make(map[string]bool)

	for _, match := range resultLinkRe.FindAllStringSubmatch(page, -1) {
		target, err := url.QueryUnescape(match[1])
		if err != nil {
			continue
		}
		if !strings.HasPrefix(target, "http") {
			continue
		}
		// Skip Google's own navigation links
		if strings.Contains(target, "google.com") {
			continue
		}
		if seen[target] {
			continue
		}
		seen[target] = true
		results = append(results, target)
		if len(results) >= count {
			break
		}
	}

	return results
}
