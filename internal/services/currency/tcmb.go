package currency

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mark-assistant-go/internal/config"
	"github.com/sirupsen/logrus"
)

// Rates holds the banknote selling rates extracted from the TCMB feed
type Rates struct {
	USD string
	EUR string
}

// Client fetches daily exchange rates from the TCMB today.xml feed
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new TCMB currency client
func NewClient(cfg *config.ProviderConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// tcmbDocument mirrors the structure of kurlar/today.xml
type tcmbDocument struct {
	XMLName    xml.Name       `xml:"Tarih_Date"`
	Currencies []tcmbCurrency `xml:"Currency"`
}

type tcmbCurrency struct {
	Code            string `xml:"CurrencyCode,attr"`
	BanknoteSelling string `xml:"BanknoteSelling"`
}

// FetchRates fetches and parses the daily rate document
func (c *Client) FetchRates(ctx context.Context) (*Rates, error) {
	url := c.baseURL + "/kurlar/today.xml"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate feed: %w", err)
	}

	var doc tcmbDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rate feed: %w", err)
	}

	rates := &Rates{}
	for _, cur := range doc.Currencies {
		switch cur.Code {
		case "USD":
			rates.USD = strings.TrimSpace(cur.BanknoteSelling)
		case "EUR":
			rates.EUR = strings.TrimSpace(cur.BanknoteSelling)
		}
	}

	if rates.USD == "" || rates.EUR == "" {
		return nil, fmt.Errorf("rate feed missing USD or EUR entries")
	}

	c.logger.WithFields(logrus.Fields{
		"usd": rates.USD,
		"eur": rates.EUR,
	}).Debug("Fetched currency rates")

	return rates, nil
}
