package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mark-assistant-go/internal/config"
	"github.com/mark-assistant-go/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrNoAPIKey is returned before any network call when the provider
// credential is not configured
var ErrNoAPIKey = fmt.Errorf("ai: api key not configured")

// Service represents the generative-text provider
type Service interface {
	GetResponse(ctx context.Context, messages []models.Message) (string, error)
	HasCredentials() bool
}

// GroqAI implements Service against an OpenAI-compatible chat
// completions endpoint
type GroqAI struct {
	config     *config.AIConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewGroqAI creates a new generative-text client
func NewGroqAI(cfg *config.AIConfig, logger *logrus.Logger) Service {
	logger.WithFields(logrus.Fields{
		"baseURL": cfg.BaseURL,
		"model":   cfg.Model,
		"hasKey":  cfg.APIKey != "",
	}).Info("AI service initialized")

	return &GroqAI{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// HasCredentials reports whether an API key is configured
func (s *GroqAI) HasCredentials() bool {
	return strings.TrimSpace(s.config.APIKey) != ""
}

// GetResponse sends the message list to the chat completions endpoint
// and returns the completion text. A failed call is not retried; the
// caller degrades to its fallback reply.
func (s *GroqAI) GetResponse(ctx context.Context, messages []models.Message) (string, error) {
	if !s.HasCredentials() {
		return "", ErrNoAPIKey
	}

	reqBody := map[string]interface{}{
		"model":       s.config.Model,
		"messages":    messages,
		"temperature": s.config.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/chat/completions", strings.TrimSuffix(s.config.BaseURL, "/"))
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.config.APIKey))

	s.logger.WithFields(logrus.Fields{
		"model":    s.config.Model,
		"messages": len(messages),
	}).Debug("Sending AI request")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("AI request failed")
		return "", fmt.Errorf("AI request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Error.Message != "" {
		return "", fmt.Errorf("AI error: %s", result.Error.Message)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from AI")
	}

	return result.Choices[0].Message.Content, nil
}
