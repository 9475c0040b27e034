package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"medilink-backend/config"
	"medilink-backend/models"
)

const defaultUpstreamReply = "I could not generate a response."

// UpstreamService forwards chat messages to an external assistant.
type UpstreamService struct {
	url        string
	httpClient *http.Client
}

func NewUpstreamService(cfg config.UpstreamConfig) *UpstreamService {
	return &UpstreamService{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Enabled reports whether an upstream URL is configured
func (s *UpstreamService) Enabled() bool {
	return s != nil && s.url != ""
}

// GenerateReply posts the message upstream and extracts its reply text.
func (s *UpstreamService) GenerateReply(ctx context.Context, message string) (*models.ChatResponse, error) {
	jsonData, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstreamFailed, resp.StatusCode, string(body))
	}

	// A body that is not a JSON object still yields the default reply.
	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		data = map[string]interface{}{}
	}

	reply := defaultUpstreamReply
	for _, key := range []string{"reply", "text", "response"} {
		if text, ok := data[key].(string); ok && text != "" {
			reply = text
			break
		}
	}

	return &models.ChatResponse{
		Reply:       reply,
		Suggestions: []models.Suggestion{},
		Source:      models.SourceUpstream,
		Raw:         data,
	}, nil
}
