package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"taployalty/internal/models"
	"taployalty/pkg/logger"
)

type AssistantService interface {
	Query(ctx context.Context, merchantID, prompt string) (*models.AssistantAnswer, error)
}

type assistantService struct {
	client           *http.Client
	knowledgeBaseURL string
	logger           *logger.Logger
}

func NewAssistantService(knowledgeBaseURL string, timeout time.Duration, log *logger.Logger) AssistantService {
	return &assistantService{
		client:           &http.Client{Timeout: timeout},
		knowledgeBaseURL: knowledgeBaseURL,
		logger:           log,
	}
}

// assistantResponse is the union of every shape the knowledge-base function
// has been observed to return. Answer and Summary are alternatives; Success
// may or may not be present.
type assistantResponse struct {
	Success  *bool                  `json:"success,omitempty"`
	Answer   string                 `json:"answer,omitempty"`
	Summary  string                 `json:"summary,omitempty"`
	Sources  []models.AnswerSource  `json:"sources,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// Query asks the knowledge-base function and normalizes whichever response
// variant comes back. A response carrying neither an answer nor a summary
// is treated as a failure rather than returned empty.
func (s *assistantService) Query(ctx context.Context, merchantID, prompt string) (*models.AssistantAnswer, error) {
	payload, err := json.Marshal(map[string]string{
		"merchantId": merchantID,
		"prompt":     prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode assistant request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.knowledgeBaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read assistant response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.WithFields(map[string]interface{}{
			"merchant_id": merchantID,
			"status_code": resp.StatusCode,
		}).Warn("assistant endpoint returned non-200")
		return nil, fmt.Errorf("assistant endpoint returned status %d", resp.StatusCode)
	}

	var decoded assistantResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("could not understand assistant response: %w", err)
	}

	if decoded.Success != nil && !*decoded.Success {
		if decoded.Error != "" {
			return nil, fmt.Errorf("assistant error: %s", decoded.Error)
		}
		return nil, fmt.Errorf("assistant reported failure")
	}

	answer := decoded.Answer
	if answer == "" {
		answer = decoded.Summary
	}
	if answer == "" {
		return nil, fmt.Errorf("could not understand assistant response")
	}

	return &models.AssistantAnswer{
		Answer:   answer,
		Sources:  decoded.Sources,
		Metadata: decoded.Metadata,
	}, nil
}
