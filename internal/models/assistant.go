package models

// AssistantQueryRequest is a merchant question for the knowledge base.
type AssistantQueryRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

// AnswerSource points at a document the assistant grounded its answer on.
type AnswerSource struct {
	Title string  `json:"title,omitempty"`
	URL   string  `json:"url,omitempty"`
	Score float64 `json:"score,omitempty"`
}

// AssistantAnswer is the normalized answer regardless of which response
// variant the upstream function produced.
type AssistantAnswer struct {
	Answer   string                 `json:"answer"`
	Sources  []AnswerSource         `json:"sources,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
