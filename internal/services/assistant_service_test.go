package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assistantServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "merchant-1", req["merchantId"])
		assert.NotEmpty(t, req["prompt"])

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newAssistant(t *testing.T, url string) AssistantService {
	t.Helper()
	return NewAssistantService(url, 5*time.Second, newTestLogger(t))
}

func TestAssistantQueryAnswerVariant(t *testing.T) {
	server := assistantServer(t, http.StatusOK, `{
		"success": true,
		"answer": "Points never expire.",
		"sources": [{"title": "FAQ", "url": "https://example.com/faq", "score": 0.92}]
	}`)

	answer, err := newAssistant(t, server.URL).Query(context.Background(), "merchant-1", "do points expire?")
	require.NoError(t, err)
	assert.Equal(t, "Points never expire.", answer.Answer)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "FAQ", answer.Sources[0].Title)
}

func TestAssistantQuerySummaryVariant(t *testing.T) {
	server := assistantServer(t, http.StatusOK, `{
		"summary": "Rewards can be paused at any time.",
		"metadata": {"model": "kb-v2"}
	}`)

	answer, err := newAssistant(t, server.URL).Query(context.Background(), "merchant-1", "can I pause a reward?")
	require.NoError(t, err)
	assert.Equal(t, "Rewards can be paused at any time.", answer.Answer)
	assert.Equal(t, "kb-v2", answer.Metadata["model"])
}

func TestAssistantQueryAnswerWinsOverSummary(t *testing.T) {
	server := assistantServer(t, http.StatusOK, `{
		"answer": "The full answer.",
		"summary": "The short version."
	}`)

	answer, err := newAssistant(t, server.URL).Query(context.Background(), "merchant-1", "anything")
	require.NoError(t, err)
	assert.Equal(t, "The full answer.", answer.Answer)
}

func TestAssistantQueryBareAnswerWithoutSuccessFlag(t *testing.T) {
	server := assistantServer(t, http.StatusOK, `{"answer": "Yes."}`)

	answer, err := newAssistant(t, server.URL).Query(context.Background(), "merchant-1", "anything")
	require.NoError(t, err)
	assert.Equal(t, "Yes.", answer.Answer)
}

func TestAssistantQueryReportedFailure(t *testing.T) {
	server := assistantServer(t, http.StatusOK, `{"success": false, "error": "knowledge base is reindexing"}`)

	_, err := newAssistant(t, server.URL).Query(context.Background(), "merchant-1", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "knowledge base is reindexing")
}

func TestAssistantQueryFailureWithoutMessage(t *testing.T) {
	server := assistantServer(t, http.StatusOK, `{"success": false}`)

	_, err := newAssistant(t, server.URL).Query(context.Background(), "merchant-1", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assistant reported failure")
}

func TestAssistantQueryUnknownShape(t *testing.T) {
	server := assistantServer(t, http.StatusOK, `{"result": "something unexpected"}`)

	_, err := newAssistant(t, server.URL).Query(context.Background(), "merchant-1", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not understand assistant response")
}

func TestAssistantQueryMalformedJSON(t *testing.T) {
	server := assistantServer(t, http.StatusOK, `not json at all`)

	_, err := newAssistant(t, server.URL).Query(context.Background(), "merchant-1", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not understand assistant response")
}

func TestAssistantQueryNon200(t *testing.T) {
	server := assistantServer(t, http.StatusBadGateway, `{"error": "upstream"}`)

	_, err := newAssistant(t, server.URL).Query(context.Background(), "merchant-1", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestAssistantQueryUnreachableEndpoint(t *testing.T) {
	_, err := newAssistant(t, "http://127.0.0.1:1/query").Query(context.Background(), "merchant-1", "anything")
	assert.Error(t, err)
}
