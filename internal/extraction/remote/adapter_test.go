package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonhttp "requirement-extractor/internal/common/http"
	"requirement-extractor/internal/extraction"
	"requirement-extractor/internal/models"
)

func openAIServer(t *testing.T, status int, content string, calls *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		assert.Equal(t, chatCompletionsPath, r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultOpenAIModel, req.Model)
		assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
		assert.InDelta(t, DefaultTemperature, req.Temperature, 0.0001)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, SystemInstruction, req.Messages[0].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"message":"nope"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func newOpenAIAdapter(url string) *Adapter {
	return NewAdapter(NewOpenAICompleter(commonhttp.NewClient(0), url, "test-key", Options{}))
}

func TestAdapter_OpenAISuccess(t *testing.T) {
	server := openAIServer(t, http.StatusOK, "```json\n"+`{"appName":"Task Tracker","entities":["Task","Project"],"roles":["Manager","Member"],"features":["Create Tasks"]}`+"\n```", nil)

	result, err := newOpenAIAdapter(server.URL).Extract(context.Background(), "a task tracker")
	require.NoError(t, err)

	assert.Equal(t, "Task Tracker", result.AppName)
	assert.Equal(t, []string{"Task", "Project"}, result.Entities)
	assert.Equal(t, []string{"Manager", "Member"}, result.Roles)
	assert.Equal(t, []string{"Create Tasks"}, result.Features)
	assert.Equal(t, models.ModelRemote, result.Metadata.Model)
	assert.Equal(t, ProviderOpenAI, result.Metadata.Provider)
	assert.False(t, result.Metadata.ExtractedAt.IsZero())
}

func TestAdapter_OpenAIStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, extraction.ErrAuth},
		{http.StatusForbidden, extraction.ErrAuth},
		{http.StatusTooManyRequests, extraction.ErrRateLimited},
		{http.StatusInternalServerError, extraction.ErrRemoteUnavailable},
		{http.StatusBadGateway, extraction.ErrRemoteUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var calls int32
			server := openAIServer(t, tt.status, "", &calls)

			_, err := newOpenAIAdapter(server.URL).Extract(context.Background(), "anything")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestAdapter_OpenAINonJSONContent(t *testing.T) {
	server := openAIServer(t, http.StatusOK, "I think this app needs users.", nil)

	_, err := newOpenAIAdapter(server.URL).Extract(context.Background(), "anything")
	assert.True(t, errors.Is(err, extraction.ErrMalformedResponse))
}

func TestAdapter_OpenAIEmptyCompletion(t *testing.T) {
	server := openAIServer(t, http.StatusOK, "   ", nil)

	_, err := newOpenAIAdapter(server.URL).Extract(context.Background(), "anything")
	assert.True(t, errors.Is(err, extraction.ErrRemoteUnavailable))
}

func TestAdapter_OpenAINoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newOpenAIAdapter(server.URL).Extract(context.Background(), "anything")
	assert.True(t, errors.Is(err, extraction.ErrRemoteUnavailable))
}

func TestAdapter_Deadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newOpenAIAdapter(server.URL).Extract(ctx, "anything")
	assert.True(t, errors.Is(err, extraction.ErrRemoteUnavailable))
}

func anthropicServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(DefaultMaxTokens), body["max_tokens"])
		assert.NotNil(t, body["system"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "msg_test",
			"type":          "message",
			"role":          "assistant",
			"model":         DefaultAnthropicModel,
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"content":       []map[string]string{{"type": "text", "text": text}},
			"usage":         map[string]int{"input_tokens": 10, "output_tokens": 20},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAdapter_AnthropicSuccess(t *testing.T) {
	server := anthropicServer(t, http.StatusOK, `{"appName":"Clinic","entities":["Patient"],"roles":["Doctor","Patient"],"features":["Book Appointments"]}`)

	adapter := NewAdapter(NewAnthropicCompleter(server.URL+"/", "test-key", Options{}))
	result, err := adapter.Extract(context.Background(), "a clinic booking app")
	require.NoError(t, err)

	assert.Equal(t, "Clinic", result.AppName)
	assert.Equal(t, []string{"Patient"}, result.Entities)
	assert.Equal(t, ProviderAnthropic, result.Metadata.Provider)
	assert.Equal(t, ProviderAnthropic, adapter.Provider())
}

func TestAdapter_AnthropicAuthError(t *testing.T) {
	server := anthropicServer(t, http.StatusUnauthorized, "")

	adapter := NewAdapter(NewAnthropicCompleter(server.URL+"/", "test-key", Options{}))
	_, err := adapter.Extract(context.Background(), "anything")
	assert.True(t, errors.Is(err, extraction.ErrAuth), "got %v", err)
}

func TestOptions_Temperature(t *testing.T) {
	zero := 0.0
	warm := 1.2

	tests := []struct {
		name string
		opts Options
		want float64
	}{
		{"unset uses default", Options{}, DefaultTemperature},
		{"explicit zero kept", Options{Temperature: &zero}, 0},
		{"explicit value kept", Options{Temperature: &warm}, 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.opts.withDefaults().temperature(), 0.0001)
		})
	}
}

func TestAdapter_OpenAISendsZeroTemperature(t *testing.T) {
	var sent map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": `{"appName":"Notes"}`}},
			},
		})
	}))
	t.Cleanup(server.Close)

	zero := 0.0
	adapter := NewAdapter(NewOpenAICompleter(commonhttp.NewClient(0), server.URL, "test-key", Options{Temperature: &zero}))
	_, err := adapter.Extract(context.Background(), "a notes app")
	require.NoError(t, err)

	require.Contains(t, sent, "temperature")
	assert.EqualValues(t, 0, sent["temperature"])
}

func TestNewCompleter(t *testing.T) {
	client := commonhttp.NewClient(0)

	c, err := NewCompleter(ProviderConfig{Provider: "OpenAI", APIKey: "k"}, client)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, c.Name())

	c, err = NewCompleter(ProviderConfig{Provider: "anthropic", APIKey: "k"}, client)
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, c.Name())

	_, err = NewCompleter(ProviderConfig{Provider: "cohere"}, client)
	assert.True(t, errors.Is(err, ErrUnknownProvider))
}
