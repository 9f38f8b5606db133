package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/llm"
)

func TestGenerateConfig(t *testing.T) {
	cfg := generateConfig(llm.Request{System: "sys", JSON: true, Temperature: llm.Float(0.5)})
	require.NotNil(t, cfg.SystemInstruction)
	require.Len(t, cfg.SystemInstruction.Parts, 1)
	assert.Equal(t, "sys", cfg.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.5, *cfg.Temperature, 0.0001)

	plain := generateConfig(llm.Request{Prompt: "p"})
	assert.Nil(t, plain.SystemInstruction)
	assert.Empty(t, plain.ResponseMIMEType)
	assert.Nil(t, plain.Temperature)
}

func TestCompleteReadsCandidateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"  PLAIN RESUME  "}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), Options{APIKey: "k", Model: "gemini-test", BaseURL: server.URL})
	require.NoError(t, err)

	got, err := client.Complete(context.Background(), llm.Request{Prompt: "generate"})
	require.NoError(t, err)
	assert.Equal(t, "PLAIN RESUME", got)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(context.Background(), Options{APIKey: "k"})
	assert.Error(t, err)
	_, err = NewClient(context.Background(), Options{Model: "m"})
	assert.Error(t, err)
}
