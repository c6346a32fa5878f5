package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billex/internal/config"
	"billex/internal/extractor"
	"billex/internal/port"
)

func testConfig() *config.ProviderConfig {
	return &config.ProviderConfig{
		Provider: "gemini",
		APIKey:   "test-key",
		Model:    "gemini-2.0-flash",
	}
}

func generateContentReply(text string) string {
	reply := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
		"usageMetadata": map[string]int{
			"promptTokenCount":     200,
			"candidatesTokenCount": 40,
			"totalTokenCount":      240,
		},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

func TestExtractPage_Success(t *testing.T) {
	var captured map[string]interface{}
	var apiKeyHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKeyHeader = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(generateContentReply(`{"page_type": "Bill Detail", "bill_items": [{"item_name": "Room Rent", "item_rate": 1500, "item_quantity": 2, "item_amount": 3000}]}`)))
	}))
	defer server.Close()

	e := NewExtractorWithEndpoint(testConfig(), server.URL)
	raw, usage, err := e.ExtractPage(context.Background(), port.ExtractInput{ImageJPEG: []byte("fake-jpeg"), PageNo: 1})
	require.NoError(t, err)

	assert.Equal(t, "test-key", apiKeyHeader)

	genCfg := captured["generationConfig"].(map[string]interface{})
	assert.Equal(t, "application/json", genCfg["responseMimeType"])

	contents := captured["contents"].([]interface{})
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	require.Len(t, parts, 2)
	inline := parts[0].(map[string]interface{})["inline_data"].(map[string]interface{})
	assert.Equal(t, "image/jpeg", inline["mime_type"])
	assert.NotEmpty(t, inline["data"])

	assert.Equal(t, "Bill Detail", raw.PageType)
	require.Len(t, raw.BillItems, 1)
	assert.Equal(t, "Room Rent", raw.BillItems[0].ItemName)

	require.NotNil(t, usage)
	assert.Equal(t, 200, usage.PromptTokens)
	assert.Equal(t, 40, usage.CompletionTokens)
	assert.Equal(t, 240, usage.TotalTokens)
}

func TestExtractPage_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	e := NewExtractorWithEndpoint(testConfig(), server.URL)
	_, _, err := e.ExtractPage(context.Background(), port.ExtractInput{ImageJPEG: []byte("x"), PageNo: 1})
	require.Error(t, err)

	var rle *extractor.RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, "gemini", rle.Provider)
}

func TestExtractPage_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	e := NewExtractorWithEndpoint(testConfig(), server.URL)
	_, _, err := e.ExtractPage(context.Background(), port.ExtractInput{ImageJPEG: []byte("x"), PageNo: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
