package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/ai"
)

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "", "")
	assert.ErrorIs(t, err, ai.ErrMissingCredential)
}

func TestGenerate(t *testing.T) {
	var calls int32
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/"+DefaultModel+":generateContent") {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(&calls, 1)
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "## Key Themes\n- Delivery"}},
				},
			}},
		})
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "test-key", "", srv.URL)
	require.NoError(t, err)

	out, err := c.Generate(context.Background(), "PROMPT TEXT")
	require.NoError(t, err)
	assert.Equal(t, "## Key Themes\n- Delivery", out)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Contains(t, body, "PROMPT TEXT")
}

func TestGenerate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "test-key", "gemini-test", srv.URL)
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GenAI generate failed")
}

func TestProvider(t *testing.T) {
	c, err := NewClient(context.Background(), "k", "gemini-custom", "http://127.0.0.1:1")
	require.NoError(t, err)
	assert.Equal(t, ai.Provider{Name: "Gemini", EnvVar: EnvVar, Model: "gemini-custom"}, c.Provider())
}
