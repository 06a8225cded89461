package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskSendsPrompts(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "cvstudio", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"summary\":\"ok\"}"}}]}`))
	}))
	defer srv.Close()

	c := New("key", srv.URL, "m", "", "cvstudio", "")
	out, err := c.Ask(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)
	assert.Equal(t, "m", got["model"])
	assert.Len(t, got["messages"], 2)
}

func TestReadImageSendsDataURL(t *testing.T) {
	var got chatCompletionsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw struct {
			Model    string `json:"model"`
			Messages []struct {
				Content []contentPart `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		got.Model = raw.Model
		require.Len(t, raw.Messages, 1)
		require.Len(t, raw.Messages[0].Content, 2)
		assert.Equal(t, "data:image/png;base64,AQI=", raw.Messages[0].Content[1].ImageURL.URL)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Jean Dupont"}}]}`))
	}))
	defer srv.Close()

	c := New("key", srv.URL, "", "", "", "")
	out, err := c.ReadImage(context.Background(), "read", "image/png", []byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", out)
	assert.Equal(t, defaultVisionModel, got.Model)
}

func TestErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate"}`))
	}))
	defer srv.Close()

	_, err := New("", srv.URL, "", "", "", "").Ask(context.Background(), "s", "u")
	require.EqualError(t, err, "openrouter api key is empty")

	_, err = New("key", srv.URL, "", "", "", "").Ask(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openrouter http 429")
}
