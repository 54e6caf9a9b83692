package narrator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/balcaohq/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "Caneca Azul 300ml | R$ 29.90", req.Messages[1].Content)

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  A Caneca Azul de 300ml custa R$ 29,90.  "}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "test-model")

	out, err := client.Describe(context.Background(), "Caneca Azul 300ml | R$ 29.90")

	require.NoError(t, err)
	assert.Equal(t, "A Caneca Azul de 300ml custa R$ 29,90.", out)
}

func TestDescribe_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "test-model")

	out, err := client.Describe(context.Background(), "texto")

	assert.Empty(t, out)
	assert.ErrorIs(t, err, domain.ErrNarratorUnavailable)
}

func TestDescribe_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "test-model")

	_, err := client.Describe(context.Background(), "texto")

	assert.ErrorIs(t, err, domain.ErrNarratorUnavailable)
}

func TestDescribe_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "test-model")

	_, err := client.Describe(context.Background(), "texto")

	assert.ErrorIs(t, err, domain.ErrNarratorUnavailable)
}

func TestNoop(t *testing.T) {
	out, err := Noop{}.Describe(context.Background(), "texto original")

	require.NoError(t, err)
	assert.Equal(t, "texto original", out)
}
