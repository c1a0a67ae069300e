package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

func TestClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var in echo
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(echo{Value: strings.ToUpper(in.Value)})
	}))
	defer server.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer key")
	client := New(server.URL+"/v1/", time.Second, header)

	var out echo
	require.NoError(t, client.Post(context.Background(), "/echo", echo{Value: "hi"}, &out))
	assert.Equal(t, "HI", out.Value)
}

func TestClient_Post_StatusErrorKeepsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer server.Close()

	var out echo
	err := New(server.URL, time.Second, nil).Post(context.Background(), "/x", echo{}, &out)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, err.Error(), "model not found")
	assert.Equal(t, "model not found", out.Error, "error payload is still decoded")
}

func TestClient_Post_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	var out echo
	err := New(server.URL, time.Second, nil).Post(context.Background(), "/x", echo{}, &out)

	assert.ErrorContains(t, err, "decode response")
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := New(server.URL, time.Second, nil)

	assert.NoError(t, client.Get(context.Background(), "/ok"))
	assert.ErrorContains(t, client.Get(context.Background(), "/denied"), "status 403")
}

func TestClient_Unreachable(t *testing.T) {
	err := New("http://127.0.0.1:1", time.Second, nil).Get(context.Background(), "/")

	assert.ErrorContains(t, err, "send request")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate([]byte("  short \n")))

	long := truncate([]byte(strings.Repeat("a", maxErrorBody+10)))
	assert.Len(t, long, maxErrorBody+3)
}
