package instagram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentMediaDecodesFields(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/42/media", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"a","caption":"c","media_type":"VIDEO","media_url":"m","thumbnail_url":"th","permalink":"p","timestamp":"ts"}]}`))
	}))
	defer upstream.Close()

	client := NewClient("token", "42", "6")
	client.BaseURL = upstream.URL

	media, err := client.RecentMedia(context.Background())
	require.NoError(t, err)
	require.Len(t, media, 1)
	assert.Equal(t, Media{
		ID: "a", Caption: "c", MediaType: "VIDEO",
		MediaURL: "m", ThumbnailURL: "th", Permalink: "p", Timestamp: "ts",
	}, media[0])
}

func TestRecentMediaSendsCredentialsAndLimit(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("access_token"))
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"data":[]}`))
	}))
	defer upstream.Close()

	client := NewClient("secret", "42", "12")
	client.BaseURL = upstream.URL

	media, err := client.RecentMedia(context.Background())
	require.NoError(t, err)
	assert.Empty(t, media)
}

func TestRecentMediaUpstreamErrorCarriesStatusAndMessage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Session expired"}}`))
	}))
	defer upstream.Close()

	client := NewClient("token", "42", "6")
	client.BaseURL = upstream.URL

	_, err := client.RecentMedia(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Session expired", apiErr.Message)
}

func TestRecentMediaRejectsMalformedBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer upstream.Close()

	client := NewClient("token", "42", "6")
	client.BaseURL = upstream.URL

	_, err := client.RecentMedia(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
