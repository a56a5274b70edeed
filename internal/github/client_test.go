package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avandres/prreview/internal/types"
)

func TestFetchPullRequestFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/demo/pulls/7/files", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer t0ken", r.Header.Get("Authorization"))

		files := []prFile{
			{Filename: "main.go", Patch: "@@ -1 +1,2 @@\n x\n+y", Additions: 1},
			{Filename: "logo.png", Additions: 0},
		}
		require.NoError(t, json.NewEncoder(w).Encode(files))
	}))
	defer server.Close()

	client := NewClient(server.URL, "t0ken", time.Second)
	files, err := client.FetchPullRequestFiles(context.Background(), "octo", "demo", 7)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "main.go", files[0].Path)
	assert.Equal(t, "@@ -1 +1,2 @@\n x\n+y", files[0].DiffText)
	assert.Equal(t, 1, files[0].Additions)
	assert.Equal(t, "logo.png", files[1].Path)
	assert.Empty(t, files[1].DiffText)
}

func TestFetchPullRequestFilesPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		var files []prFile
		switch page {
		case "1":
			for i := 0; i < perPage; i++ {
				files = append(files, prFile{Filename: fmt.Sprintf("file_%03d.go", i)})
			}
		case "2":
			files = []prFile{{Filename: "last.go"}}
		default:
			t.Errorf("unexpected page %q", page)
		}
		require.NoError(t, json.NewEncoder(w).Encode(files))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	files, err := client.FetchPullRequestFiles(context.Background(), "octo", "demo", 7)
	require.NoError(t, err)
	assert.Len(t, files, perPage+1)
	assert.Equal(t, "file_000.go", files[0].Path)
	assert.Equal(t, "last.go", files[perPage].Path)
}

func TestFetchPullRequestFilesErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected error
	}{
		{"not found", http.StatusNotFound, types.ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, types.ErrAuth},
		{"forbidden", http.StatusForbidden, types.ErrAuth},
		{"server error", http.StatusInternalServerError, types.ErrUpstream},
		{"bad gateway", http.StatusBadGateway, types.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(server.URL, "", time.Second)
			_, err := client.FetchPullRequestFiles(context.Background(), "octo", "demo", 404)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "expected %v, got %v", tt.expected, err)
		})
	}
}

func TestFetchPullRequestFilesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL, "", time.Second)
	_, err := client.FetchPullRequestFiles(context.Background(), "octo", "demo", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUpstream))
}

func TestFetchPullRequestFilesBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second)
	_, err := client.FetchPullRequestFiles(context.Background(), "octo", "demo", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUpstream))
}
