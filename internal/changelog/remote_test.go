package changelog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRemote("https://example.com/CHANGELOG.md"))
	assert.True(t, IsRemote("http://example.com/CHANGELOG.md"))
	assert.False(t, IsRemote("sn_api/CHANGELOG.md"))
	assert.False(t, IsRemote("/abs/path/CHANGELOG.md"))
}

func TestFetchRemote(t *testing.T) {
	t.Parallel()

	t.Run("fetches and parses a remote document", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("# Changelog\n\n## v0.2.0\nbody B\n\n## v0.1.0\nbody A\n"))
		}))
		defer srv.Close()

		doc, err := FetchRemote(context.Background(), srv.URL)
		require.NoError(t, err)

		assert.Equal(t, srv.URL, doc.Path)
		assert.Equal(t, []string{"0.2.0", "0.1.0"}, doc.Versions())
	})

	t.Run("404 maps to NotFoundError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := FetchRemote(context.Background(), srv.URL)
		require.Error(t, err)

		var notFound *NotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, srv.URL, notFound.Path)
	})

	t.Run("server error is not a NotFoundError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := FetchRemote(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status")

		var notFound *NotFoundError
		assert.False(t, errors.As(err, &notFound))
	})

	t.Run("unreachable host maps to NotFoundError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := FetchRemote(context.Background(), url)
		require.Error(t, err)

		var notFound *NotFoundError
		require.True(t, errors.As(err, &notFound))
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("local path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "CHANGELOG.md")
		require.NoError(t, os.WriteFile(path, []byte("## v1.0\nbody A\n"), 0644))

		doc, err := Resolve(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, []string{"1.0"}, doc.Versions())
	})

	t.Run("remote url", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("## v1.0\nbody A\n"))
		}))
		defer srv.Close()

		doc, err := Resolve(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{"1.0"}, doc.Versions())
	})
}
