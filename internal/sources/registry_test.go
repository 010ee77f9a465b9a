package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpulse/localpulse/pkg/event"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	keys := r.Keys()
	assert.Equal(t, []string{
		"wills-pub", "lil-indies", "dirty-laundry", "plaza-live",
		"beacham-social", "orange-county-parks", "mycfl-family",
	}, keys)

	for _, s := range r.All() {
		assert.NotEmpty(t, s.Name, "source %s", s.Key)
		assert.True(t, strings.HasPrefix(s.URL, "https://"), "source %s", s.Key)
	}

	wp, ok := r.Lookup("wills-pub")
	require.True(t, ok)
	assert.Equal(t, "Will's Pub", wp.Name)

	req := wp.Request()
	assert.Equal(t, event.CategoryMusic, req.Category)
	assert.Equal(t, wp.URL, req.SourceURL)

	// The family calendar carries mixed listings, so no fixed category.
	fam, ok := r.Lookup("mycfl-family")
	require.True(t, ok)
	assert.Empty(t, fam.Category)

	_, ok = r.Lookup("no-such-source")
	assert.False(t, ok)
}

func TestLoadRegistryFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sources:
  - key: test-venue
    name: Test Venue
    url: https://venue.example.com/shows
    category: music
  - key: test-market
    name: Test Market
    url: https://market.example.com/
`), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"test-venue", "test-market"}, r.Keys())

	s, ok := r.Lookup("test-venue")
	require.True(t, ok)
	assert.Equal(t, "music", s.Category)
}

func TestLoadRegistryRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		yaml string
	}{
		{"empty list", "sources: []\n"},
		{"missing url", "sources:\n  - key: a\n    name: A\n"},
		{"duplicate key", "sources:\n  - {key: a, name: A, url: https://a.example.com}\n  - {key: a, name: B, url: https://b.example.com}\n"},
		{"unknown category", "sources:\n  - {key: a, name: A, url: https://a.example.com, category: nightlife}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "-")+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body><h3>Show</h3></body></html>"))
	}))
	defer srv.Close()

	client := NewClient(DefaultFetchConfig())
	html, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "<h3>Show</h3>")
	assert.Contains(t, gotAgent, "LocalPulse-Scraper")
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(DefaultFetchConfig())
	_, err := client.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetchCapsBodySize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	config := DefaultFetchConfig()
	config.MaxBodySize = 1024
	client := NewClient(config)

	html, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, html, 1024)
}

func TestFetchHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(DefaultFetchConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Fetch(ctx, srv.URL)
	assert.Error(t, err)
}
