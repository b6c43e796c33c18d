package webpage

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("extracts visible text only", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>
				<head><title>Portfolio</title><style>body { color: red; }</style></head>
				<body>
					<h1>Ada Lovelace</h1>
					<p>Software engineer building analytical engines.</p>
					<script>console.log("tracking");</script>
				</body>
			</html>`))
		}))
		defer server.Close()

		scraper := NewScraper(testLogger())

		text, err := scraper.Scrape(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Contains(t, text, "Ada Lovelace")
		assert.Contains(t, text, "analytical engines")
		assert.NotContains(t, text, "tracking")
		assert.NotContains(t, text, "color: red")
		assert.NotContains(t, text, "Portfolio", "head content is skipped")
	})

	t.Run("oversized page is truncated, not rejected", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body><p>Ada Lovelace</p><p>`))
			_, _ = w.Write([]byte(strings.Repeat("filler text ", maxBodyBytes/8)))
			_, _ = w.Write([]byte(`</p></body></html>`))
		}))
		defer server.Close()

		scraper := NewScraper(testLogger())

		text, err := scraper.Scrape(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Contains(t, text, "Ada Lovelace")
	})

	t.Run("empty page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body><script>only scripts</script></body></html>`))
		}))
		defer server.Close()

		scraper := NewScraper(testLogger())

		_, err := scraper.Scrape(context.Background(), server.URL)

		assert.ErrorIs(t, err, ErrEmptyPage)
	})

	t.Run("non-200 status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		scraper := NewScraper(testLogger())

		_, err := scraper.Scrape(context.Background(), server.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})
}
