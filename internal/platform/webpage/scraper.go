// Package webpage fetches a portfolio page and extracts its visible text for
// the resume composer.
package webpage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// ErrEmptyPage is returned when a page yields no visible text.
var ErrEmptyPage = errors.New("page contains no extractable text")

// maxBodyBytes caps how much of a page is read; anything past the cap is
// discarded, since portfolio pages past this size carry no additional signal
// for a resume.
const maxBodyBytes = 2 << 20

// Scraper fetches pages and reduces them to visible text.
type Scraper struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewScraper creates a Scraper.
func NewScraper(logger *slog.Logger) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Scrape fetches the page at url and returns its visible text with scripts,
// styles and markup removed.
func (s *Scraper) Scrape(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	s.logger.DebugContext(ctx, "scraping page", "url", url)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("page request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Warn("failed to close page response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	text := extractText(doc)
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyPage, url)
	}

	s.logger.DebugContext(ctx, "page scraped", "url", url, "text_length", len(text))
	return text, nil
}

// extractText walks the parsed document collecting text nodes, skipping
// script, style and head content.
func extractText(doc *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				b.WriteString(trimmed)
				b.WriteString("\n")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return strings.TrimSpace(b.String())
}
