package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ResearchDigest/internal/ports"
)

// Extracted text shorter than this is treated as a failed extraction so the
// caller keeps the feed excerpt instead.
const minBodyChars = 100

// Scraper retrieves article pages and extracts their readable body text.
type Scraper struct {
	client *http.Client
}

var _ ports.Scraper = (*Scraper)(nil)

// NewScraper wires an HTTP client; a nil client gets sane defaults. The
// per-request timeout comes from Extract, not from the client.
func NewScraper(client *http.Client) *Scraper {
	if client == nil {
		client = &http.Client{}
	}
	return &Scraper{client: client}
}

// Extract downloads the page and returns its plain body text. Any failure
// (network, non-200, trivial extraction) is an error; nothing is retried.
func (s *Scraper) Extract(ctx context.Context, pageURL string, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ResearchDigest/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	text := extractBody(doc)
	if len(text) < minBodyChars {
		return "", fmt.Errorf("extracted only %d chars from %s", len(text), pageURL)
	}

	return text, nil
}

func extractBody(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, header, footer, aside").Remove()

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}

	var parts []string
	root.Find("p").Each(func(_ int, p *goquery.Selection) {
		if line := strings.TrimSpace(p.Text()); line != "" {
			parts = append(parts, line)
		}
	})

	if len(parts) == 0 {
		return strings.Join(strings.Fields(root.Text()), " ")
	}

	return strings.Join(parts, "\n\n")
}
