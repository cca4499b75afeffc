// Package wikipedia harvests "Did you know" facts from Wikipedia's recent
// additions page.
package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultURL lists the most recent "Did you know" hooks.
	DefaultURL = "https://en.wikipedia.org/wiki/Wikipedia:Recent_additions"

	selector = "div#mw-content-text ul li"
	ellipsis = "..."
)

// Config configures a page provider. Zero values select the "dyk" id and
// the Recent additions page.
type Config struct {
	ID        string
	URL       string
	Client    *http.Client
	UserAgent string
}

// Provider scrapes list items from a Wikipedia page.
type Provider struct {
	id        string
	url       string
	client    *http.Client
	userAgent string
}

// New returns a Provider for c.
func New(c Config) *Provider {
	if c.ID == "" {
		c.ID = "dyk"
	}
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.Client == nil {
		c.Client = http.DefaultClient
	}

	return &Provider{
		id:        c.ID,
		url:       c.URL,
		client:    c.Client,
		userAgent: c.UserAgent,
	}
}

// ID returns the provider id, "dyk" by default.
func (p *Provider) ID() string {
	return p.id
}

// Facts returns every list item that starts with an ellipsis, with the
// ellipsis replaced by "Do you know".
func (p *Provider) Facts(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching page: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var facts []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if rest, ok := strings.CutPrefix(text, ellipsis); ok {
			facts = append(facts, "Do you know"+rest)
		}
	})
	return facts, nil
}
