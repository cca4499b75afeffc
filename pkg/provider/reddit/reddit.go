// Package reddit harvests "Today I learned" facts from the r/todayilearned
// feed.
package reddit

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
)

// DefaultURL is the feed of newest r/todayilearned posts.
const DefaultURL = "https://www.reddit.com/r/todayilearned/new/.rss"

// Config configures a feed provider. Zero values select the "til" id and
// the r/todayilearned feed.
type Config struct {
	ID        string
	URL       string
	Client    *http.Client
	UserAgent string
}

// Provider reads post titles from a subreddit feed.
type Provider struct {
	id     string
	url    string
	parser *gofeed.Parser
}

// New returns a Provider for c.
func New(c Config) *Provider {
	if c.ID == "" {
		c.ID = "til"
	}
	if c.URL == "" {
		c.URL = DefaultURL
	}

	parser := gofeed.NewParser()
	if c.Client != nil {
		parser.Client = c.Client
	}
	if c.UserAgent != "" {
		parser.UserAgent = c.UserAgent
	}

	return &Provider{
		id:     c.ID,
		url:    c.URL,
		parser: parser,
	}
}

// ID returns the provider id, "til" by default.
func (p *Provider) ID() string {
	return p.id
}

// Facts fetches the feed and returns each post title, with a leading "TIL"
// expanded to "Today I learned".
func (p *Provider) Facts(ctx context.Context) ([]string, error) {
	feed, err := p.parser.ParseURLWithContext(p.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	facts := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		facts = append(facts, expand(title))
	}
	return facts, nil
}

func expand(title string) string {
	if rest, ok := strings.CutPrefix(title, "TIL"); ok {
		return "Today I learned" + rest
	}
	return title
}
