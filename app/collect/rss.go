package collect

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cuiamaster/comunistando/app/extract"
	"github.com/cuiamaster/comunistando/app/news"
	"github.com/cuiamaster/comunistando/app/sources"
	"github.com/cuiamaster/comunistando/app/urlutil"
)

// maxFeedItems bounds how many entries are taken from one feed, in the order
// the feed provides them.
const maxFeedItems = 3

func (c *Collector) fromRSS(ctx context.Context, src sources.Source) ([]news.Item, error) {
	data, err := c.fetcher.Get(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	feed, err := c.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := feed.Items
	if len(entries) > maxFeedItems {
		entries = entries[:maxFeedItems]
	}

	items := make([]news.Item, 0, len(entries))
	for _, entry := range entries {
		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" || link == "" {
			continue
		}
		// Fetches go over the feed's original scheme; the published link is
		// upgraded to https.
		absLink := urlutil.ToAbsolute(link, src.URL)
		link = urlutil.PreferHTTPS(absLink)

		image := ""
		if len(entry.Enclosures) > 0 && entry.Enclosures[0] != nil {
			image = entry.Enclosures[0].URL
		}
		if image == "" {
			// Image lookups stay sequential per item to avoid hammering the
			// source host.
			if page, err := c.fetcher.Get(ctx, absLink); err == nil {
				image = extract.OgImage(string(page))
			} else {
				slog.Debug("Entry page fetch failed, item keeps no image", "link", absLink, "error", err)
			}
		}

		summary := cmp.Or(entry.Description, entry.Content)
		summary = extract.Truncate(extract.CollapseWhitespace(extract.PlainText(summary)), 260)

		published := time.Now().UTC().Format(time.RFC3339)
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC().Format(time.RFC3339)
		}

		items = append(items, news.Item{
			Country:     src.Country,
			Title:       title,
			Summary:     summary,
			PublishedAt: published,
			SourceName:  cmp.Or(urlutil.Hostname(link), urlutil.Hostname(src.URL)),
			SourceURL:   link,
			ImageURL:    c.normalizeImage(image, link),
		})
	}

	return items, nil
}
