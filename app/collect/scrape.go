package collect

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cuiamaster/comunistando/app/news"
	"github.com/cuiamaster/comunistando/app/sources"
	"github.com/cuiamaster/comunistando/app/urlutil"
)

// fromScrape picks the first article link off a listing page and extracts
// that article's content. A selector miss yields zero items, not an error.
func (c *Collector) fromScrape(ctx context.Context, src sources.Source) ([]news.Item, error) {
	data, err := c.fetcher.Get(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	href, ok := doc.Find(src.Pick.Selector).First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		slog.Warn("No anchor matched selector, source yields nothing",
			"country", src.Country, "selector", src.Pick.Selector)
		return nil, nil
	}

	// The fetch keeps the listing page's original scheme; the published link
	// is upgraded to https.
	absLink := urlutil.ToAbsolute(href, src.URL)
	link := urlutil.PreferHTTPS(absLink)

	page, err := c.fetcher.Get(ctx, absLink)
	if err != nil {
		return nil, err
	}

	content := c.extractor.Run(string(page), link)
	if content.Title == "" {
		slog.Warn("Article page yielded no title, source yields nothing",
			"country", src.Country, "link", link)
		return nil, nil
	}

	return []news.Item{{
		Country:     src.Country,
		Title:       content.Title,
		Summary:     content.Summary,
		PublishedAt: content.PublishedAt,
		SourceName:  urlutil.Hostname(link),
		SourceURL:   link,
		ImageURL:    c.normalizeImage(content.ImageURL, link),
	}}, nil
}
