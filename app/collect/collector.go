// Package collect turns configured sources into normalized news items. A
// failure anywhere inside one source surfaces as an error for that source
// only; the orchestrator logs it and moves on.
package collect

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/cuiamaster/comunistando/app/extract"
	"github.com/cuiamaster/comunistando/app/news"
	"github.com/cuiamaster/comunistando/app/sources"
	"github.com/cuiamaster/comunistando/app/urlutil"
)

type Collector struct {
	fetcher    *Fetcher
	parser     *gofeed.Parser
	extractor  *extract.Extractor
	imageProxy string
}

func NewCollector(fetcher *Fetcher, extractor *extract.Extractor, imageProxy string) *Collector {
	return &Collector{
		fetcher:    fetcher,
		parser:     gofeed.NewParser(),
		extractor:  extractor,
		imageProxy: imageProxy,
	}
}

// Run collects the items of one source.
func (c *Collector) Run(ctx context.Context, src sources.Source) ([]news.Item, error) {
	switch src.Type {
	case sources.TypeRSS:
		return c.fromRSS(ctx, src)
	case sources.TypeScrape:
		return c.fromScrape(ctx, src)
	default:
		return nil, fmt.Errorf("unknown source type %q", src.Type)
	}
}

// normalizeImage resolves, upgrades and encodes an image URL, routing it
// through the image proxy when one is configured.
func (c *Collector) normalizeImage(image, baseURL string) string {
	if image == "" {
		return ""
	}
	image = urlutil.Encode(urlutil.PreferHTTPS(urlutil.ToAbsolute(image, baseURL)))
	if c.imageProxy != "" {
		image = urlutil.WithImageProxy(image, c.imageProxy)
	}
	return image
}
