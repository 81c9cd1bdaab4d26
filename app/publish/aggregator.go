package publish

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cuiamaster/comunistando/app/cfg"
	"github.com/cuiamaster/comunistando/app/collect"
	"github.com/cuiamaster/comunistando/app/extract"
	"github.com/cuiamaster/comunistando/app/news"
	"github.com/cuiamaster/comunistando/app/sources"
	"github.com/cuiamaster/comunistando/app/translate"
)

// Aggregator runs the whole pipeline: collect from every source, persist the
// snapshot, translate and render article pages, then emit feeds and sitemap.
type Aggregator struct {
	sources     []sources.Source
	collector   *collect.Collector
	engine      *translate.Engine
	extractor   *extract.Extractor
	fetcher     *collect.Fetcher
	snapshot    *Snapshot
	publisher   *Publisher
	renderPages bool
}

func NewAggregator(c *cfg.Cfg, srcs []sources.Source) *Aggregator {
	fetcher := collect.NewFetcher(c.UserAgent, time.Duration(c.FetchTimeout)*time.Second)
	extractor := extract.NewExtractor()

	return &Aggregator{
		sources:   srcs,
		collector: collect.NewCollector(fetcher, extractor, c.ImageProxy),
		engine: translate.NewEngine(translate.Config{
			Endpoint: c.LTEndpoint,
			APIKey:   c.LTAPIKey,
			Target:   c.TargetLang,
			Timeout:  time.Duration(c.TranslateTimeout) * time.Second,
		}),
		extractor:   extractor,
		fetcher:     fetcher,
		snapshot:    NewSnapshot(c.OutputDir),
		publisher:   NewPublisher(c.OutputDir, c.BaseUrl),
		renderPages: c.RenderPages,
	}
}

func (a *Aggregator) Run(ctx context.Context) error {
	items := a.collect(ctx)
	for i := range items {
		items[i].Permalink = Permalink(items[i].Country, items[i].Title)
	}

	if err := a.snapshot.Save(items); err != nil {
		return err
	}

	// The snapshot guard may have kept the previous set; feeds and pages must
	// reflect what is actually published.
	published := items
	if len(items) == 0 {
		previous, err := a.snapshot.Load()
		if err != nil {
			return err
		}
		published = previous
	}

	var permalinks []string
	if a.renderPages {
		permalinks = a.renderArticles(ctx, published)
	}

	if err := a.publisher.WriteFeeds(published, sources.Countries(a.sources)); err != nil {
		return err
	}
	if err := a.publisher.WriteSitemap(sources.Countries(a.sources), permalinks); err != nil {
		return err
	}

	slog.Info("Publish complete", "items", len(published), "pages", len(permalinks))
	return nil
}

// collect fans out one goroutine per source and flattens the results in
// configuration order. A failed source contributes nothing.
func (a *Aggregator) collect(ctx context.Context) []news.Item {
	results := make([][]news.Item, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()

			items, err := a.collector.Run(ctx, src)
			if err != nil {
				slog.Error("Source failed", "country", src.Country, "url", src.URL, "error", err)
				return
			}
			slog.Info("Source collected", "country", src.Country, "items", len(items))
			results[i] = items
		}(i, src)
	}
	wg.Wait()

	var items []news.Item
	for _, batch := range results {
		items = append(items, batch...)
	}
	return items
}

// renderArticles translates each item and writes its article page, returning
// the permalinks of the pages that were actually rendered. A failure on one
// item skips its page only.
func (a *Aggregator) renderArticles(ctx context.Context, items []news.Item) []string {
	permalinks := make([]string, 0, len(items))
	for i := range items {
		item := &items[i]
		item.Title = a.engine.Translate(ctx, item.Title)
		item.Summary = a.engine.Translate(ctx, item.Summary)

		page, err := a.fetcher.Get(ctx, item.SourceURL)
		if err != nil {
			slog.Warn("Skipping article page, source unreachable", "url", item.SourceURL, "error", err)
			continue
		}

		preview := a.extractor.Preview(string(page), item.SourceURL)
		body := a.engine.TranslateHTMLParagraphs(ctx, preview)

		if err := a.publisher.WritePage(*item, body); err != nil {
			slog.Warn("Failed to render article page", "permalink", item.Permalink, "error", err)
			continue
		}
		permalinks = append(permalinks, item.Permalink)
	}
	return permalinks
}
