package collect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cuiamaster/comunistando/app/extract"
	"github.com/cuiamaster/comunistando/app/sources"
)

func newTestCollector(imageProxy string) *Collector {
	fetcher := NewFetcher("TestBot/1.0", 5*time.Second)
	return NewCollector(fetcher, extract.NewExtractor(), imageProxy)
}

// httpsURL mirrors the collector's https upgrade for expectations against a
// plain-http test server.
func httpsURL(raw string) string {
	return "https://" + strings.TrimPrefix(raw, "http://")
}

func feedXML(host string, entries string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>%s</link>
%s
  </channel>
</rss>`, host, entries)
}

func TestFromRSS(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feed" {
			http.NotFound(w, r)
			return
		}
		entries := fmt.Sprintf(`
    <item>
      <title>First item</title>
      <link>%[1]s/articles/1</link>
      <description>Summary of the &lt;b&gt;first&lt;/b&gt; item</description>
      <pubDate>Tue, 01 Jan 2030 00:00:00 GMT</pubDate>
      <enclosure url="%[1]s/img/1.jpg" length="1000" type="image/jpeg"/>
    </item>
    <item>
      <title>Second item</title>
      <link>%[1]s/articles/2</link>
      <description>Summary two</description>
      <enclosure url="%[1]s/img/2.jpg" length="1000" type="image/jpeg"/>
    </item>
    <item>
      <title>Third item</title>
      <link>%[1]s/articles/3</link>
      <description>Summary three</description>
      <enclosure url="%[1]s/img/3.jpg" length="1000" type="image/jpeg"/>
    </item>
    <item>
      <title>Fourth item</title>
      <link>%[1]s/articles/4</link>
      <description>Beyond the cap</description>
      <enclosure url="%[1]s/img/4.jpg" length="1000" type="image/jpeg"/>
    </item>`, server.URL)
		fmt.Fprint(w, feedXML(server.URL, entries))
	}))
	defer server.Close()

	c := newTestCollector("")
	items, err := c.Run(context.Background(), sources.Source{
		Country: "Cuba",
		Type:    sources.TypeRSS,
		URL:     server.URL + "/feed",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("Expected 3 items (feed cap), got %d", len(items))
	}

	for i, item := range items {
		if item.Country != "Cuba" {
			t.Errorf("Item %d: expected country 'Cuba', got %q", i, item.Country)
		}
		if item.SourceURL == "" {
			t.Errorf("Item %d: expected non-empty sourceUrl", i)
		}
		if item.ImageURL == "" {
			t.Errorf("Item %d: expected non-empty imageUrl", i)
		}
		if item.PublishedAt == "" {
			t.Errorf("Item %d: expected non-empty publishedAt", i)
		}
	}

	// Feed order is preserved; the fourth entry fell to the cap.
	if items[0].Title != "First item" || items[1].Title != "Second item" || items[2].Title != "Third item" {
		t.Errorf("Expected feed order preserved, got %q, %q, %q", items[0].Title, items[1].Title, items[2].Title)
	}

	if items[0].SourceURL != httpsURL(server.URL)+"/articles/1" {
		t.Errorf("Expected https-upgraded link, got %q", items[0].SourceURL)
	}
	if items[0].ImageURL != httpsURL(server.URL)+"/img/1.jpg" {
		t.Errorf("Expected https-upgraded enclosure image, got %q", items[0].ImageURL)
	}
	if items[0].PublishedAt != "2030-01-01T00:00:00Z" {
		t.Errorf("Expected parsed pubDate, got %q", items[0].PublishedAt)
	}
	if items[0].Summary != "Summary of the first item" {
		t.Errorf("Expected plain-text summary, got %q", items[0].Summary)
	}
}

func TestFromRSSSkipsInvalidEntries(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entries := fmt.Sprintf(`
    <item>
      <title>Good</title>
      <link>%[1]s/articles/1</link>
      <enclosure url="%[1]s/img/1.jpg" length="1" type="image/jpeg"/>
    </item>
    <item>
      <title></title>
      <link>%[1]s/articles/broken</link>
      <enclosure url="%[1]s/img/x.jpg" length="1" type="image/jpeg"/>
    </item>
    <item>
      <title>No link</title>
      <enclosure url="%[1]s/img/y.jpg" length="1" type="image/jpeg"/>
    </item>`, server.URL)
		fmt.Fprint(w, feedXML(server.URL, entries))
	}))
	defer server.Close()

	c := newTestCollector("")
	items, err := c.Run(context.Background(), sources.Source{
		Country: "Cuba", Type: sources.TypeRSS, URL: server.URL + "/feed",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item after skipping invalid entries, got %d", len(items))
	}
	if items[0].Title != "Good" {
		t.Errorf("Expected the valid entry, got %q", items[0].Title)
	}
}

func TestFromRSSOgImageLookup(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed":
			entries := fmt.Sprintf(`
    <item><title>No enclosure</title><link>%s/articles/5</link></item>`, server.URL)
			fmt.Fprint(w, feedXML(server.URL, entries))
		case "/articles/5":
			fmt.Fprint(w, `<html><head><meta property="og:image" content="/img/og.jpg"></head><body></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := newTestCollector("")
	items, err := c.Run(context.Background(), sources.Source{
		Country: "China", Type: sources.TypeRSS, URL: server.URL + "/feed",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}

	expected := httpsURL(server.URL) + "/img/og.jpg"
	if items[0].ImageURL != expected {
		t.Errorf("Expected og:image lookup %q, got %q", expected, items[0].ImageURL)
	}
}

func TestFromScrape(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body>
				<a href="/other">other</a>
				<a href="detail.aspx?id=77">first story</a>
			</body></html>`)
		case "/detail.aspx":
			fmt.Fprint(w, `<html><head>
				<meta property="og:title" content="Scraped Story">
				<meta name="description" content="Scraped description.">
				<meta property="og:image" content="/img/story.jpg">
			</head><body></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := newTestCollector("")
	items, err := c.Run(context.Background(), sources.Source{
		Country: "Laos",
		Type:    sources.TypeScrape,
		URL:     server.URL + "/",
		Pick:    sources.Pick{Selector: `a[href*="detail.aspx"]`},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Title != "Scraped Story" {
		t.Errorf("Expected extracted title, got %q", item.Title)
	}
	if item.Summary != "Scraped description." {
		t.Errorf("Expected extracted summary, got %q", item.Summary)
	}
	if item.SourceURL != httpsURL(server.URL)+"/detail.aspx?id=77" {
		t.Errorf("Expected resolved https article URL, got %q", item.SourceURL)
	}
	if item.ImageURL != httpsURL(server.URL)+"/img/story.jpg" {
		t.Errorf("Expected extracted image, got %q", item.ImageURL)
	}
	if item.SourceName != "127.0.0.1" {
		t.Errorf("Expected host-derived sourceName, got %q", item.SourceName)
	}
}

func TestFromScrapeSelectorMiss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/x">unrelated</a></body></html>`)
	}))
	defer server.Close()

	c := newTestCollector("")
	items, err := c.Run(context.Background(), sources.Source{
		Country: "Laos",
		Type:    sources.TypeScrape,
		URL:     server.URL + "/",
		Pick:    sources.Pick{Selector: `a[href*="detail.aspx"]`},
	})
	if err != nil {
		t.Fatalf("Expected no error on selector miss, got: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected zero items, got %d", len(items))
	}
}

func TestFromScrapeUntitledArticle(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body><a href="detail.aspx?id=1">story</a></body></html>`)
		default:
			fmt.Fprint(w, `<html><body><p>no title anywhere</p></body></html>`)
		}
	}))
	defer server.Close()

	c := newTestCollector("")
	items, err := c.Run(context.Background(), sources.Source{
		Country: "Laos",
		Type:    sources.TypeScrape,
		URL:     server.URL + "/",
		Pick:    sources.Pick{Selector: `a[href*="detail.aspx"]`},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected zero items for an untitled article, got %d", len(items))
	}
}

func TestRunSourceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestCollector("")
	if _, err := c.Run(context.Background(), sources.Source{
		Country: "Cuba", Type: sources.TypeRSS, URL: server.URL + "/feed",
	}); err == nil {
		t.Error("Expected an error for a failing source")
	}
}

func TestImageProxyApplied(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entries := fmt.Sprintf(`
    <item><title>With enclosure</title><link>%[1]s/a</link>
    <enclosure url="%[1]s/img/p.jpg" length="1" type="image/jpeg"/></item>`, server.URL)
		fmt.Fprint(w, feedXML(server.URL, entries))
	}))
	defer server.Close()

	proxy := "https://images.example.net/proxy"
	c := newTestCollector(proxy)
	items, err := c.Run(context.Background(), sources.Source{
		Country: "Cuba", Type: sources.TypeRSS, URL: server.URL + "/feed",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if !strings.HasPrefix(items[0].ImageURL, proxy+"?url=") {
		t.Errorf("Expected proxied image URL, got %q", items[0].ImageURL)
	}
}
