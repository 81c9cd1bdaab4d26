// Package extract pulls a title, summary, publication timestamp, image and a
// short preview body out of raw article HTML. Structured metadata (og:/meta
// tags) wins over content heuristics; every lookup degrades field-by-field and
// nothing in here returns an error.
package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"github.com/cuiamaster/comunistando/app/urlutil"
)

const (
	summaryMaxChars   = 260
	summaryMinParaLen = 60
)

// imageContainers is the priority order for the content-heuristic image
// lookup; the last entry matches anywhere in the document.
var imageContainers = []string{"article", "[class*=content]", "[class*=post]", "main", ""}

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Run extracts the content fields from an HTML document. pageURL is the base
// for resolving relative image URLs.
func (e *Extractor) Run(htmlSrc, pageURL string) Content {
	content := Content{PublishedAt: time.Now().UTC().Format(time.RFC3339)}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return content
	}

	content.Title = e.extractTitle(doc)
	content.Summary = e.extractSummary(doc)
	content.PublishedAt = e.extractPublishedAt(doc)
	content.ImageURL = e.extractImage(doc, pageURL)

	return content
}

func (e *Extractor) extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func (e *Extractor) extractSummary(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && strings.TrimSpace(desc) != "" {
		return Truncate(CollapseWhitespace(desc), summaryMaxChars)
	}

	// First paragraph long enough to not be boilerplate or navigation text.
	summary := ""
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if len(text) > summaryMinParaLen {
			summary = Truncate(CollapseWhitespace(text), summaryMaxChars)
			return false
		}
		return true
	})
	return summary
}

func (e *Extractor) extractPublishedAt(doc *goquery.Document) string {
	if meta, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		if iso, ok := normalizeTime(meta); ok {
			return iso
		}
	}
	if dt, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		if iso, ok := normalizeTime(dt); ok {
			return iso
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func (e *Extractor) extractImage(doc *goquery.Document, pageURL string) string {
	img, ok := doc.Find(`meta[property="og:image"]`).Attr("content")
	if !ok || strings.TrimSpace(img) == "" {
		img, _ = doc.Find(`meta[name="twitter:image"]`).Attr("content")
	}

	if strings.TrimSpace(img) == "" {
		for _, container := range imageContainers {
			selector := "img[src]"
			if container != "" {
				selector = container + " img[src]"
			}
			if src, ok := doc.Find(selector).First().Attr("src"); ok && strings.TrimSpace(src) != "" {
				img = src
				break
			}
		}
	}

	img = strings.TrimSpace(img)
	if img == "" {
		return ""
	}

	img = urlutil.PreferHTTPS(urlutil.ToAbsolute(img, pageURL))
	return urlutil.Encode(img)
}

// OgImage returns the og:/twitter:image of a page, unnormalized. Used for RSS
// entries whose feed carries no enclosure.
func OgImage(htmlSrc string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return ""
	}
	if img, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && strings.TrimSpace(img) != "" {
		return strings.TrimSpace(img)
	}
	if img, ok := doc.Find(`meta[name="twitter:image"]`).Attr("content"); ok && strings.TrimSpace(img) != "" {
		return strings.TrimSpace(img)
	}
	return ""
}

// PlainText strips markup from an HTML fragment.
func PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return doc.Text()
}

// CollapseWhitespace reduces any whitespace run to a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate bounds s to max runes.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func normalizeTime(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return "", false
	}
	return t.UTC().Format(time.RFC3339), true
}
