package extract

import (
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const (
	previewMaxParagraphs = 3
	previewMinParaLen    = 50
	previewMaxChars      = 800
)

// placeholderParagraph is emitted when no paragraph qualifies for the
// fair-use excerpt.
const placeholderParagraph = "Resumo indisponível. Leia a matéria completa na fonte original."

// Preview builds a short fair-use excerpt from an article page: up to 3
// paragraphs of body text, each longer than 50 characters, bounded to roughly
// 800 characters in total. The result is escaped paragraph markup, safe to
// embed in a generated page.
func (e *Extractor) Preview(htmlSrc, pageURL string) string {
	paragraphs := readableParagraphs(htmlSrc, pageURL)
	if len(paragraphs) == 0 {
		paragraphs = documentParagraphs(htmlSrc)
	}

	if len(paragraphs) == 0 {
		return "<p>" + html.EscapeString(placeholderParagraph) + "</p>"
	}

	blocks := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		blocks = append(blocks, "<p>"+html.EscapeString(p)+"</p>")
	}
	return strings.Join(blocks, "\n")
}

// readableParagraphs runs the readability algorithm first so navigation and
// boilerplate are already stripped when the paragraph filter is applied.
func readableParagraphs(htmlSrc, pageURL string) []string {
	var base *url.URL
	if parsed, err := url.Parse(pageURL); err == nil {
		base = parsed
	}

	article, err := readability.FromReader(strings.NewReader(htmlSrc), base)
	if err != nil || article.Content == "" {
		return nil
	}
	return filterParagraphs(collectParagraphs(article.Content))
}

func documentParagraphs(htmlSrc string) []string {
	return filterParagraphs(collectParagraphs(htmlSrc))
}

func collectParagraphs(htmlSrc string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		paragraphs = append(paragraphs, CollapseWhitespace(sel.Text()))
	})
	return paragraphs
}

func filterParagraphs(paragraphs []string) []string {
	out := make([]string, 0, previewMaxParagraphs)
	total := 0
	for _, p := range paragraphs {
		if len(p) <= previewMinParaLen {
			continue
		}
		if total+len(p) > previewMaxChars {
			// A single oversized paragraph still yields an excerpt.
			if len(out) == 0 {
				out = append(out, Truncate(p, previewMaxChars))
			}
			break
		}
		out = append(out, p)
		total += len(p)
		if len(out) == previewMaxParagraphs {
			break
		}
	}
	return out
}
