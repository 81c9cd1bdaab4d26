package translate

import (
	"context"
	"html"
	"regexp"
	"strings"
)

var (
	paragraphRe = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	tagRe       = regexp.MustCompile(`<[^>]*>`)
)

const paragraphSeparator = "\n\n"

// TranslateHTMLParagraphs translates the paragraph text of an HTML fragment,
// returning escaped <p> blocks in the target language. Paragraphs travel as a
// single blank-line-separated document so the backends see full context. When
// only the tight-budget backend is reachable, just the leading paragraphs are
// translated and the rest keep their original text.
func (e *Engine) TranslateHTMLParagraphs(ctx context.Context, fragment string) string {
	paragraphs := extractParagraphs(fragment)
	if len(paragraphs) == 0 {
		// A fragment without <p> markup is treated as plain text and comes
		// back escaped but unwrapped.
		return html.EscapeString(e.Translate(ctx, plainFragmentText(fragment)))
	}

	joined := strings.Join(paragraphs, paragraphSeparator)

	if out, ok := e.translatePrimary(ctx, joined, "auto"); ok {
		return wrapParagraphs(strings.Split(out, paragraphSeparator))
	}
	if GuessLanguage(joined) == defaultSourceLang {
		if out, ok := e.translatePrimary(ctx, joined, defaultSourceLang); ok {
			return wrapParagraphs(strings.Split(out, paragraphSeparator))
		}
	}

	// Degraded mode: the tight budget makes whole-article translation too
	// chatty, so only the opening paragraphs get translated.
	out := make([]string, len(paragraphs))
	copy(out, paragraphs)
	for i := 0; i < len(paragraphs) && i < 2; i++ {
		if translated, ok := e.translateSecondary(ctx, paragraphs[i]); ok {
			out[i] = translated
		}
	}
	return wrapParagraphs(out)
}

// extractParagraphs pulls the text of each <p> block, with inline tags
// stripped and entities decoded. Empty paragraphs are dropped.
func extractParagraphs(fragment string) []string {
	matches := paragraphRe.FindAllStringSubmatch(fragment, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		text := collapseText(m[1])
		if text == "" {
			continue
		}
		out = append(out, text)
	}
	return out
}

// plainFragmentText handles fragments without <p> markup: the whole fragment
// is treated as a single paragraph of plain text.
func plainFragmentText(fragment string) string {
	return collapseText(fragment)
}

func collapseText(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// wrapParagraphs renders text paragraphs as escaped <p> elements, one per
// line. Empty paragraphs are skipped.
func wrapParagraphs(paragraphs []string) string {
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, "<p>"+html.EscapeString(p)+"</p>")
	}
	return strings.Join(out, "\n")
}
