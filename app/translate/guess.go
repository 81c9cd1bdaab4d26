package translate

import (
	"strings"
	"unicode"
)

// scriptLangs maps decisive non-Latin scripts to a language tag. Checked in
// order; the first script covering a meaningful share of the letters wins.
var scriptLangs = []struct {
	rangeTable *unicode.RangeTable
	lang       string
}{
	{unicode.Han, "zh"},
	{unicode.Hiragana, "ja"},
	{unicode.Katakana, "ja"},
	{unicode.Hangul, "ko"},
	{unicode.Cyrillic, "ru"},
	{unicode.Devanagari, "hi"},
	{unicode.Arabic, "ar"},
	{unicode.Greek, "el"},
}

// functionWords holds high-frequency words for the Latin-script candidate
// languages. Order matters: on a tie the earlier candidate wins.
var functionWords = []struct {
	lang  string
	words []string
}{
	{"en", []string{"the", "and", "of", "to", "in", "is", "that", "for", "with", "was"}},
	{"es", []string{"el", "la", "los", "las", "que", "y", "en", "un", "una", "por", "del"}},
	{"pt", []string{"o", "os", "as", "que", "e", "em", "um", "uma", "não", "para", "da", "do"}},
	{"fr", []string{"le", "les", "des", "et", "que", "en", "un", "une", "est", "dans"}},
	{"de", []string{"der", "die", "das", "und", "nicht", "ist", "ein", "eine", "mit", "zu"}},
}

// defaultSourceLang is the fallback when no signal is found; the configured
// sources are overwhelmingly English-language feeds.
const defaultSourceLang = "en"

// GuessLanguage returns a best-effort language tag for text. Script detection
// runs first (a non-Latin script is decisive), then function-word frequency
// for a few Latin-script languages, then the default. The guess only selects
// a source parameter for backends that reject "auto"; it never blocks
// translation.
func GuessLanguage(text string) string {
	letters := 0
	counts := make([]int, len(scriptLangs))
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		for i, s := range scriptLangs {
			if unicode.Is(s.rangeTable, r) {
				counts[i]++
				break
			}
		}
	}
	if letters == 0 {
		return defaultSourceLang
	}

	for i, s := range scriptLangs {
		if counts[i]*5 >= letters { // at least 20% of the letters
			return s.lang
		}
	}

	words := strings.Fields(strings.ToLower(text))
	best, bestHits := "", 0
	for _, candidate := range functionWords {
		hits := 0
		for _, w := range words {
			w = strings.Trim(w, ".,;:!?\"'()[]")
			for _, fw := range candidate.words {
				if w == fw {
					hits++
					break
				}
			}
		}
		if hits > bestHits {
			best, bestHits = candidate.lang, hits
		}
	}
	if bestHits >= 2 {
		return best
	}

	return defaultSourceLang
}
