package translate

import "unicode"

// Chunk splits text into blocks of at most size runes.
func Chunk(text string, size int) []string {
	if text == "" {
		return []string{""}
	}

	runes := []rune(text)
	out := make([]string, 0, len(runes)/size+1)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}

// ChunkAtWhitespace splits text into blocks of at most size runes, preferring
// to cut just after the last whitespace inside the budget so words stay
// intact. Concatenating the blocks restores the input exactly.
func ChunkAtWhitespace(text string, size int) []string {
	if text == "" {
		return []string{""}
	}

	runes := []rune(text)
	out := []string{}
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			break
		}

		cut := -1
		for i := end - 1; i > start; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i + 1 // keep the whitespace in the leading block
				break
			}
		}
		if cut == -1 {
			cut = end // no whitespace near, hard cut
		}

		out = append(out, string(runes[start:cut]))
		start = cut
	}
	return out
}
