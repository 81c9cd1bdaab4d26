package translate

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// fallbackEndpoints are tried after the primary endpoint, in order. Same
// protocol, different hosts.
var fallbackEndpoints = []string{
	"https://translate.terraprint.co/translate",
	"https://libretranslate.de/translate",
}

type Config struct {
	Endpoint string // primary LibreTranslate-compatible endpoint
	APIKey   string
	Target   string
	Timeout  time.Duration
	Pacing   time.Duration // delay between successive backend calls; negative disables
}

// Engine is the resilient multi-backend translation pipeline. The cascade:
// primary endpoint with auto-detection, fallback endpoints, the same family
// with a forced source language when the text looks English, then the
// independent secondary family. When everything fails, the original text is
// returned unchanged.
type Engine struct {
	primary   []Backend
	secondary Backend
	target    string
	retry     Policy
	pacing    time.Duration
}

func NewEngine(config Config) *Engine {
	timeout := cmp.Or(config.Timeout, 12*time.Second)

	primary := []Backend{NewLibreTranslate(config.Endpoint, config.APIKey, timeout)}
	for _, endpoint := range fallbackEndpoints {
		primary = append(primary, NewLibreTranslate(endpoint, "", timeout))
	}

	return &Engine{
		primary:   primary,
		secondary: NewMyMemory(timeout),
		target:    cmp.Or(config.Target, "pt"),
		retry:     Policy{Attempts: 2, Delay: 600 * time.Millisecond},
		pacing:    cmp.Or(config.Pacing, 300*time.Millisecond),
	}
}

// Translate renders text into the target language. It never fails: when every
// backend is down or echoes the input, the original text comes back.
func (e *Engine) Translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	if out, ok := e.translatePrimary(ctx, text, "auto"); ok {
		return out
	}

	// Auto-detection is often wrong for short text; retry with the guessed
	// source forced when the text looks like the usual source language.
	if GuessLanguage(text) == defaultSourceLang {
		if out, ok := e.translatePrimary(ctx, text, defaultSourceLang); ok {
			return out
		}
	}

	if out, ok := e.translateSecondary(ctx, text); ok {
		return out
	}

	slog.Warn("All translation backends failed, keeping original text", "chars", len(text))
	return text
}

// translatePrimary runs the LibreTranslate family over fixed-size chunks.
// Chunks that no endpoint can translate keep their original text.
func (e *Engine) translatePrimary(ctx context.Context, text, source string) (string, bool) {
	blocks := Chunk(text, e.primary[0].Limit())
	out := make([]string, 0, len(blocks))
	translatedAny := false

	for _, block := range blocks {
		got := ""
		for _, backend := range e.primary {
			candidate, err := e.call(ctx, backend, block, source)
			if err != nil {
				slog.Debug("Translation backend failed", "backend", backend.Name(), "source", source, "error", err)
				continue
			}
			got = candidate
			break
		}
		if got == "" {
			out = append(out, block)
			continue
		}
		translatedAny = true
		out = append(out, got)
	}

	joined := strings.Join(out, "")
	if !translatedAny || echoed(text, joined) {
		return "", false
	}
	return joined, true
}

// translateSecondary runs the tight-budget backend with whitespace-aware
// chunking and a heuristically guessed source language.
func (e *Engine) translateSecondary(ctx context.Context, text string) (string, bool) {
	source := GuessLanguage(text)
	blocks := ChunkAtWhitespace(text, e.secondary.Limit())
	out := make([]string, 0, len(blocks))
	translatedAny := false

	for _, block := range blocks {
		got, err := e.call(ctx, e.secondary, block, source)
		if err != nil {
			slog.Debug("Translation backend failed", "backend", e.secondary.Name(), "source", source, "error", err)
			out = append(out, block)
			continue
		}
		translatedAny = true
		out = append(out, got)
	}

	joined := strings.Join(out, "")
	if !translatedAny || echoed(text, joined) {
		return "", false
	}
	return joined, true
}

// call wraps one backend invocation with pacing and the retry policy.
func (e *Engine) call(ctx context.Context, backend Backend, text, source string) (string, error) {
	var got string
	err := e.retry.Do(ctx, func() error {
		e.pace()
		candidate, err := backend.Translate(ctx, text, source, e.target)
		if err != nil {
			return err
		}
		if candidate == "" {
			return fmt.Errorf("empty translation")
		}
		got = candidate
		return nil
	})
	return got, err
}

func (e *Engine) pace() {
	if e.pacing > 0 {
		time.Sleep(e.pacing)
	}
}

// echoed reports whether a translation left the input effectively unchanged
// (case- and whitespace-insensitive compare).
func echoed(original, translated string) bool {
	return normalizeCompare(original) == normalizeCompare(translated)
}

func normalizeCompare(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
