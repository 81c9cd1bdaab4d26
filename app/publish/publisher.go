// Package publish assembles the static site bundle: the news.json snapshot,
// RSS feeds, the sitemap and the translated article pages.
package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Publisher writes the generated artifacts under the output directory.
type Publisher struct {
	outputDir string
	baseURL   string
}

func NewPublisher(outputDir, baseURL string) *Publisher {
	return &Publisher{
		outputDir: outputDir,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func (p *Publisher) writeFile(rel string, data []byte) error {
	full := filepath.Join(p.outputDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(full), err)
	}
	if err := atomicWrite(full, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}
