package sources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the YAML source list.
func Load(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var list []Source
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	for i, src := range list {
		if err := validate(src); err != nil {
			return nil, fmt.Errorf("invalid source at index %d: %w", i, err)
		}
	}

	return list, nil
}

func validate(src Source) error {
	if src.Country == "" {
		return fmt.Errorf("country is required")
	}
	if src.URL == "" {
		return fmt.Errorf("url is required")
	}
	switch src.Type {
	case TypeRSS:
	case TypeScrape:
		if src.Pick.Selector == "" {
			return fmt.Errorf("scrape source requires a pick selector")
		}
	default:
		return fmt.Errorf("unknown source type: %q", src.Type)
	}
	return nil
}

// Countries returns the distinct country labels in first-seen order.
func Countries(list []Source) []string {
	seen := make(map[string]bool, len(list))
	countries := make([]string, 0, len(list))
	for _, src := range list {
		if seen[src.Country] {
			continue
		}
		seen[src.Country] = true
		countries = append(countries, src.Country)
	}
	return countries
}
