package sources

type Type string

const (
	TypeRSS    Type = "rss"
	TypeScrape Type = "scrape"
)

// Pick locates the first article link on a scraped listing page.
type Pick struct {
	Selector string `yaml:"selector"`
}

// Source is one configured origin of news, tagged with a country label.
// Immutable for the duration of a run.
type Source struct {
	Country string `yaml:"country"`
	Type    Type   `yaml:"type"`
	URL     string `yaml:"url"`
	Pick    Pick   `yaml:"pick"`
}
