package news

// Item is one normalized news entry. The JSON field names are the data
// contract of the published news.json snapshot and must stay stable.
type Item struct {
	Country     string `json:"country"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	PublishedAt string `json:"publishedAt"`
	SourceName  string `json:"sourceName"`
	SourceURL   string `json:"sourceUrl"`
	ImageURL    string `json:"imageUrl"`
	Permalink   string `json:"permalink,omitempty"`
}
