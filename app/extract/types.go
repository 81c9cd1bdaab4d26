package extract

// Content holds the fields extracted from one article page. Any field may be
// empty when nothing usable was found; PublishedAt always carries a value
// (collection time at worst).
type Content struct {
	Title       string
	Summary     string
	PublishedAt string
	ImageURL    string
}
