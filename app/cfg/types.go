package cfg

type Cfg struct {
	// Site configuration
	BaseUrl     string
	OutputDir   string
	SourcesFile string

	// Translation configuration
	TargetLang       string
	LTEndpoint       string
	LTAPIKey         string
	TranslateTimeout int

	// Fetching configuration
	UserAgent    string
	FetchTimeout int
	ImageProxy   string

	// Application metadata
	RenderPages bool
	Debug       bool
	Version     string
}
