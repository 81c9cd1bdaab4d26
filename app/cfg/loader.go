package cfg

import (
	"cmp"
	"fmt"
	"log/slog"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Site configuration
	BaseUrl     string `long:"base-url" env:"BASE_URL" default:"https://cuiamaster.github.io/comunistando" description:"Public base URL of the generated site"`
	OutputDir   string `long:"output-dir" env:"OUTPUT_DIR" default:"./public" description:"Directory the static bundle is written to"`
	SourcesFile string `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file listing the news sources"`

	// Translation configuration
	TargetLang       string `long:"target-lang" env:"TARGET_LANG" default:"pt" description:"Target language for translation"`
	LTEndpoint       string `long:"lt-endpoint" env:"LT_ENDPOINT" default:"https://libretranslate.com/translate" description:"Primary LibreTranslate-compatible endpoint"`
	LTAPIKey         string `long:"lt-api-key" env:"LT_API_KEY" description:"API key for the primary translation endpoint (optional)"`
	TranslateTimeout int    `long:"translate-timeout" env:"TRANSLATE_TIMEOUT" default:"12" description:"Per-request translation timeout in seconds"`

	// Fetching configuration
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 ComunistandoBot" description:"User agent string for HTTP requests"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15" description:"Feed and page fetch timeout in seconds"`
	ImageProxy   string `long:"image-proxy" env:"IMAGE_PROXY" description:"Image proxy endpoint; empty disables proxying"`

	// Application metadata
	SkipPages bool `long:"skip-pages" env:"SKIP_PAGES" description:"Skip the translate-and-render phase (article pages)"`
	Debug     bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses the configuration from a .env file (when present), environment
// variables and command-line flags. Returns (nil, nil) when help was shown.
// The returned value is passed explicitly to every component; there is no
// package-global accessor.
func Load() (*Cfg, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables and flags only")
	}

	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		BaseUrl:          raw.BaseUrl,
		OutputDir:        raw.OutputDir,
		SourcesFile:      raw.SourcesFile,
		TargetLang:       raw.TargetLang,
		LTEndpoint:       raw.LTEndpoint,
		LTAPIKey:         raw.LTAPIKey,
		TranslateTimeout: raw.TranslateTimeout,
		UserAgent:        raw.UserAgent,
		FetchTimeout:     raw.FetchTimeout,
		ImageProxy:       raw.ImageProxy,
		RenderPages:      !raw.SkipPages,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	return cfg, nil
}
