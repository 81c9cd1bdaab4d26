package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cuiamaster/comunistando/app/urlutil"
)

const libreTranslateLimit = 4000

// LibreTranslate talks to any LibreTranslate-compatible endpoint. Public
// instances disagree on the response shape, so both the object and the array
// form are accepted.
type LibreTranslate struct {
	client   *resty.Client
	endpoint string
	apiKey   string
}

func NewLibreTranslate(endpoint, apiKey string, timeout time.Duration) *LibreTranslate {
	return &LibreTranslate{
		client:   resty.New().SetTimeout(timeout),
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

type ltRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

func (b *LibreTranslate) Name() string {
	return "libretranslate/" + urlutil.Hostname(b.endpoint)
}

func (b *LibreTranslate) Limit() int {
	return libreTranslateLimit
}

func (b *LibreTranslate) Translate(ctx context.Context, text, source, target string) (string, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(ltRequest{Q: text, Source: source, Target: target, Format: "text", APIKey: b.apiKey}).
		Post(b.endpoint)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode(), b.endpoint)
	}

	return parseLTResponse(resp.Body())
}

// parseLTResponse accepts {"translatedText": ...} and [{"translatedText": ...}].
func parseLTResponse(body []byte) (string, error) {
	var obj struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.Unmarshal(body, &obj); err == nil && obj.TranslatedText != "" {
		return obj.TranslatedText, nil
	}

	var arr []struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.Unmarshal(body, &arr); err == nil && len(arr) > 0 && arr[0].TranslatedText != "" {
		return arr[0].TranslatedText, nil
	}

	return "", fmt.Errorf("response missing translatedText")
}
