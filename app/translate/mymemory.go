package translate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// myMemoryLimit stays under the service's 500-character request cap.
	myMemoryLimit          = 480
	defaultMyMemoryAPIBase = "https://api.mymemory.translated.net/get"
)

// MyMemory is the independent last-resort backend family. It rejects "auto"
// language detection; callers must supply a guessed source language.
type MyMemory struct {
	client   *resty.Client
	endpoint string
}

func NewMyMemory(timeout time.Duration) *MyMemory {
	return &MyMemory{
		client:   resty.New().SetTimeout(timeout),
		endpoint: defaultMyMemoryAPIBase,
	}
}

type myMemoryResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

func (b *MyMemory) Name() string {
	return "mymemory"
}

func (b *MyMemory) Limit() int {
	return myMemoryLimit
}

func (b *MyMemory) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == "" || source == "auto" {
		return "", fmt.Errorf("source language is required")
	}

	var out myMemoryResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetQueryParam("q", text).
		SetQueryParam("langpair", source+"|"+target).
		SetResult(&out).
		Get(b.endpoint)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode(), b.endpoint)
	}

	if out.ResponseData.TranslatedText == "" {
		return "", fmt.Errorf("response missing translatedText")
	}

	return out.ResponseData.TranslatedText, nil
}
