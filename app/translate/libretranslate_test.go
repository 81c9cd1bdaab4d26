package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLibreTranslateRequest(t *testing.T) {
	var got ltRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translatedText": "olá mundo"}`))
	}))
	defer server.Close()

	backend := NewLibreTranslate(server.URL, "secret", 5*time.Second)
	out, err := backend.Translate(context.Background(), "hello world", "auto", "pt")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if out != "olá mundo" {
		t.Errorf("Expected translated text, got %q", out)
	}
	if got.Q != "hello world" || got.Source != "auto" || got.Target != "pt" {
		t.Errorf("Unexpected request payload: %+v", got)
	}
	if got.Format != "text" {
		t.Errorf("Expected plain text format, got %q", got.Format)
	}
	if got.APIKey != "secret" {
		t.Errorf("Expected the API key in the payload, got %q", got.APIKey)
	}
}

func TestLibreTranslateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	backend := NewLibreTranslate(server.URL, "", 5*time.Second)
	_, err := backend.Translate(context.Background(), "hello", "auto", "pt")

	if err == nil {
		t.Error("Expected an error for HTTP 503")
	}
}

func TestParseLTResponse(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"object form", `{"translatedText": "olá"}`, "olá", false},
		{"array form", `[{"translatedText": "olá"}]`, "olá", false},
		{"empty object", `{}`, "", true},
		{"empty array", `[]`, "", true},
		{"garbage", `not json`, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseLTResponse([]byte(tc.body))
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected an error for %q", tc.body)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}
