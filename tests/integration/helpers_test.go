//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"testing"
	"time"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

// uniqueQuestion keeps runs against a shared database distinguishable.
func uniqueQuestion(label string) string {
	return fmt.Sprintf("%s %d?", label, time.Now().UnixNano())
}

func uploadFile(t *testing.T, field, filename, content string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	resp, err := http.Post(baseURL()+"/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

type quizItem struct {
	Question string `json:"question"`
	Answers  []struct {
		Text    string `json:"text"`
		Correct bool   `json:"correct"`
	} `json:"answers"`
}

func fetchQuiz(t *testing.T) []quizItem {
	t.Helper()
	resp, err := http.Get(baseURL() + "/api/quiz")
	if err != nil {
		t.Fatalf("quiz request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected quiz status: %d", resp.StatusCode)
	}
	var items []quizItem
	decodeJSON(t, resp, &items)
	return items
}
