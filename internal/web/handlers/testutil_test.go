package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkotas/face-match/internal/config"
	"github.com/mkotas/face-match/internal/recognizer"
	"github.com/mkotas/face-match/internal/store"
)

// testConfig creates a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		Matching: config.MatchingConfig{Tolerance: 0.5, DistanceThreshold: 0.4},
		Upload: config.UploadConfig{
			AllowedExtensions: []string{".jpg", ".jpeg", ".png"},
			MaxSizeMB:         100,
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubEncoder maps raw image content to canned encodings or a fixed error.
type stubEncoder struct {
	encodings map[string][]recognizer.Encoding
	err       error
}

func (s *stubEncoder) DetectAndEncode(_ context.Context, imageData []byte) ([]recognizer.Encoding, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.encodings[string(imageData)], nil
}

// newTestStore creates a file store rooted in a temp directory.
func newTestStore(t *testing.T) *store.FileStore {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return st
}

// seedBulk writes a candidate file into the bulk area.
func seedBulk(t *testing.T, st *store.FileStore, name, content string) {
	t.Helper()
	if _, err := st.Save(store.AreaBulk, name, bytes.NewReader([]byte(content))); err != nil {
		t.Fatalf("failed to seed bulk file %s: %v", name, err)
	}
}

// multipartRequest builds a POST /upload_and_match request. An empty
// fileName omits the file part entirely; a nil fields map omits json_data.
func multipartRequest(t *testing.T, fileName string, fileData []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(fileData); err != nil {
			t.Fatalf("failed to write file data: %v", err)
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/upload_and_match", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
