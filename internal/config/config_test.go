package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Empty env values are treated as unset.
	t.Setenv("BASE_DIR", "")
	t.Setenv("ENCODER_URL", "")
	t.Setenv("MATCH_TOLERANCE", "")
	t.Setenv("MATCH_DISTANCE_THRESHOLD", "")
	t.Setenv("LOG_FILE", "")

	cfg := Load()

	if cfg.Storage.BaseDir != "/app" {
		t.Errorf("expected default base dir '/app', got '%s'", cfg.Storage.BaseDir)
	}
	if cfg.Matching.Tolerance != 0.5 {
		t.Errorf("expected default tolerance 0.5, got %v", cfg.Matching.Tolerance)
	}
	if cfg.Matching.DistanceThreshold != 0.4 {
		t.Errorf("expected default distance threshold 0.4, got %v", cfg.Matching.DistanceThreshold)
	}
	if cfg.Log.File != "api_logbook.log" {
		t.Errorf("expected default log file 'api_logbook.log', got '%s'", cfg.Log.File)
	}
	if cfg.Encoder.MaxImageSize != 1920 {
		t.Errorf("expected default max image size 1920, got %d", cfg.Encoder.MaxImageSize)
	}
	if cfg.Upload.MaxBytes() != 100<<20 {
		t.Errorf("expected 100MB upload limit, got %d", cfg.Upload.MaxBytes())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BASE_DIR", "/data/faces")
	t.Setenv("ENCODER_URL", "http://encoder:8000")
	t.Setenv("MATCH_TOLERANCE", "0.6")
	t.Setenv("MATCH_DISTANCE_THRESHOLD", "0.35")
	t.Setenv("LOG_FILE", "/var/log/face-match.log")

	cfg := Load()

	if cfg.Storage.BaseDir != "/data/faces" {
		t.Errorf("expected base dir '/data/faces', got '%s'", cfg.Storage.BaseDir)
	}
	if cfg.Encoder.URL != "http://encoder:8000" {
		t.Errorf("expected encoder URL override, got '%s'", cfg.Encoder.URL)
	}
	if cfg.Matching.Tolerance != 0.6 {
		t.Errorf("expected tolerance 0.6, got %v", cfg.Matching.Tolerance)
	}
	if cfg.Matching.DistanceThreshold != 0.35 {
		t.Errorf("expected distance threshold 0.35, got %v", cfg.Matching.DistanceThreshold)
	}
	if cfg.Log.File != "/var/log/face-match.log" {
		t.Errorf("expected log file override, got '%s'", cfg.Log.File)
	}
}

func TestLoad_InvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("MATCH_TOLERANCE", "not-a-number")
	t.Setenv("MATCH_DISTANCE_THRESHOLD", "-1")
	t.Setenv("ENCODER_MAX_IMAGE_SIZE", "zero")

	cfg := Load()

	if cfg.Matching.Tolerance != 0.5 {
		t.Errorf("invalid tolerance should fall back to 0.5, got %v", cfg.Matching.Tolerance)
	}
	if cfg.Matching.DistanceThreshold != 0.4 {
		t.Errorf("negative threshold should fall back to 0.4, got %v", cfg.Matching.DistanceThreshold)
	}
	if cfg.Encoder.MaxImageSize != 1920 {
		t.Errorf("invalid max image size should fall back to 1920, got %d", cfg.Encoder.MaxImageSize)
	}
}

func TestAllowedExtension(t *testing.T) {
	cfg := Load()

	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{"jpg", "photo.jpg", true},
		{"jpeg", "photo.jpeg", true},
		{"png", "photo.png", true},
		{"uppercase", "PHOTO.JPG", true},
		{"mixed case", "Photo.JpEg", true},
		{"gif", "photo.gif", false},
		{"no extension", "photo", false},
		{"disguised executable", "photo.jpg.exe", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := cfg.Upload.AllowedExtension(tc.filename)
			if result != tc.expected {
				t.Errorf("AllowedExtension(%q) = %v; want %v", tc.filename, result, tc.expected)
			}
		})
	}
}
