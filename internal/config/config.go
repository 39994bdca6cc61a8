package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Storage  StorageConfig
	Encoder  EncoderConfig
	Matching MatchingConfig
	Upload   UploadConfig
	Log      LogConfig
}

type StorageConfig struct {
	BaseDir string // root for the bulk/, single/ and processed/ areas
}

type EncoderConfig struct {
	URL          string // face encoder service base URL (e.g. http://localhost:8000)
	MaxImageSize int    // maximum dimension (width or height) sent to the encoder
}

type MatchingConfig struct {
	Tolerance         float64 `yaml:"tolerance"`
	DistanceThreshold float64 `yaml:"distance_threshold"`
}

type UploadConfig struct {
	AllowedExtensions []string `yaml:"allowed_extensions"`
	MaxSizeMB         int64    `yaml:"max_size_mb"`
}

type LogConfig struct {
	File string // log file path; lines are mirrored to stdout
}

// MaxBytes returns the upload size limit in bytes.
func (u UploadConfig) MaxBytes() int64 {
	return u.MaxSizeMB << 20
}

// AllowedExtension reports whether filename carries an accepted image
// extension. The comparison is a case-insensitive suffix match.
func (u UploadConfig) AllowedExtension(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range u.AllowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

type defaults struct {
	Matching MatchingConfig `yaml:"matching"`
	Upload   UploadConfig   `yaml:"upload"`
}

// envString reads an environment variable, falling back to a default when
// the variable is unset or empty.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

func Load() *Config {
	var d defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	return &Config{
		Storage: StorageConfig{
			BaseDir: envString("BASE_DIR", "/app"),
		},
		Encoder: EncoderConfig{
			URL:          os.Getenv("ENCODER_URL"),
			MaxImageSize: envInt("ENCODER_MAX_IMAGE_SIZE", 1920),
		},
		Matching: MatchingConfig{
			Tolerance:         envFloat("MATCH_TOLERANCE", d.Matching.Tolerance),
			DistanceThreshold: envFloat("MATCH_DISTANCE_THRESHOLD", d.Matching.DistanceThreshold),
		},
		Upload: d.Upload,
		Log: LogConfig{
			File: envString("LOG_FILE", "api_logbook.log"),
		},
	}
}
