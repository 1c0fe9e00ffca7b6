package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, cfg Config) (path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	testConfig := Config{
		Name:            "test-user",
		ContentLocation: "content.yaml",
		PublicDir:       "./site/public",
		Languages:       []string{"de"},
	}

	cfg, err := Load(writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ContentLocation != testConfig.ContentLocation {
		t.Errorf("Expected content location %s, got %s", testConfig.ContentLocation, cfg.ContentLocation)
	}

	if !reflect.DeepEqual(cfg.Languages, []string{"de"}) {
		t.Errorf("Expected languages [de], got %v", cfg.Languages)
	}

	if !reflect.DeepEqual(cfg.Formats, []string{"pdf", "docx"}) {
		t.Errorf("Expected default formats, got %v", cfg.Formats)
	}

	if cfg.Server.Listen != DefaultListen {
		t.Errorf("Expected default listen address, got %s", cfg.Server.Listen)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, Config{
		Name:            "test-user",
		ContentLocation: "content.json",
		PublicDir:       "./public",
	})

	t.Setenv("PORTFOLIO_CV_CONTENT", "https://example.com/content.json")
	t.Setenv("PORTFOLIO_CV_LANGUAGES", "de,en")
	t.Setenv("PORTFOLIO_CV_LISTEN", ":9090")
	t.Setenv("MINIO_ENABLED", "true")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_BUCKET", "cv")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ContentLocation != "https://example.com/content.json" {
		t.Errorf("Expected env content location, got %s", cfg.ContentLocation)
	}
	if !reflect.DeepEqual(cfg.Languages, []string{"de", "en"}) {
		t.Errorf("Expected env languages, got %v", cfg.Languages)
	}
	if cfg.Server.Listen != ":9090" {
		t.Errorf("Expected env listen address, got %s", cfg.Server.Listen)
	}
	if !cfg.Storage.MinIO.Enabled || cfg.Storage.MinIO.Endpoint != "minio:9000" {
		t.Errorf("Expected MinIO from env, got %+v", cfg.Storage.MinIO)
	}
	if cfg.Storage.MinIO.Prefix != DefaultPrefix {
		t.Errorf("Expected default prefix, got %s", cfg.Storage.MinIO.Prefix)
	}

	// Untouched by the environment.
	if cfg.PublicDir != "./public" {
		t.Errorf("Expected file public dir, got %s", cfg.PublicDir)
	}
}

func TestLoadWithContent(t *testing.T) {
	path := writeConfig(t, Config{ContentLocation: "content.json"})

	cfg, err := Load(path, WithContent("other.yaml"), WithContent(""))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.ContentLocation != "other.yaml" {
		t.Errorf("Expected overridden content location, got %s", cfg.ContentLocation)
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/path/config.json")
	if err == nil {
		t.Error("Expected error loading nonexistent config, got nil")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte("{not json"), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err = Load(path)
	if err == nil {
		t.Error("Expected error loading malformed config, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name: "valid config",
			config: Config{
				Name:            "test-user",
				ContentLocation: "content.json",
			},
			wantError: false,
		},
		{
			name:      "missing content location",
			config:    Config{Name: "test-user"},
			wantError: true,
		},
		{
			name: "unsupported language",
			config: Config{
				ContentLocation: "content.json",
				Languages:       []string{"en", "fr"},
			},
			wantError: true,
		},
		{
			name: "unsupported format",
			config: Config{
				ContentLocation: "content.json",
				Formats:         []string{"odt"},
			},
			wantError: true,
		},
		{
			name: "minio without bucket",
			config: Config{
				ContentLocation: "content.json",
				Storage:         StorageConfig{MinIO: MinIOConfig{Enabled: true, Endpoint: "localhost:9000"}},
			},
			wantError: true,
		},
		{
			name: "minio disabled ignores missing fields",
			config: Config{
				ContentLocation: "content.json",
				Storage:         StorageConfig{MinIO: MinIOConfig{Endpoint: "localhost:9000"}},
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{ContentLocation: "content.json"}

	err := cfg.Validate()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.PublicDir != DefaultPublicDir {
		t.Errorf("Expected default public dir, got %s", cfg.PublicDir)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("Expected default concurrency, got %d", cfg.Concurrency)
	}

	langs, err := cfg.ParsedLanguages()
	if err != nil || len(langs) != 2 {
		t.Errorf("Expected both languages, got %v (%v)", langs, err)
	}

	formats, err := cfg.ParsedFormats()
	if err != nil || len(formats) != 2 {
		t.Errorf("Expected both formats, got %v (%v)", formats, err)
	}
}

func TestInitConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	// A freshly written starter config must load and validate.
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load starter config: %v", err)
	}

	if cfg.Name == "" {
		t.Error("Default name was not set")
	}

	if cfg.ContentLocation != filepath.Join(tmpDir, "content.json") {
		t.Errorf("Expected content next to config, got %s", cfg.ContentLocation)
	}
}

func TestInitConfigAlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	// Create file first.
	err := os.WriteFile(configPath, []byte("{}"), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	// Try to init - should fail.
	err = InitConfig(configPath)
	if err == nil {
		t.Error("Expected error when config already exists, got nil")
	}
}
