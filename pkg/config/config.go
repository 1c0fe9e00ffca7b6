package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/nikogura/portfolio-cv/pkg/content"
	"github.com/nikogura/portfolio-cv/pkg/renderer"
)

// Defaults applied by Validate.
const (
	DefaultPublicDir   = "./public"
	DefaultListen      = ":8080"
	DefaultConcurrency = 4
	DefaultPrefix      = "cv/"
)

// Config represents the application configuration. Every field can be
// overridden from the environment; unset variables leave the file value alone.
type Config struct {
	Name            string        `json:"name" env:"PORTFOLIO_CV_NAME"`
	ContentLocation string        `json:"content_location" env:"PORTFOLIO_CV_CONTENT"`
	PublicDir       string        `json:"public_dir" env:"PORTFOLIO_CV_PUBLIC_DIR"`
	ProfileImage    string        `json:"profile_image,omitempty" env:"PORTFOLIO_CV_PROFILE_IMAGE"`
	Languages       []string      `json:"languages" env:"PORTFOLIO_CV_LANGUAGES" envSeparator:","`
	Formats         []string      `json:"formats" env:"PORTFOLIO_CV_FORMATS" envSeparator:","`
	Concurrency     int           `json:"concurrency,omitempty" env:"PORTFOLIO_CV_CONCURRENCY"`
	Server          ServerConfig  `json:"server" envPrefix:"PORTFOLIO_CV_"`
	Storage         StorageConfig `json:"storage"`
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	Listen string `json:"listen" env:"LISTEN"`
}

// StorageConfig holds artifact storage settings. Documents always land in
// the public dir; MinIO is an optional second destination.
type StorageConfig struct {
	MinIO MinIOConfig `json:"minio" envPrefix:"MINIO_"`
}

// MinIOConfig holds S3-compatible object storage settings.
type MinIOConfig struct {
	Enabled         bool   `json:"enabled" env:"ENABLED"`
	Endpoint        string `json:"endpoint" env:"ENDPOINT"`
	AccessKeyID     string `json:"access_key_id" env:"ACCESS_KEY_ID"`
	SecretAccessKey string `json:"secret_access_key" env:"SECRET_ACCESS_KEY"`
	UseSSL          bool   `json:"use_ssl" env:"USE_SSL"`
	Region          string `json:"region,omitempty" env:"REGION"`
	Bucket          string `json:"bucket" env:"BUCKET"`
	Prefix          string `json:"prefix" env:"PREFIX"`
}

// DefaultPath returns $HOME/.portfolio-cv/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".portfolio-cv", "config.json")
	return path, err
}

// Option adjusts a loaded configuration before it is validated.
type Option func(c *Config)

// WithContent overrides the content location, e.g. from a command argument.
func WithContent(location string) (opt Option) {
	opt = func(c *Config) {
		if location != "" {
			c.ContentLocation = location
		}
	}
	return opt
}

// Load reads configuration from file with environment variable overrides,
// then applies opts. A missing file at the default location is not an error
// when the environment or opts supply what Validate needs.
func Load(configPath string, opts ...Option) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'portfolio-cv init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = env.Parse(&cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to parse environment overrides")
		return cfg, err
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all required configuration is present and fills in
// defaults.
func (c *Config) Validate() (err error) {
	if c.ContentLocation == "" {
		err = errors.New("content_location is required (set in config or PORTFOLIO_CV_CONTENT env var)")
		return err
	}

	if c.PublicDir == "" {
		c.PublicDir = DefaultPublicDir
	}

	if len(c.Languages) == 0 {
		for _, lang := range content.Languages() {
			c.Languages = append(c.Languages, lang.String())
		}
	}
	_, err = content.ParseLanguages(c.Languages)
	if err != nil {
		err = errors.Wrap(err, "invalid languages")
		return err
	}

	if len(c.Formats) == 0 {
		for _, format := range renderer.Formats() {
			c.Formats = append(c.Formats, format.String())
		}
	}
	for _, format := range c.Formats {
		_, err = renderer.ParseFormat(format)
		if err != nil {
			err = errors.Wrap(err, "invalid formats")
			return err
		}
	}

	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}

	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}

	minio := &c.Storage.MinIO
	if minio.Enabled {
		if minio.Endpoint == "" {
			err = errors.New("storage.minio.endpoint is required when MinIO is enabled")
			return err
		}
		if minio.Bucket == "" {
			err = errors.New("storage.minio.bucket is required when MinIO is enabled")
			return err
		}
		if minio.Prefix == "" {
			minio.Prefix = DefaultPrefix
		}
	}

	return err
}

// ParsedLanguages returns the configured languages in order.
func (c *Config) ParsedLanguages() (langs []content.Language, err error) {
	langs, err = content.ParseLanguages(c.Languages)
	return langs, err
}

// ParsedFormats returns the configured formats in order.
func (c *Config) ParsedFormats() (formats []renderer.Format, err error) {
	for _, name := range c.Formats {
		var format renderer.Format
		format, err = renderer.ParseFormat(name)
		if err != nil {
			return formats, err
		}
		formats = append(formats, format)
	}
	return formats, err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		Name:            "your-name",
		ContentLocation: filepath.Join(dir, "content.json"),
		PublicDir:       DefaultPublicDir,
		ProfileImage:    "/profile.jpg",
		Languages:       []string{content.English.String(), content.German.String()},
		Formats:         []string{renderer.FormatPDF.String(), renderer.FormatDOCX.String()},
		Concurrency:     DefaultConcurrency,
		Server: ServerConfig{
			Listen: DefaultListen,
		},
		Storage: StorageConfig{
			MinIO: MinIOConfig{
				Endpoint: "localhost:9000",
				Bucket:   "portfolio",
				Prefix:   DefaultPrefix,
			},
		},
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
