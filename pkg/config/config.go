// Package config loads settings from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting.
type Config struct {
	Port        string
	Mode        string
	DatabaseURL string
	APIKey      string
	MaxUploadMB int64
	LogLevel    string

	OCR        OCRConfig
	Completion CompletionConfig
}

// OCRConfig selects the OCR engine.
type OCRConfig struct {
	Engine        string
	AzureEndpoint string
	AzureKey      string
	TesseractLang string
	Keywords      []string
}

// CompletionConfig configures the question-answering model.
type CompletionConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int32
	Temperature float32
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Port:        "8080",
		Mode:        "debug",
		DatabaseURL: "bill_details.db",
		MaxUploadMB: 50,
		LogLevel:    "info",
		OCR: OCRConfig{
			Engine:        "tesseract",
			TesseractLang: "eng",
			Keywords:      []string{"total"},
		},
		Completion: CompletionConfig{
			Model:       "gemini-2.5-flash",
			MaxTokens:   256,
			Temperature: 0.7,
		},
	}
}

// Load reads the optional .env files and then the environment.
// A missing .env file is not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.Mode, "MODE")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.APIKey, "API_KEY")
	setString(&c.LogLevel, "LOG_LEVEL")

	setString(&c.OCR.Engine, "OCR_ENGINE")
	setString(&c.OCR.AzureEndpoint, "AZURE_VISION_ENDPOINT")
	setString(&c.OCR.AzureKey, "AZURE_VISION_KEY")
	setString(&c.OCR.TesseractLang, "TESSERACT_LANG")
	if v := os.Getenv("TOTAL_KEYWORDS"); v != "" {
		c.OCR.Keywords = splitList(v)
	}

	setString(&c.Completion.APIKey, "GEMINI_API_KEY")
	setString(&c.Completion.Model, "COMPLETION_MODEL")

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_UPLOAD_MB: %w", err)
		}
		c.MaxUploadMB = n
	}
	if v := os.Getenv("COMPLETION_MAX_TOKENS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("COMPLETION_MAX_TOKENS: %w", err)
		}
		c.Completion.MaxTokens = int32(n)
	}
	if v := os.Getenv("COMPLETION_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("COMPLETION_TEMPERATURE: %w", err)
		}
		c.Completion.Temperature = float32(f)
	}
	return nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB must be positive"))
	}
	switch c.OCR.Engine {
	case "tesseract":
	case "azure":
		if c.OCR.AzureEndpoint == "" || c.OCR.AzureKey == "" {
			errs = append(errs, errors.New("OCR_ENGINE=azure needs AZURE_VISION_ENDPOINT and AZURE_VISION_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown OCR_ENGINE %q", c.OCR.Engine))
	}
	if len(c.OCR.Keywords) == 0 {
		errs = append(errs, errors.New("TOTAL_KEYWORDS must name at least one keyword"))
	}
	return errors.Join(errs...)
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
