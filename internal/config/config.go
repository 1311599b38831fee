package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey       string   `json:"gemini_api_key,omitempty"`
	GeminiModel        string   `json:"gemini_model"`
	SheetID            string   `json:"sheet_id,omitempty"`
	ServiceAccountJSON string   `json:"service_account_json,omitempty"`
	Language           string   `json:"language"`
	AllowedDomains     []string `json:"allowed_domains"`
	UserEmail          string   `json:"user_email,omitempty"`
	RubricPath         string   `json:"rubric_path,omitempty"`
	DefaultProduct     string   `json:"default_product"`
	DefaultModule      string   `json:"default_module"`
	DefaultLocale      string   `json:"default_locale"`
	PathFile           string   `json:"path_file"`
}

const (
	defaultLang    = "en"
	defaultProduct = "TMS"
	defaultModule  = "Connectors"
	defaultLocale  = "en"
	defaultModel   = "gemini-1.5-flash"
)

var defaultAllowedDomains = []string{"gmail.com"}

// LoadConfig reads the config file under path (or the file itself when a
// .json path is given), creating a default one on first run. Values from the
// environment win over the file; a .env file is honored when present.
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".supporthub")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("creating config directory: %w", err)
			}
		}
	}

	cfg, err := loadOrCreate(configPath)
	if err != nil {
		return nil, err
	}

	_ = godotenv.Load()
	applyEnvOverrides(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("loaded configuration is invalid: %w", err)
	}
	return cfg, nil
}

func loadOrCreate(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding config file: %w", err)
	}
	cfg.PathFile = configPath
	applyDefaults(&cfg)
	return &cfg, nil
}

func createDefaultConfig(path string) (*Config, error) {
	cfg := &Config{PathFile: path}
	applyDefaults(cfg)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	if err := writeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Language == "" {
		cfg.Language = defaultLang
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaultModel
	}
	if cfg.DefaultProduct == "" {
		cfg.DefaultProduct = defaultProduct
	}
	if cfg.DefaultModule == "" {
		cfg.DefaultModule = defaultModule
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = defaultLocale
	}
	if len(cfg.AllowedDomains) == 0 {
		cfg.AllowedDomains = append([]string(nil), defaultAllowedDomains...)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("GOOGLE_SHEET_ID"); v != "" {
		cfg.SheetID = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"); v != "" {
		cfg.ServiceAccountJSON = v
	}
	if v := os.Getenv("SUPPORTHUB_ALLOWED_DOMAINS"); v != "" {
		cfg.AllowedDomains = splitDomains(v)
	}
	if v := os.Getenv("SUPPORTHUB_USER_EMAIL"); v != "" {
		cfg.UserEmail = v
	}
}

func splitDomains(raw string) []string {
	var domains []string
	for _, d := range strings.Split(raw, ",") {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}

func SaveConfig(cfg *Config) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration to save is invalid: %w", err)
	}
	if cfg.PathFile == "" {
		return errors.New("config file path is not set")
	}
	return writeConfig(cfg)
}

func writeConfig(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	if err := os.WriteFile(cfg.PathFile, data, 0600); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Language == "" {
		return errors.New("language must not be empty")
	}
	if cfg.GeminiModel == "" {
		return errors.New("gemini model must not be empty")
	}
	return nil
}

// MissingKeys lists the credentials a fully configured deployment needs.
// Evaluation commands fail fast on a missing Gemini key, persistence
// commands on the sheet credentials.
func (c *Config) MissingKeys() []string {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.SheetID == "" {
		missing = append(missing, "GOOGLE_SHEET_ID")
	}
	if c.ServiceAccountJSON == "" {
		missing = append(missing, "GOOGLE_SERVICE_ACCOUNT_JSON")
	}
	return missing
}

// ServiceAccount returns the service-account credentials, reading them from
// disk when the configured value is a file path rather than inline JSON.
func (c *Config) ServiceAccount() ([]byte, error) {
	raw := strings.TrimSpace(c.ServiceAccountJSON)
	if raw == "" {
		return nil, errors.New("service account JSON not configured")
	}
	if strings.HasPrefix(raw, "{") {
		return []byte(raw), nil
	}
	data, err := os.ReadFile(raw)
	if err != nil {
		return nil, fmt.Errorf("reading service account file: %w", err)
	}
	return data, nil
}

// DomainAllowed reports whether an email's domain is on the allow list. An
// empty list allows everyone.
func (c *Config) DomainAllowed(email string) bool {
	if len(c.AllowedDomains) == 0 {
		return true
	}
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return false
	}
	domain = strings.ToLower(domain)
	for _, allowed := range c.AllowedDomains {
		if domain == allowed {
			return true
		}
	}
	return false
}
