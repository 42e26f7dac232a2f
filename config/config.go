// Package config loads the service configuration from a YAML file with
// environment variable overrides, through koanf.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	// Catalog configuration for product listing.
	Catalog *CatalogConfig `json:"catalog" yaml:"catalog"`

	// Bank configuration for transfer payments and statement verification.
	Bank *BankConfig `json:"bank" yaml:"bank"`

	// Upload configuration for product image storage.
	Upload *UploadConfig `json:"upload" yaml:"upload"`

	// Geo configuration for the province/district/ward directory.
	Geo *GeoConfig `json:"geo" yaml:"geo"`

	// QRCode configuration for payment QR rendering.
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// CatalogConfig defines product listing behaviour.
type CatalogConfig struct {
	PageSize int `json:"pageSize" yaml:"pageSize"`
}

// BankConfig defines the receiving account and the statement lookup API used
// to verify incoming transfers.
type BankConfig struct {
	BankCode      string `json:"bankCode" yaml:"bankCode"`
	BankBin       string `json:"bankBin" yaml:"bankBin"`
	AccountNumber string `json:"accountNumber" yaml:"accountNumber"`
	AccountName   string `json:"accountName" yaml:"accountName"`

	StatementURL string `json:"statementUrl" yaml:"statementUrl"`
	APIKey       string `json:"apiKey" yaml:"apiKey"`

	// PollInterval is the period between verification passes.
	PollInterval time.Duration `json:"pollInterval" yaml:"pollInterval"`
	// Lookback excludes orders older than this window from verification.
	Lookback time.Duration `json:"lookback" yaml:"lookback"`
	// LookupTimeout bounds a single statement API call.
	LookupTimeout time.Duration `json:"lookupTimeout" yaml:"lookupTimeout"`
}

// UploadConfig defines where uploaded product images land on disk.
type UploadConfig struct {
	Dir       string `json:"dir" yaml:"dir"`
	PublicURL string `json:"publicUrl" yaml:"publicUrl"`
}

// GeoConfig defines the upstream administrative-unit directory.
type GeoConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// QRCodeConfig defines payment QR rendering parameters.
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

const (
	defaultCatalogPageSize  = 12
	defaultBankPollInterval = time.Hour
	defaultBankLookback     = 7 * 24 * time.Hour
	defaultLookupTimeout    = 15 * time.Second
)

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: BANK_ACCOUNTNUMBER -> bank.accountNumber (not bank.accountnumber)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if cfg.Bank != nil && cfg.Bank.AccountNumber == "" {
		return nil, errors.New("bank.accountNumber must be set when bank payments are enabled")
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Catalog == nil {
		cfg.Catalog = &CatalogConfig{}
	}
	if cfg.Catalog.PageSize <= 0 {
		cfg.Catalog.PageSize = defaultCatalogPageSize
	}

	if cfg.Bank != nil {
		if cfg.Bank.PollInterval <= 0 {
			cfg.Bank.PollInterval = defaultBankPollInterval
		}
		if cfg.Bank.Lookback <= 0 {
			cfg.Bank.Lookback = defaultBankLookback
		}
		if cfg.Bank.LookupTimeout <= 0 {
			cfg.Bank.LookupTimeout = defaultLookupTimeout
		}
	}

	if cfg.Upload == nil {
		cfg.Upload = &UploadConfig{}
	}
	if cfg.Upload.Dir == "" {
		cfg.Upload.Dir = "uploads"
	}
	if cfg.Upload.PublicURL == "" {
		cfg.Upload.PublicURL = "/uploads"
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
