// Package config contains utilities for loading configs
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/go-playground/validator/v10"

	"github.com/matt-dz/tastetribe/internal/carousel"
)

const (
	configPathEnv         = "TASTETRIBE_CONFIG"
	defaultConfigFilePath = "/data/tastetribe.yaml"
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

const (
	defaultLogLevel          = "info"
	defaultBaseURL           = "https://tastetribe-2-0-wmre.onrender.com"
	defaultTimeout           = 15 * time.Second
	defaultRetryMax          = 2
	defaultRequestsPerSecond = 20
	defaultBurst             = 10
	defaultMaxConcurrency    = 8
	defaultCarouselPeriod    = 5 * time.Second
	defaultNarrowWidth       = 640
	defaultMediumWidth       = 1024
	defaultServerPort        = 8080
	defaultAllowedOrigins    = "http://localhost:3001"
	defaultScreenTTL         = 15 * time.Minute
	defaultMaxScreens        = 256
)

func splitFieldList(param string) []string {
	// "A,B,C" or "A B C"
	param = strings.ReplaceAll(param, " ", ",")
	parts := strings.Split(param, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ascending implements a cross-field validator for go-playground/validator.
//
// It requires the integer fields named in the tag parameter to be strictly
// increasing in the order given (e.g. `validate:"ascending=A,B"` means
// A < B). Like the other cross-field rules it is attached to a placeholder
// field and inspects the parent struct.
//
// If the parent is not a struct, a referenced field does not exist or is not
// an integer, or fewer than two names are given, validation fails to signal
// misconfiguration.
func ascending(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		if parent.IsNil() {
			return true // nothing to validate
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}

	names := splitFieldList(fl.Param())
	//nolint:mnd
	if len(names) < 2 {
		return false
	}

	var prev int64
	for i, name := range names {
		f := parent.FieldByName(name)
		if !f.IsValid() || !f.CanInt() {
			return false // field name typo / not an integer
		}
		if i > 0 && f.Int() <= prev {
			return false
		}
		prev = f.Int()
	}

	return true
}

func registerAscending(v *validator.Validate) {
	_ = v.RegisterValidation("ascending", ascending)
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		if e.Tag() == "ascending" {
			// e.g., "Config.Carousel.Validate" -> "Carousel"
			parts := strings.Split(e.Namespace(), ".")
			var structName string
			//nolint:mnd
			if len(parts) >= 2 {
				structName = parts[len(parts)-2]
			}
			return fmt.Errorf("%s configuration is invalid: %s must be strictly increasing",
				structName, strings.Join(splitFieldList(e.Param()), " < "))
		}
	}

	return err
}

type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
}

type API struct {
	BaseURL           string        `yaml:"base_url" validate:"required,url"`
	Timeout           time.Duration `yaml:"timeout" validate:"gt=0"`
	RetryMax          int           `yaml:"retry_max" validate:"min=0,max=10"`
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int           `yaml:"burst" validate:"min=1"`
}

type Bookmarks struct {
	MaxConcurrency int `yaml:"max_concurrency" validate:"min=1,max=64"`
}

type Carousel struct {
	Period      time.Duration `yaml:"period" validate:"gt=0"`
	NarrowWidth int           `yaml:"narrow_width" validate:"gt=0"`
	MediumWidth int           `yaml:"medium_width" validate:"gt=0"`

	Validate struct{} `yaml:"-" validate:"ascending=NarrowWidth MediumWidth"`
}

// Breakpoints returns the viewport widths as carousel breakpoints.
func (c Carousel) Breakpoints() carousel.Breakpoints {
	return carousel.Breakpoints{Narrow: c.NarrowWidth, Medium: c.MediumWidth}
}

type Session struct {
	Secret string `yaml:"secret"`
	Token  string `yaml:"token"`
}

type Server struct {
	Port           uint16   `yaml:"port" validate:"gt=0"`
	AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,url"`

	// ScreenTTL is how long a mounted screen may sit idle before it is
	// unmounted.
	ScreenTTL  time.Duration `yaml:"screen_ttl" validate:"gt=0"`
	MaxScreens int           `yaml:"max_screens" validate:"min=1,max=100000"`
}

type Config struct {
	Env       string    `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
	Log       Log       `yaml:"log"`
	API       API       `yaml:"api"`
	Bookmarks Bookmarks `yaml:"bookmarks"`
	Carousel  Carousel  `yaml:"carousel"`
	Session   Session   `yaml:"session"`
	Server    Server    `yaml:"server"`
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func validateConfig(conf Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	registerAscending(validate)
	if err := validate.Struct(conf); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func loadConfigFromEnv() (Config, error) {
	conf := Config{
		Env: loadWithDefault("ENV", EnvDev),
		Log: Log{Level: loadWithDefault("LOG_LEVEL", defaultLogLevel)},
		Session: Session{
			Secret: loadWithDefault("SESSION_SECRET", ""),
			Token:  loadWithDefault("TASTETRIBE_TOKEN", ""),
		},
	}

	// API
	conf.API.BaseURL = loadWithDefault("API_BASE_URL", defaultBaseURL)
	timeout := loadWithDefault("API_TIMEOUT", defaultTimeout.String())
	if d, err := time.ParseDuration(timeout); err != nil {
		return conf, fmt.Errorf("invalid API_TIMEOUT (%q): %w", timeout, err)
	} else {
		conf.API.Timeout = d
	}
	retryMax := loadWithDefault("API_RETRY_MAX", strconv.Itoa(defaultRetryMax))
	if n, err := strconv.Atoi(retryMax); err != nil {
		return conf, fmt.Errorf("invalid API_RETRY_MAX (%q): %w", retryMax, err)
	} else {
		conf.API.RetryMax = n
	}
	rps := loadWithDefault("API_REQUESTS_PER_SECOND", strconv.Itoa(defaultRequestsPerSecond))
	if f, err := strconv.ParseFloat(rps, 64); err != nil {
		return conf, fmt.Errorf("invalid API_REQUESTS_PER_SECOND (%q): %w", rps, err)
	} else {
		conf.API.RequestsPerSecond = f
	}
	burst := loadWithDefault("API_BURST", strconv.Itoa(defaultBurst))
	if n, err := strconv.Atoi(burst); err != nil {
		return conf, fmt.Errorf("invalid API_BURST (%q): %w", burst, err)
	} else {
		conf.API.Burst = n
	}

	// Bookmarks
	maxConcurrency := loadWithDefault("BOOKMARKS_MAX_CONCURRENCY", strconv.Itoa(defaultMaxConcurrency))
	if n, err := strconv.Atoi(maxConcurrency); err != nil {
		return conf, fmt.Errorf("invalid BOOKMARKS_MAX_CONCURRENCY (%q): %w", maxConcurrency, err)
	} else {
		conf.Bookmarks.MaxConcurrency = n
	}

	// Carousel
	period := loadWithDefault("CAROUSEL_PERIOD", defaultCarouselPeriod.String())
	if d, err := time.ParseDuration(period); err != nil {
		return conf, fmt.Errorf("invalid CAROUSEL_PERIOD (%q): %w", period, err)
	} else {
		conf.Carousel.Period = d
	}
	narrow := loadWithDefault("CAROUSEL_NARROW_WIDTH", strconv.Itoa(defaultNarrowWidth))
	if n, err := strconv.Atoi(narrow); err != nil {
		return conf, fmt.Errorf("invalid CAROUSEL_NARROW_WIDTH (%q): %w", narrow, err)
	} else {
		conf.Carousel.NarrowWidth = n
	}
	medium := loadWithDefault("CAROUSEL_MEDIUM_WIDTH", strconv.Itoa(defaultMediumWidth))
	if n, err := strconv.Atoi(medium); err != nil {
		return conf, fmt.Errorf("invalid CAROUSEL_MEDIUM_WIDTH (%q): %w", medium, err)
	} else {
		conf.Carousel.MediumWidth = n
	}

	// Server
	port := loadWithDefault("SERVER_PORT", strconv.Itoa(defaultServerPort))
	if p, err := strconv.ParseUint(port, 10, 16); err != nil {
		return conf, fmt.Errorf("invalid SERVER_PORT (%q): %w", port, err)
	} else {
		conf.Server.Port = uint16(p)
	}
	conf.Server.AllowedOrigins = splitFieldList(loadWithDefault("SERVER_ALLOWED_ORIGINS", defaultAllowedOrigins))
	screenTTL := loadWithDefault("SERVER_SCREEN_TTL", defaultScreenTTL.String())
	if d, err := time.ParseDuration(screenTTL); err != nil {
		return conf, fmt.Errorf("invalid SERVER_SCREEN_TTL (%q): %w", screenTTL, err)
	} else {
		conf.Server.ScreenTTL = d
	}
	maxScreens := loadWithDefault("SERVER_MAX_SCREENS", strconv.Itoa(defaultMaxScreens))
	if n, err := strconv.Atoi(maxScreens); err != nil {
		return conf, fmt.Errorf("invalid SERVER_MAX_SCREENS (%q): %w", maxScreens, err)
	} else {
		conf.Server.MaxScreens = n
	}

	if err := validateConfig(conf); err != nil {
		return conf, err
	}

	return conf, nil
}

func applyDefaults(config *Config) {
	if config.Env == "" {
		config.Env = EnvDev
	}
	if config.Log.Level == "" {
		config.Log.Level = defaultLogLevel
	}
	if config.API.BaseURL == "" {
		config.API.BaseURL = defaultBaseURL
	}
	if config.API.Timeout == 0 {
		config.API.Timeout = defaultTimeout
	}
	if config.API.RequestsPerSecond == 0 {
		config.API.RequestsPerSecond = defaultRequestsPerSecond
	}
	if config.API.Burst == 0 {
		config.API.Burst = defaultBurst
	}
	if config.Bookmarks.MaxConcurrency == 0 {
		config.Bookmarks.MaxConcurrency = defaultMaxConcurrency
	}
	if config.Carousel.Period == 0 {
		config.Carousel.Period = defaultCarouselPeriod
	}
	if config.Carousel.NarrowWidth == 0 {
		config.Carousel.NarrowWidth = defaultNarrowWidth
	}
	if config.Carousel.MediumWidth == 0 {
		config.Carousel.MediumWidth = defaultMediumWidth
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaultServerPort
	}
	if len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = splitFieldList(defaultAllowedOrigins)
	}
	if config.Server.ScreenTTL == 0 {
		config.Server.ScreenTTL = defaultScreenTTL
	}
	if config.Server.MaxScreens == 0 {
		config.Server.MaxScreens = defaultMaxScreens
	}
}

func loadConfigFromFile(path string) (Config, error) {
	// Read file
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	// Unmarshal into config
	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	// An explicit retry_max of 0 disables retries, so only a missing key
	// gets the default.
	var explicit struct {
		API struct {
			RetryMax *int `yaml:"retry_max"`
		} `yaml:"api"`
	}
	if err := yaml.Unmarshal(contents, &explicit); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	if explicit.API.RetryMax == nil {
		config.API.RetryMax = defaultRetryMax
	}

	applyDefaults(&config)

	// The token is a credential; let the environment supply it even when
	// everything else comes from the file.
	if config.Session.Token == "" {
		config.Session.Token = os.Getenv("TASTETRIBE_TOKEN")
	}

	if err := validateConfig(config); err != nil {
		return Config{}, err
	}

	return config, nil
}

func configFileExists(path string) bool {
	f, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return !f.IsDir()
}

// LoadConfig reads the YAML file named by TASTETRIBE_CONFIG when it exists
// and falls back to environment variables otherwise.
func LoadConfig() (Config, error) {
	path := loadWithDefault(configPathEnv, defaultConfigFilePath)
	if configFileExists(path) {
		return loadConfigFromFile(path)
	}

	return loadConfigFromEnv()
}
