package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	//===============
	//  Site identity
	//===============
	// Display name appended to page titles and used as og:site_name
	siteName string
	// Absolute base of canonical URLs, e.g. https://terroirai.com
	siteBaseURL string
	// Image used for og:image / twitter:image when a page has none
	defaultImage string
	// og:locale value
	locale string
	// twitter:card value
	twitterCard string

	//===============
	// Tracking
	//===============
	// Base of the collection endpoint; reports go to <apiBaseURL>/analytics/*
	apiBaseURL string
	// Cookie holding the durable visitor identifier
	visitorCookie string
	// Lifetime of the visitor cookie in days
	visitorExpiryDays int
	// Cookie holding the session identifier (no explicit expiry)
	sessionCookie string
	// Upper bound for a single report round trip. Reports are never awaited,
	// this only bounds how long a detached report goroutine lives.
	reportTimeout time.Duration
	// User agent sent with reports
	userAgent string

	//===============
	// Collector / CLI
	//===============
	// Address the development collector listens on
	listenAddr string
	// Value of Access-Control-Allow-Origin on collector responses
	corsOrigin string
	// Root directory for prerendered pages
	outputDir string

	//===============
	// Logging
	//===============
	// "production" switches the logger to JSON
	environment string
	// zap level name
	logLevel string
	// Optional rotated log file
	logFile string
}

const defaultImagePath = "/assets/og-default.jpg"

type configDTO struct {
	SiteName          string        `json:"siteName,omitempty"`
	SiteBaseURL       string        `json:"siteBaseUrl"`
	DefaultImage      string        `json:"defaultImage,omitempty"`
	Locale            string        `json:"locale,omitempty"`
	TwitterCard       string        `json:"twitterCard,omitempty"`
	APIBaseURL        string        `json:"apiBaseUrl,omitempty"`
	VisitorCookie     string        `json:"visitorCookie,omitempty"`
	VisitorExpiryDays int           `json:"visitorExpiryDays,omitempty"`
	SessionCookie     string        `json:"sessionCookie,omitempty"`
	ReportTimeout     time.Duration `json:"reportTimeout,omitempty"`
	UserAgent         string        `json:"userAgent,omitempty"`
	ListenAddr        string        `json:"listenAddr,omitempty"`
	CORSOrigin        string        `json:"corsOrigin,omitempty"`
	OutputDir         string        `json:"outputDir,omitempty"`
	Environment       string        `json:"environment,omitempty"`
	LogLevel          string        `json:"logLevel,omitempty"`
	LogFile           string        `json:"logFile,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	builder := WithDefault(dto.SiteBaseURL)

	// Only override if a non-zero value is provided
	if dto.SiteName != "" {
		builder.siteName = dto.SiteName
	}
	if dto.DefaultImage != "" {
		builder.defaultImage = dto.DefaultImage
	}
	if dto.Locale != "" {
		builder.locale = dto.Locale
	}
	if dto.TwitterCard != "" {
		builder.twitterCard = dto.TwitterCard
	}
	if dto.APIBaseURL != "" {
		builder.apiBaseURL = dto.APIBaseURL
	}
	if dto.VisitorCookie != "" {
		builder.visitorCookie = dto.VisitorCookie
	}
	if dto.VisitorExpiryDays != 0 {
		builder.visitorExpiryDays = dto.VisitorExpiryDays
	}
	if dto.SessionCookie != "" {
		builder.sessionCookie = dto.SessionCookie
	}
	if dto.ReportTimeout != 0 {
		builder.reportTimeout = dto.ReportTimeout
	}
	if dto.UserAgent != "" {
		builder.userAgent = dto.UserAgent
	}
	if dto.ListenAddr != "" {
		builder.listenAddr = dto.ListenAddr
	}
	if dto.CORSOrigin != "" {
		builder.corsOrigin = dto.CORSOrigin
	}
	if dto.OutputDir != "" {
		builder.outputDir = dto.OutputDir
	}
	if dto.Environment != "" {
		builder.environment = dto.Environment
	}
	if dto.LogLevel != "" {
		builder.logLevel = dto.LogLevel
	}
	if dto.LogFile != "" {
		builder.logFile = dto.LogFile
	}

	return builder.Build()
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config with the provided site base URL and default values for all other fields.
// siteBaseURL is mandatory and must be an absolute URL - Build returns an error otherwise.
func WithDefault(siteBaseURL string) *Config {
	defaultConfig := Config{
		siteName:          "Terroir AI",
		siteBaseURL:       siteBaseURL,
		defaultImage:      siteBaseURL + defaultImagePath,
		locale:            "en_US",
		twitterCard:       "summary_large_image",
		apiBaseURL:        "http://localhost:8080/api",
		visitorCookie:     "terroir_vid",
		visitorExpiryDays: 365,
		sessionCookie:     "terroir_sid",
		reportTimeout:     10 * time.Second,
		userAgent:         "terroir-web/1.0",
		listenAddr:        ":8080",
		corsOrigin:        "*",
		outputDir:         "dist",
		environment:       "development",
		logLevel:          "info",
		logFile:           "",
	}
	return &defaultConfig
}

// WithEnvOverrides applies TERROIR_* variables read through getenv.
// Empty or unparseable values leave the current value untouched.
func (c *Config) WithEnvOverrides(getenv func(string) string) *Config {
	derivedImage := c.defaultImage == c.siteBaseURL+defaultImagePath
	stringVars := map[string]*string{
		"TERROIR_SITE_NAME":      &c.siteName,
		"TERROIR_SITE_BASE_URL":  &c.siteBaseURL,
		"TERROIR_DEFAULT_IMAGE":  &c.defaultImage,
		"TERROIR_API_BASE_URL":   &c.apiBaseURL,
		"TERROIR_USER_AGENT":     &c.userAgent,
		"TERROIR_LISTEN_ADDR":    &c.listenAddr,
		"TERROIR_CORS_ORIGIN":    &c.corsOrigin,
		"TERROIR_OUTPUT_DIR":     &c.outputDir,
		"TERROIR_ENVIRONMENT":    &c.environment,
		"TERROIR_LOG_LEVEL":      &c.logLevel,
		"TERROIR_LOG_FILE":       &c.logFile,
		"TERROIR_VISITOR_COOKIE": &c.visitorCookie,
		"TERROIR_SESSION_COOKIE": &c.sessionCookie,
	}
	for key, target := range stringVars {
		if value := getenv(key); value != "" {
			*target = value
		}
	}

	if derivedImage && getenv("TERROIR_DEFAULT_IMAGE") == "" {
		c.defaultImage = c.siteBaseURL + defaultImagePath
	}

	if value, err := strconv.Atoi(getenv("TERROIR_VISITOR_EXPIRY_DAYS")); err == nil {
		c.visitorExpiryDays = value
	}
	if value, err := time.ParseDuration(getenv("TERROIR_REPORT_TIMEOUT")); err == nil {
		c.reportTimeout = value
	}
	return c
}

func (c *Config) WithSiteName(name string) *Config {
	c.siteName = name
	return c
}

func (c *Config) WithSiteBaseURL(base string) *Config {
	c.siteBaseURL = base
	return c
}

func (c *Config) WithDefaultImage(image string) *Config {
	c.defaultImage = image
	return c
}

func (c *Config) WithLocale(locale string) *Config {
	c.locale = locale
	return c
}

func (c *Config) WithTwitterCard(card string) *Config {
	c.twitterCard = card
	return c
}

func (c *Config) WithAPIBaseURL(base string) *Config {
	c.apiBaseURL = base
	return c
}

func (c *Config) WithVisitorCookie(name string) *Config {
	c.visitorCookie = name
	return c
}

func (c *Config) WithVisitorExpiryDays(days int) *Config {
	c.visitorExpiryDays = days
	return c
}

func (c *Config) WithSessionCookie(name string) *Config {
	c.sessionCookie = name
	return c
}

func (c *Config) WithReportTimeout(timeout time.Duration) *Config {
	c.reportTimeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithListenAddr(addr string) *Config {
	c.listenAddr = addr
	return c
}

func (c *Config) WithCORSOrigin(origin string) *Config {
	c.corsOrigin = origin
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithEnvironment(env string) *Config {
	c.environment = env
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) WithLogFile(path string) *Config {
	c.logFile = path
	return c
}

func (c *Config) Build() (Config, error) {
	if err := requireAbsoluteURL("siteBaseUrl", c.siteBaseURL); err != nil {
		return Config{}, err
	}
	if err := requireAbsoluteURL("apiBaseUrl", c.apiBaseURL); err != nil {
		return Config{}, err
	}
	if c.siteName == "" {
		return Config{}, fmt.Errorf("%w: siteName cannot be empty", ErrInvalidConfig)
	}
	if c.visitorCookie == "" || c.sessionCookie == "" {
		return Config{}, fmt.Errorf("%w: cookie names cannot be empty", ErrInvalidConfig)
	}
	if c.visitorCookie == c.sessionCookie {
		return Config{}, fmt.Errorf("%w: visitor and session cookies must differ", ErrInvalidConfig)
	}
	if c.visitorExpiryDays <= 0 {
		return Config{}, fmt.Errorf("%w: visitorExpiryDays must be positive", ErrInvalidConfig)
	}
	if c.reportTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: reportTimeout must be positive", ErrInvalidConfig)
	}
	return *c, nil
}

func requireAbsoluteURL(field string, raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidConfig, field)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, err.Error())
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: %s must be absolute, got %q", ErrInvalidConfig, field, raw)
	}
	return nil
}

func (c Config) SiteName() string {
	return c.siteName
}

func (c Config) SiteBaseURL() string {
	return c.siteBaseURL
}

func (c Config) DefaultImage() string {
	return c.defaultImage
}

func (c Config) Locale() string {
	return c.locale
}

func (c Config) TwitterCard() string {
	return c.twitterCard
}

func (c Config) APIBaseURL() string {
	return c.apiBaseURL
}

func (c Config) VisitorCookie() string {
	return c.visitorCookie
}

func (c Config) VisitorExpiryDays() int {
	return c.visitorExpiryDays
}

func (c Config) SessionCookie() string {
	return c.sessionCookie
}

func (c Config) ReportTimeout() time.Duration {
	return c.reportTimeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) ListenAddr() string {
	return c.listenAddr
}

func (c Config) CORSOrigin() string {
	return c.corsOrigin
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) Environment() string {
	return c.environment
}

func (c Config) LogLevel() string {
	return c.logLevel
}

func (c Config) LogFile() string {
	return c.logFile
}
