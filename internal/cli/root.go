package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/terroirai/terroir-web/internal/build"
	"github.com/terroirai/terroir-web/internal/config"
	"github.com/terroirai/terroir-web/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultSiteBaseURL = "https://terroirai.com"
	defaultEnvFile     = ".env"
)

var (
	cfgFile       string
	envFile       string
	siteBaseURL   string
	apiBaseURL    string
	listenAddr    string
	corsOrigin    string
	outputDir     string
	userAgent     string
	reportTimeout time.Duration
	environment   string
	logLevel      string
	logFile       string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "terroir-web",
	Short: "Page runtime tooling for the Terroir AI marketing site.",
	Long: `terroir-web drives the page runtime of the Terroir AI site outside a
browser: it renders the synchronized head of any route, prerenders the static
routes to HTML files, and runs a development collector for analytics reports.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/terroir.json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file with TERROIR_* variables")
	rootCmd.PersistentFlags().StringVar(&siteBaseURL, "site-base-url", "", "absolute base of canonical URLs")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-base-url", "", "base URL of the analytics and content API")
	rootCmd.PersistentFlags().StringVar(&listenAddr, "listen-addr", "", "address the collector listens on")
	rootCmd.PersistentFlags().StringVar(&corsOrigin, "cors-origin", "", "Access-Control-Allow-Origin sent by the collector")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "root output directory for prerendered pages")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent sent with reports and content requests")
	rootCmd.PersistentFlags().DurationVar(&reportTimeout, "report-timeout", 0, "upper bound for a single analytics report")
	rootCmd.PersistentFlags().StringVar(&environment, "environment", "", "runtime environment (production switches logs to JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this rotated file")

	rootCmd.AddCommand(serveCmd, prerenderCmd, renderCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "terroir-web %s\n", build.FullVersion())
	},
}

// InitConfigWithError resolves the configuration.
//
// A config file, when given, is used as is. Otherwise defaults are built from
// the site base URL, then TERROIR_* variables (from the environment or the
// dotenv file) are applied, then explicitly set flags.
func InitConfigWithError() (config.Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return config.Config{}, err
	}

	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	// The site base flag outranks TERROIR_SITE_BASE_URL. Applying it as the
	// default keeps the derived default image in step with it.
	base := defaultSiteBaseURL
	getenv := os.Getenv
	if siteBaseURL != "" {
		base = siteBaseURL
		getenv = func(key string) string {
			if key == "TERROIR_SITE_BASE_URL" {
				return ""
			}
			return os.Getenv(key)
		}
	}
	configBuilder := config.WithDefault(base).WithEnvOverrides(getenv)

	if apiBaseURL != "" {
		configBuilder = configBuilder.WithAPIBaseURL(apiBaseURL)
	}

	if listenAddr != "" {
		configBuilder = configBuilder.WithListenAddr(listenAddr)
	}

	if corsOrigin != "" {
		configBuilder = configBuilder.WithCORSOrigin(corsOrigin)
	}

	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if reportTimeout > 0 {
		configBuilder = configBuilder.WithReportTimeout(reportTimeout)
	}

	if environment != "" {
		configBuilder = configBuilder.WithEnvironment(environment)
	}

	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}

	if logFile != "" {
		configBuilder = configBuilder.WithLogFile(logFile)
	}

	return configBuilder.Build()
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. The default file may be absent.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && path == defaultEnvFile {
		return nil
	}
	return fmt.Errorf("error loading env file %s: %w", path, err)
}

// initRuntime resolves config and builds the logger every subcommand uses.
func initRuntime() (config.Config, *zap.Logger, error) {
	cfg, err := InitConfigWithError()
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.NewLogger(cfg.LogLevel(), cfg.Environment(), cfg.LogFile())
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("error initializing logger: %w", err)
	}
	return cfg, log, nil
}

func ResetFlags() {
	cfgFile = ""
	envFile = ""
	siteBaseURL = ""
	apiBaseURL = ""
	listenAddr = ""
	corsOrigin = ""
	outputDir = ""
	userAgent = ""
	reportTimeout = 0
	environment = ""
	logLevel = ""
	logFile = ""
	shellFile = ""
	withPosts = false
	fullDocument = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetEnvFileForTest(path string) {
	envFile = path
}

func SetSiteBaseURLForTest(base string) {
	siteBaseURL = base
}

func SetAPIBaseURLForTest(base string) {
	apiBaseURL = base
}

func SetListenAddrForTest(addr string) {
	listenAddr = addr
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetReportTimeoutForTest(t time.Duration) {
	reportTimeout = t
}

func SetLogLevelForTest(level string) {
	logLevel = level
}

// ExecuteForTest runs the root command with args, writing to out.
func ExecuteForTest(args []string, out io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	return rootCmd.Execute()
}
