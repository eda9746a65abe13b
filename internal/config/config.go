package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeCLI    = "cli"
	ModeStdio  = "stdio"
	ModeServer = "server"

	// NER backend constants
	NERProse = "prose"
	NERLLM   = "llm"
	NERNone  = "none"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultFormat      = "json"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the resume parser
type Config struct {
	// Run mode: "cli" for one-shot parsing, "stdio"/"server" for MCP serving
	Mode string
	Host string
	Port int

	// Input configuration
	InputPath       string // single resume file (cli mode)
	ResumeDirectory string // directory of resumes (batch and serving modes)

	// Output configuration
	OutputPath      string // explicit output file for single parses
	OutputDirectory string // output directory for batch mode
	OutputFormat    string // json, csv or xlsx

	// NER configuration
	NERBackend string // prose, llm or none
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum input file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:            ModeCLI,
		Host:            DefaultHost,
		Port:            DefaultPort,
		ResumeDirectory: currentDir,
		OutputDirectory: filepath.Join(currentDir, "parsed"),
		OutputFormat:    DefaultFormat,
		NERBackend:      NERProse,
		LLMBaseURL:      "https://api.openai.com/v1",
		LLMModel:        "gpt-4o-mini",
		Version:         "1.0.0",
		ServerName:      "resume-parser",
		LogLevel:        DefaultLogLevel,
		MaxFileSize:     DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.ResumeDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.ResumeDirectory); err == nil {
			cfg.ResumeDirectory = expandedPath
		}
	}
	if cfg.InputPath != "" {
		if expandedPath, err := filepath.Abs(cfg.InputPath); err == nil {
			cfg.InputPath = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("RESUME")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("input", cfg.InputPath)
	viper.SetDefault("dir", cfg.ResumeDirectory)
	viper.SetDefault("output", cfg.OutputPath)
	viper.SetDefault("outdir", cfg.OutputDirectory)
	viper.SetDefault("format", cfg.OutputFormat)
	viper.SetDefault("ner", cfg.NERBackend)
	viper.SetDefault("llm-url", cfg.LLMBaseURL)
	viper.SetDefault("llm-model", cfg.LLMModel)
	viper.SetDefault("llm-api-key", "")
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'cli' for one-shot parsing, 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("input", cfg.InputPath, "Path to a single resume file to parse")
	pflag.String("dir", cfg.ResumeDirectory, "Directory containing resume files (batch mode)")
	pflag.String("output", cfg.OutputPath, "Output file path for a single parse (defaults next to the input)")
	pflag.String("outdir", cfg.OutputDirectory, "Output directory for batch results")
	pflag.String("format", cfg.OutputFormat, "Output format: json, csv or xlsx")
	pflag.String("ner", cfg.NERBackend, "NER backend: prose, llm or none")
	pflag.String("llm-url", cfg.LLMBaseURL, "Base URL of the OpenAI-compatible API (llm backend only)")
	pflag.String("llm-model", cfg.LLMModel, "Model name for the llm backend")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum input file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("outdir", pflag.Lookup("outdir"))
	_ = viper.BindPFlag("format", pflag.Lookup("format"))
	_ = viper.BindPFlag("ner", pflag.Lookup("ner"))
	_ = viper.BindPFlag("llm-url", pflag.Lookup("llm-url"))
	_ = viper.BindPFlag("llm-model", pflag.Lookup("llm-model"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nResume Parser - extracts contact details, sections and skills from resume files\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --input=resume.pdf                      # parse one file to resume_parsed.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input=resume.pdf --format=csv         # parse one file to CSV\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/resumes --outdir=parsed  # batch mode over a directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio --dir=/path/to/resumes     # MCP stdio server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  RESUME_MODE         Run mode\n")
		fmt.Fprintf(os.Stderr, "  RESUME_DIR          Resume directory\n")
		fmt.Fprintf(os.Stderr, "  RESUME_FORMAT       Output format\n")
		fmt.Fprintf(os.Stderr, "  RESUME_NER          NER backend\n")
		fmt.Fprintf(os.Stderr, "  RESUME_LLM_API_KEY  API key for the llm backend\n")
		fmt.Fprintf(os.Stderr, "  RESUME_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  RESUME_MAXFILESIZE  Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.InputPath = viper.GetString("input")
	cfg.ResumeDirectory = viper.GetString("dir")
	cfg.OutputPath = viper.GetString("output")
	cfg.OutputDirectory = viper.GetString("outdir")
	cfg.OutputFormat = strings.ToLower(viper.GetString("format"))
	cfg.NERBackend = strings.ToLower(viper.GetString("ner"))
	cfg.LLMBaseURL = viper.GetString("llm-url")
	cfg.LLMModel = viper.GetString("llm-model")
	cfg.LLMAPIKey = viper.GetString("llm-api-key")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeCLI && c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be one of 'cli', 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate output format
	switch c.OutputFormat {
	case "json", "csv", "xlsx":
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: json, csv, xlsx)", c.OutputFormat)
	}

	// Validate NER backend
	switch c.NERBackend {
	case NERProse, NERLLM, NERNone:
	default:
		return fmt.Errorf("invalid NER backend: %s (must be one of: prose, llm, none)", c.NERBackend)
	}
	if c.NERBackend == NERLLM && c.LLMAPIKey == "" {
		return errors.New("llm NER backend requires RESUME_LLM_API_KEY")
	}

	// Validate resume directory
	if c.ResumeDirectory == "" {
		return errors.New("resume directory cannot be empty")
	}

	// Check if resume directory exists, create if it doesn't
	if _, err := os.Stat(c.ResumeDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.ResumeDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create resume directory %s: %w", c.ResumeDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access resume directory %s: %w", c.ResumeDirectory, err)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, ResumeDirectory: %s, OutputFormat: %s, NERBackend: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.ResumeDirectory, c.OutputFormat, c.NERBackend, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if running as an HTTP MCP server
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if running as an MCP server over standard I/O
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// IsCLIMode returns true if running as a one-shot command line tool
func (c *Config) IsCLIMode() bool {
	return c.Mode == ModeCLI
}
