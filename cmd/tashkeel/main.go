package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type tlsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type config struct {
	Addr      string    `yaml:"addr"`
	DBPath    string    `yaml:"db_path"`
	CorpusDir string    `yaml:"corpus_dir"`
	LogLevel  string    `yaml:"log_level"`
	TLS       tlsConfig `yaml:"tls"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "serve":
		cmdServe(args)
	case "mcp":
		cmdMCP(args)
	case "import":
		cmdImport(args)
	case "find":
		cmdFind(args)
	case "repl":
		cmdRepl(args)
	case "call":
		cmdCall(args)
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: tashkeel <command> [flags]

Commands:
  serve    Start the HTTP API (HTTP/3 and MCP over QUIC when TLS is enabled)
  mcp      Serve MCP over stdio
  import   Import corpus collections into the database
  find     Search a term in a text, ignoring diacritics
  repl     Interactive search
  call     Call an MCP tool on a remote server over QUIC
`)
}

func defaultConfig() config {
	return config{
		Addr:      ":8421",
		DBPath:    "tashkeel.db",
		CorpusDir: "corpus",
		LogLevel:  "info",
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TLS.Enabled && (cfg.TLS.CertFile == "") != (cfg.TLS.KeyFile == "") {
		return cfg, fmt.Errorf("config %s: tls.cert_file and tls.key_file must be set together", path)
	}
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s))))
	return level, err
}

func newLogger(level string) *slog.Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// mustConfig loads the config and builds the logger, exiting on error.
func mustConfig(path string) (config, *slog.Logger) {
	cfg, err := loadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		logger.Warn("unknown log level, using info", "log_level", cfg.LogLevel)
	}
	return cfg, logger
}
