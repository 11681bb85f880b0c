package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration loaded from environment
// variables, overridden by flags.
type Config struct {
	DBPath     string     // path to the catalog database
	ConfigFile string     // path to datapath.yaml
	LogLevel   slog.Level // slog level
}

// defaultDataPath returns ~/.datapath/<filename>, falling back to a
// CWD-relative path if the home directory can't be resolved.
func defaultDataPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filename
	}
	return filepath.Join(home, ".datapath", filename)
}

func loadConfig(args []string) (*Config, []string) {
	cfg := &Config{
		DBPath:     envOr("DATAPATH_DB", defaultDataPath("catalog.db")),
		ConfigFile: envOr("DATAPATH_CONFIG", defaultDataPath("datapath.yaml")),
		LogLevel:   parseLogLevel(envOr("DATAPATH_LOG_LEVEL", "info")),
	}
	rest := applyFlags(cfg, args)

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	return cfg, rest
}

// applyFlags parses --db=X style flags and returns the remaining
// positional arguments.
func applyFlags(cfg *Config, args []string) []string {
	var rest []string
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--db="):
			cfg.DBPath = arg[len("--db="):]
		case strings.HasPrefix(arg, "--config="):
			cfg.ConfigFile = arg[len("--config="):]
		case strings.HasPrefix(arg, "--log-level="):
			cfg.LogLevel = parseLogLevel(arg[len("--log-level="):])
		default:
			rest = append(rest, arg)
		}
	}
	return rest
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
