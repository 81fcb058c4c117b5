package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings songmatch reads from its config file.
type Config struct {
	ServerURL  string
	Timeout    time.Duration
	PageLimit  int
	PollEvery  time.Duration
	LogFile    string
	LogLevel   string
	SourcePath string // file the values came from; empty when defaults were used
}

const (
	defaultConfigPath = "~/.config/songmatch/config.toml"
	defaultLogFile    = "~/.local/share/songmatch/songmatch.log"
	defaultServerURL  = "127.0.0.1:3000"
	defaultTimeoutMS  = 5000
	defaultPageLimit  = 14
	defaultPollSecs   = 10
	defaultLogLevel   = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		ServerURL: defaultServerURL,
		Timeout:   defaultTimeoutMS * time.Millisecond,
		PageLimit: defaultPageLimit,
		PollEvery: defaultPollSecs * time.Second,
		LogFile:   mustExpand(defaultLogFile),
		LogLevel:  defaultLogLevel,
	}
}

// Load locates and parses the songmatch config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ServerURL   string `toml:"server_url"`
		TimeoutMS   int    `toml:"timeout_ms"`
		PageLimit   int    `toml:"page_limit"`
		PollSeconds int    `toml:"poll_seconds"`
		LogFile     string `toml:"log_file"`
		LogLevel    string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.SourcePath = resolved
	if v := strings.TrimSpace(raw.ServerURL); v != "" {
		cfg.ServerURL = v
	}
	if raw.TimeoutMS > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutMS) * time.Millisecond
	}
	if raw.PageLimit > 0 {
		cfg.PageLimit = raw.PageLimit
	}
	if raw.PollSeconds > 0 {
		cfg.PollEvery = time.Duration(raw.PollSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// LogDir returns the directory holding the log file.
func (c Config) LogDir() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return filepath.Dir(mustExpand(defaultLogFile))
	}
	return filepath.Dir(c.LogFile)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// ExpandPath expands a leading "~" and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}
