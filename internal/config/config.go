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

	"github.com/five82/framelist/internal/objlist"
)

// Config captures everything framelist needs to reach a labeling job.
type Config struct {
	Server   string
	Job      objlist.Session
	Frame    int
	Poll     time.Duration
	LogFile  string
	Ordering objlist.Ordering
	Filters  []string
	Demo     bool
}

const (
	defaultConfigPath = "~/.config/framelist/config.toml"
	defaultLogFile    = "~/.local/state/framelist/framelist.log"
	defaultServer     = "127.0.0.1:8080"
	defaultJob        = "default"
	defaultPoll       = 2 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server:   defaultServer,
		Job:      defaultJob,
		Poll:     defaultPoll,
		LogFile:  mustExpand(defaultLogFile),
		Ordering: objlist.IDAscent,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
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
		Server      string   `toml:"server"`
		Job         string   `toml:"job"`
		Frame       int      `toml:"frame"`
		PollSeconds int      `toml:"poll_seconds"`
		LogFile     string   `toml:"log_file"`
		Ordering    string   `toml:"ordering"`
		Filters     []string `toml:"filters"`
		Demo        bool     `toml:"demo"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if server := strings.TrimSpace(raw.Server); server != "" {
		cfg.Server = server
	}
	if job := strings.TrimSpace(raw.Job); job != "" {
		cfg.Job = objlist.Session(job)
	}
	if raw.Frame < 0 {
		return Config{}, fmt.Errorf("parse config: frame %d is negative", raw.Frame)
	}
	cfg.Frame = raw.Frame
	if raw.PollSeconds > 0 {
		cfg.Poll = time.Duration(raw.PollSeconds) * time.Second
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if ordering := strings.TrimSpace(raw.Ordering); ordering != "" {
		parsed, err := objlist.ParseOrdering(ordering)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.Ordering = parsed
	}
	cfg.Filters = raw.Filters
	cfg.Demo = raw.Demo

	return cfg, nil
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
