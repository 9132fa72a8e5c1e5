// Package config provides the configuration loader for pipdeps.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/pipdeps/internal/core/domain"
	"go.trai.ch/pipdeps/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Filename is the name of the optional configuration file looked up in the working directory.
const Filename = "pipdeps.yaml"

// Environment variables overriding the configuration file.
const (
	EnvCacheFile = "PIPDEPS_CACHE_FILE"
	EnvPip       = "PIPDEPS_PIP"
	EnvLogFile   = "PIPDEPS_LOG_FILE"
	EnvLenient   = "PIPDEPS_LENIENT"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using an optional YAML file and environment overrides.
type Loader struct {
	Logger ports.Logger
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// NewLoader creates a new configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Getenv: os.Getenv}
}

// Load builds the settings for the given working directory.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	path := filepath.Join(cwd, Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the working directory
	switch {
	case err == nil:
		if err := applyFile(settings, data); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	if err := l.applyEnv(settings); err != nil {
		return nil, err
	}

	if err := validate(settings); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(settings.CacheFile) {
		settings.CacheFile = filepath.Join(cwd, settings.CacheFile)
	}
	if settings.LogFile != "" && !filepath.IsAbs(settings.LogFile) {
		settings.LogFile = filepath.Join(cwd, settings.LogFile)
	}

	return settings, nil
}

func applyFile(settings *domain.Settings, data []byte) error {
	var cfg Configfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(domain.ErrConfigInvalid, "failed to parse config file: "+err.Error())
	}

	if cfg.CacheFile != "" {
		settings.CacheFile = cfg.CacheFile
	}
	if cfg.Pip != nil {
		settings.PipCommand = cfg.Pip
	}
	if cfg.Concurrency != nil {
		settings.Concurrency = *cfg.Concurrency
	}
	if cfg.BatchSize != nil {
		settings.BatchSize = *cfg.BatchSize
	}
	if cfg.LogFile != "" {
		settings.LogFile = cfg.LogFile
	}
	if cfg.Lenient != nil {
		settings.Lenient = *cfg.Lenient
	}
	if cfg.MemoSize != nil {
		settings.MemoSize = *cfg.MemoSize
	}
	return nil
}

func (l *Loader) applyEnv(settings *domain.Settings) error {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv(EnvCacheFile); v != "" {
		settings.CacheFile = v
	}
	if v := getenv(EnvPip); v != "" {
		settings.PipCommand = strings.Fields(v)
	}
	if v := getenv(EnvLogFile); v != "" {
		settings.LogFile = v
	}
	if v := getenv(EnvLenient); v != "" {
		lenient, err := strconv.ParseBool(v)
		if err != nil {
			err := zerr.Wrap(domain.ErrConfigInvalid, "invalid boolean in environment")
			return zerr.With(zerr.With(err, "variable", EnvLenient), "value", v)
		}
		settings.Lenient = lenient
		if l.Logger != nil && lenient {
			l.Logger.Info(fmt.Sprintf("%s set: dangling references are reported as warnings", EnvLenient))
		}
	}
	return nil
}

func validate(settings *domain.Settings) error {
	switch {
	case strings.TrimSpace(settings.CacheFile) == "":
		return invalid("cache_file", settings.CacheFile)
	case len(settings.PipCommand) == 0 || strings.TrimSpace(settings.PipCommand[0]) == "":
		return invalid("pip", settings.PipCommand)
	case settings.Concurrency < 1:
		return invalid("concurrency", settings.Concurrency)
	case settings.BatchSize < 1:
		return invalid("batch_size", settings.BatchSize)
	case settings.MemoSize < 1:
		return invalid("memo_size", settings.MemoSize)
	}
	return nil
}

func invalid(field string, value any) error {
	err := zerr.Wrap(domain.ErrConfigInvalid, "invalid configuration value")
	return zerr.With(zerr.With(err, "field", field), "value", value)
}
