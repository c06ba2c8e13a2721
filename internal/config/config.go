// Package config loads the YAML defaults file of the childexec command.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/childprocess"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/native"
)

// DefaultPath is read when no explicit path is given. A missing file at the
// default path is not an error.
const DefaultPath = ".childexec.yaml"

// Duration wraps time.Duration for YAML unmarshalling.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a textual duration, accepting empty strings.
func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = dur
	return nil
}

// MarshalText renders the duration using time.Duration formatting.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults mirrors the defaults file.
type Defaults struct {
	Cwd        string            `yaml:"cwd"`
	Env        map[string]string `yaml:"env"`
	Encoding   string            `yaml:"encoding"`
	Timeout    Duration          `yaml:"timeout"`
	MaxBuffer  int               `yaml:"maxBuffer"`
	KillSignal string            `yaml:"killSignal"`
	Shell      string            `yaml:"shell"`
	LogLevel   string            `yaml:"logLevel"`
}

// Load reads the defaults file at path. An empty path reads DefaultPath if it
// exists and otherwise returns empty Defaults.
func Load(path string) (*Defaults, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			if !explicit {
				return &Defaults{}, nil
			}
			return nil, errors.Wrapf(err, errors.CodeNotFound, "config file %s not found", path)
		}
		return nil, errors.Wrapf(err, errors.CodeInvalidConfig, "read config file %s", path)
	}

	defaults, err := Parse(data)
	if err != nil {
		return nil, errors.WithContext(err, "path", path)
	}
	return defaults, nil
}

// Parse decodes and validates a defaults document. Unknown keys are rejected.
func Parse(data []byte) (*Defaults, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var d Defaults
	if err := decoder.Decode(&d); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "decode config")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks every field.
func (d *Defaults) Validate() error {
	if d.Timeout.Duration < 0 {
		return invalid("timeout", "timeout must not be negative")
	}
	if d.MaxBuffer < 0 {
		return invalid("maxBuffer", "maxBuffer must not be negative")
	}
	if d.Encoding != "" {
		if _, err := native.CanonicalCharset(d.Encoding); err != nil {
			return invalid("encoding", err.Error())
		}
	}
	if _, err := ParseLevel(d.LogLevel); err != nil {
		return err
	}
	for key := range d.Env {
		if key == "" || strings.ContainsRune(key, '=') {
			return invalid("env", fmt.Sprintf("invalid variable name %q", key))
		}
	}
	return nil
}

// Options converts the defaults into child process options.
func (d *Defaults) Options() childprocess.Options {
	var env map[string]string
	if len(d.Env) > 0 {
		env = make(map[string]string, len(d.Env))
		for k, v := range d.Env {
			env[k] = os.ExpandEnv(v)
		}
	}

	return childprocess.Options{
		Cwd:        d.Cwd,
		Env:        env,
		Encoding:   d.Encoding,
		Timeout:    d.Timeout.Duration,
		MaxBuffer:  d.MaxBuffer,
		KillSignal: d.KillSignal,
		Shell:      d.Shell,
	}
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, invalid("logLevel", fmt.Sprintf("unknown log level %q", name))
	}
}

func invalid(field, message string) error {
	return errors.WithContext(errors.New(errors.CodeInvalidConfig, message), "field", field)
}
