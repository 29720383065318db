// Package config loads the solutionizer settings from defaults, an optional
// YAML file and SOLUTIONIZER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/solutionizer/internal/solution"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const dirName = ".solutionizer"

// Settings holds the user-level configuration.
type Settings struct {
	RootPath         string `yaml:"root_path"`
	DBPath           string `yaml:"db_path" validate:"required"`
	FollowReferences bool   `yaml:"follow_references"`
	ReferenceDepth   int    `yaml:"reference_depth" validate:"gte=0"`
	LogCalls         bool   `yaml:"log_calls"`
}

// Default returns the built-in settings: the database under
// ~/.solutionizer, the working directory as root, and references followed
// two levels deep.
func Default() Settings {
	engine := solution.DefaultSettings()
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return Settings{
		RootPath:         root,
		DBPath:           filepath.Join(baseDir(), "solutionizer.db"),
		FollowReferences: engine.FollowReferences,
		ReferenceDepth:   engine.ReferenceDepth,
	}
}

// DefaultPath is the settings file read when neither an explicit path nor
// SOLUTIONIZER_CONFIG is given.
func DefaultPath() string {
	return filepath.Join(baseDir(), "settings.yaml")
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// Load builds the effective settings. path names a YAML settings file; when
// empty, SOLUTIONIZER_CONFIG and then DefaultPath are tried, and a missing
// default file is not an error. Environment variables override the file.
func Load(path string) (Settings, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if v := os.Getenv("SOLUTIONIZER_CONFIG"); v != "" {
			path, explicit = v, true
		} else {
			path = DefaultPath()
		}
	}

	if err := applyFile(&cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, err
		}
	}
	applyEnv(&cfg)

	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.RootPath = expandHome(cfg.RootPath)
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return nil
}

// applyEnv reads SOLUTIONIZER_* variables. Unparseable values are ignored.
func applyEnv(cfg *Settings) {
	if v := os.Getenv("SOLUTIONIZER_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SOLUTIONIZER_ROOT"); v != "" {
		cfg.RootPath = v
	}
	if v := os.Getenv("SOLUTIONIZER_FOLLOW_REFERENCES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.FollowReferences = b
		}
	}
	if v := os.Getenv("SOLUTIONIZER_REFERENCE_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ReferenceDepth = n
		}
	}
	if v := os.Getenv("SOLUTIONIZER_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

var validate = validator.New()

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid settings: %s failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("invalid settings: %w", err)
}

// Solution returns the reference expansion settings for a solution tree.
func (s Settings) Solution() solution.Settings {
	return solution.Settings{
		FollowReferences: s.FollowReferences,
		ReferenceDepth:   s.ReferenceDepth,
	}
}
