// Package config loads the optional TOML configuration file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed config.toml
var defaultTemplate string

const defaultPermissionMode = "acceptEdits"

// Config holds user-adjustable knobs for the claude invocation.
type Config struct {
	PermissionMode    string   `toml:"permission_mode"`
	ExtraArgs         []string `toml:"extra_args"`
	ExtraSystemPrompt string   `toml:"extra_system_prompt"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{PermissionMode: defaultPermissionMode}
}

// AppendSystemPrompt appends the configured extra system prompt, if any,
// to the built-in prompt.
func (c Config) AppendSystemPrompt(prompt string) string {
	if c.ExtraSystemPrompt == "" {
		return prompt
	}
	return prompt + "\n\n" + c.ExtraSystemPrompt
}

// DefaultPath returns the platform config file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "claude-mergetool", "config.toml"), nil
}

// Load reads configuration from path, or from the default location when
// path is empty. An explicitly given path must exist and parse; a missing
// file at the default location just yields defaults.
func Load(path string) (Config, error) {
	if path != "" {
		return loadFile(path, true)
	}
	defaultPath, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	return loadFile(defaultPath, false)
}

func loadFile(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// WriteTemplate writes the commented default config to path, or to the
// default location when path is empty. Refuses to overwrite an existing
// file unless force is set.
func WriteTemplate(path string, force bool) (string, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return "", fmt.Errorf("determining default config path: %w", err)
		}
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultTemplate), 0o644); err != nil {
		return "", fmt.Errorf("writing config file %s: %w", path, err)
	}
	return path, nil
}
