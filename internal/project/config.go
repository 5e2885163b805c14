// Package project resolves per-project spellesp settings.
package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"spellesp/internal/journal"
	"spellesp/internal/wordlist"
)

// Config is the decoded spellesp.toml.
type Config struct {
	Dictionary DictionaryConfig `toml:"dictionary"`
	LSP        LSPConfig        `toml:"lsp"`
	Journal    JournalConfig    `toml:"journal"`
}

// DictionaryConfig locates the word-list document.
type DictionaryConfig struct {
	// File is relative to the project root unless absolute.
	File string `toml:"file"`
}

// LSPConfig tunes the language server.
type LSPConfig struct {
	Trace bool `toml:"trace"`
}

// JournalConfig controls the accepted-word history.
type JournalConfig struct {
	Enabled *bool  `toml:"enabled"`
	Limit   int    `toml:"limit"`
	Path    string `toml:"path"`
}

// Settings is a Config resolved against the directory it applies to.
type Settings struct {
	// Root is the directory holding the word list, and spellesp.toml when one was found.
	Root       string
	ConfigPath string
	Config     Config
}

// DefaultConfig returns the settings used without a spellesp.toml.
func DefaultConfig() Config {
	return Config{
		Dictionary: DictionaryConfig{File: wordlist.DefaultFileName},
		Journal:    JournalConfig{Limit: journal.DefaultLimit},
	}
}

// JournalEnabled reports whether accepted words are journaled.
func (c Config) JournalEnabled() bool {
	return c.Journal.Enabled == nil || *c.Journal.Enabled
}

// LoadConfig parses path, filling unset fields with defaults. Unknown keys are errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if strings.TrimSpace(cfg.Dictionary.File) == "" {
		cfg.Dictionary.File = wordlist.DefaultFileName
	}
	if cfg.Journal.Limit < 0 {
		return Config{}, fmt.Errorf("%s: [journal].limit must not be negative", path)
	}
	if cfg.Journal.Limit == 0 {
		cfg.Journal.Limit = journal.DefaultLimit
	}
	return cfg, nil
}

// Resolve returns the settings for dir. When a spellesp.toml exists in dir or one
// of its parents, its directory becomes the root; otherwise dir itself is the root
// and defaults apply.
func Resolve(dir string) (Settings, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	configPath, ok, err := FindConfig(abs)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return Settings{Root: abs, Config: DefaultConfig()}, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Root:       filepath.Dir(configPath),
		ConfigPath: configPath,
		Config:     cfg,
	}, nil
}

// Store returns the word-list store for these settings.
func (s Settings) Store() *wordlist.Store {
	return wordlist.New(s.Root, wordlist.WithFileName(s.Config.Dictionary.File))
}
