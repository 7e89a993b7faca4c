// Package config owns the persisted user settings of cutit and the process
// environment it reads at startup.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dgallion1/cutit/internal/fileutil"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("invalid configuration")

// Config is the persisted record stored as JSON at the config path.
type Config struct {
	ChunkSizeMin int    `json:"chunk_size_min" mapstructure:"chunk_size_min"`
	ChunkSizeMax int    `json:"chunk_size_max" mapstructure:"chunk_size_max"`
	Model        string `json:"model"          mapstructure:"model"`
	PtBR         bool   `json:"pt_br"          mapstructure:"pt_br"`
	CLIMode      bool   `json:"cli_mode"       mapstructure:"cli_mode"`
}

func Default() Config {
	return Config{
		ChunkSizeMin: 300,
		ChunkSizeMax: 500,
		Model:        "gpt-4",
		PtBR:         false,
		CLIMode:      true,
	}
}

// Keys lists the fields accepted by Store.Update.
func Keys() []string {
	return []string{"chunk_size_min", "chunk_size_max", "model", "pt_br", "cli_mode"}
}

func (c Config) Validate() error {
	if c.ChunkSizeMin <= 0 || c.ChunkSizeMax <= 0 {
		return fmt.Errorf("%w: chunk sizes must be positive (min=%d max=%d)", ErrInvalid, c.ChunkSizeMin, c.ChunkSizeMax)
	}
	if c.ChunkSizeMin > c.ChunkSizeMax {
		return fmt.Errorf("%w: chunk_size_min %d exceeds chunk_size_max %d", ErrInvalid, c.ChunkSizeMin, c.ChunkSizeMax)
	}
	return nil
}

// Store reads and writes the config file at a fixed path.
type Store struct {
	path string
	log  *slog.Logger
}

func NewStore(path string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{path: path, log: log.With("config", path)}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored config. A missing or unreadable file yields the
// defaults; fields absent from the file keep their default values.
func (s *Store) Load() Config {
	def := Default()
	v := viper.New()
	v.SetDefault("chunk_size_min", def.ChunkSizeMin)
	v.SetDefault("chunk_size_max", def.ChunkSizeMax)
	v.SetDefault("model", def.Model)
	v.SetDefault("pt_br", def.PtBR)
	v.SetDefault("cli_mode", def.CLIMode)
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("config unreadable, using defaults", "error", err)
		}
		return def
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		s.log.Warn("config malformed, using defaults", "error", err)
		return def
	}
	return cfg
}

// Save writes cfg as indented JSON, creating the parent directory.
func (s *Store) Save(cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := fileutil.WriteAtomic(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	s.log.Debug("config saved")
	return nil
}

// Update applies the recognised keys of changes on top of the stored config,
// persists the result and returns it. Unknown keys are ignored.
func (s *Store) Update(changes map[string]any) (Config, error) {
	cfg := s.Load()

	valid := make(map[string]bool, len(Keys()))
	for _, k := range Keys() {
		valid[k] = true
	}
	filtered := make(map[string]any, len(changes))
	for k, v := range changes {
		if valid[k] {
			filtered[k] = v
		} else {
			s.log.Debug("ignoring unknown config key", "key", k)
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Config{}, fmt.Errorf("config decoder: %w", err)
	}
	if err := dec.Decode(filtered); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := s.Save(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Env holds the settings read from the process environment.
type Env struct {
	ConfigPath string
	LogLevel   slog.Level
	LogFormat  string
	Debug      bool
}

func LoadEnv() Env {
	env := Env{
		ConfigPath: envOr("CUTIT_CONFIG", DefaultPath()),
		LogLevel:   envLevel("CUTIT_LOG_LEVEL", slog.LevelWarn),
		LogFormat:  envOr("CUTIT_LOG_FORMAT", "text"),
		Debug:      envBool("CUTIT_DEBUG", false),
	}
	switch env.LogFormat {
	case "json", "logfmt", "text":
	default:
		env.LogFormat = "text"
	}
	if env.Debug {
		env.LogLevel = slog.LevelDebug
	}
	return env
}

// DefaultPath is ~/.cut-it/config.json, or a path relative to the working
// directory when the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cut-it", "config.json")
	}
	return filepath.Join(home, ".cut-it", "config.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
