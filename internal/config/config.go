package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/joho/godotenv"

	"dock-allocation-service/internal/adapters/solver"
	"dock-allocation-service/internal/domain"
)

const EnvPrefix = "DOCK_"

type Config struct {
	Dock      DockConfig       `json:"dock"`
	Pool      PoolConfig       `json:"pool"`
	Network   NetworkConfig    `json:"network"`
	Matrix    MatrixConfig     `json:"matrix"`
	Solver    solver.Config    `json:"solver"`
	Companies []domain.Company `json:"companies"`
	Database  DatabaseConfig   `json:"database"`
	Redis     RedisConfig      `json:"redis"`
	Server    ServerConfig     `json:"server"`
	Log       LogConfig        `json:"log"`
}

// Get returns the environment variable key, or fallback when it is unset or
// blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads a YAML or JSON file, applies DOCK_* environment overrides
// (DOCK_SERVER__PORT sets server.port) and validates the result. With an empty
// path the built-in sample network from Default is used as the base. A .env
// file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if path == "" {
		base, err := json.Marshal(Default())
		if err != nil {
			return nil, fmt.Errorf("encode defaults: %w", err)
		}
		if err := k.Load(rawJSON(base), kjson.Parser()); err != nil {
			return nil, fmt.Errorf("load defaults: %w", err)
		}
	} else {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = kjson.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// rawJSON feeds an in-memory document to koanf.
type rawJSON []byte

func (r rawJSON) ReadBytes() ([]byte, error) { return r, nil }

func (r rawJSON) Read() (map[string]any, error) {
	return nil, errors.New("rawJSON provider does not support Read")
}

func (c *Config) SetDefaults() {
	c.Dock.SetDefaults()
	c.Pool.SetDefaults()
	c.Network.SetDefaults()
	c.Matrix.SetDefaults()
	c.Solver.SetDefaults()
	c.Redis.SetDefaults()
	c.Server.SetDefaults()
	c.Log.SetDefaults()
}

func (c Config) Validate() error {
	if err := c.Dock.Validate(); err != nil {
		return err
	}
	if err := c.Pool.Validate(); err != nil {
		return err
	}
	if err := c.Network.Validate(c.Dock.Location); err != nil {
		return err
	}
	if err := c.Matrix.Validate(c.Network); err != nil {
		return err
	}
	if err := c.Solver.Validate(); err != nil {
		return err
	}
	for i, co := range c.Companies {
		if strings.TrimSpace(co.ID) == "" {
			return fmt.Errorf("companies: entry #%d has no id", i+1)
		}
		if co.Depot < 0 || co.Depot >= c.Network.Size() {
			return fmt.Errorf("companies: %s depot %d out of range [0,%d)", co.ID, co.Depot, c.Network.Size())
		}
	}
	return c.Log.Validate()
}
