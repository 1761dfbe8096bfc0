package config

import (
	"fmt"
	"strings"
	"time"

	"dock-allocation-service/internal/adapters/matrix"
	"dock-allocation-service/internal/adapters/publisher"
	"dock-allocation-service/internal/domain"
	"dock-allocation-service/internal/services"
)

// DockConfig locates the shared dock and fixes its opening hours.
type DockConfig struct {
	Location     int `json:"location"`
	Opening      int `json:"opening"`
	Closing      int `json:"closing"`
	UnloadBuffer int `json:"unload_buffer"`
	// Vehicle cap per company.
	MaxVehicles int `json:"max_vehicles"`
}

func (c *DockConfig) SetDefaults() {
	if c.UnloadBuffer == 0 {
		c.UnloadBuffer = 1
	}
	if c.MaxVehicles == 0 {
		c.MaxVehicles = services.DefaultMaxVehicles
	}
}

func (c DockConfig) Bounds() domain.DomainBounds {
	return domain.DomainBounds{Opening: c.Opening, Closing: c.Closing, UnloadBuffer: c.UnloadBuffer}
}

func (c DockConfig) Validate() error {
	if err := c.Bounds().Validate(); err != nil {
		return fmt.Errorf("dock: %w", err)
	}
	if c.MaxVehicles < 1 || c.MaxVehicles > services.DefaultMaxVehicles {
		return fmt.Errorf("dock: max_vehicles must be between 1 and %d, got %d", services.DefaultMaxVehicles, c.MaxVehicles)
	}
	return nil
}

type PoolConfig struct {
	// "lifo" or "earliest".
	Order string `json:"order"`
}

func (c *PoolConfig) SetDefaults() {
	if c.Order == "" {
		c.Order = string(services.PoolOrderLIFO)
	}
}

func (c PoolConfig) Validate() error {
	if _, err := services.ParsePoolOrder(c.Order); err != nil {
		return fmt.Errorf("pool: %w", err)
	}
	return nil
}

// NetworkConfig describes the locations in matrix index order. Matrix is
// required for the static source; the ORS source needs coordinates instead.
type NetworkConfig struct {
	Matrix    domain.TravelMatrix `json:"matrix"`
	Windows   []domain.TimeWindow `json:"windows"`
	Locations []domain.Location   `json:"locations"`
}

func (c *NetworkConfig) SetDefaults() {
	for i := range c.Locations {
		if c.Locations[i].Name == "" {
			c.Locations[i].Name = fmt.Sprintf("loc-%d", i)
		}
	}
	for i := len(c.Locations); i < len(c.Windows); i++ {
		c.Locations = append(c.Locations, domain.Location{Name: fmt.Sprintf("loc-%d", i)})
	}
}

func (c NetworkConfig) Size() int { return len(c.Windows) }

func (c NetworkConfig) Validate(dock int) error {
	if len(c.Windows) == 0 {
		return fmt.Errorf("network: at least one location window is required")
	}
	for i, w := range c.Windows {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("network: window %d: %w", i, err)
		}
	}
	if len(c.Locations) != len(c.Windows) {
		return fmt.Errorf("network: %d locations for %d windows", len(c.Locations), len(c.Windows))
	}
	if c.Matrix != nil {
		if err := c.Matrix.Validate(); err != nil {
			return fmt.Errorf("network: %w", err)
		}
		if c.Matrix.Size() != len(c.Windows) {
			return fmt.Errorf("network: %dx%d matrix for %d windows", c.Matrix.Size(), c.Matrix.Size(), len(c.Windows))
		}
	}
	if dock < 0 || dock >= len(c.Windows) {
		return fmt.Errorf("network: dock location %d out of range [0,%d)", dock, len(c.Windows))
	}
	return nil
}

const (
	SourceStatic = "static"
	SourceORS    = "ors"
)

type ORSConfig struct {
	APIKey          string `json:"api_key"`
	BaseURL         string `json:"base_url"`
	Profile         string `json:"profile"`
	TimeUnitSeconds int    `json:"time_unit_seconds"`
}

type MatrixConfig struct {
	Source string    `json:"source"`
	ORS    ORSConfig `json:"ors"`
	// Lifetime of cached ORS matrices in Redis; zero keeps them forever.
	CacheTTL time.Duration `json:"cache_ttl"`
}

func (c *MatrixConfig) SetDefaults() {
	if c.Source == "" {
		c.Source = SourceStatic
	}
	if c.ORS.BaseURL == "" {
		c.ORS.BaseURL = matrix.DefaultBaseURL
	}
	if c.ORS.Profile == "" {
		c.ORS.Profile = matrix.DefaultProfile
	}
	if c.ORS.TimeUnitSeconds == 0 {
		c.ORS.TimeUnitSeconds = matrix.DefaultTimeUnitSeconds
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 24 * time.Hour
	}
}

func (c MatrixConfig) Validate(n NetworkConfig) error {
	switch c.Source {
	case SourceStatic:
		if n.Matrix == nil {
			return fmt.Errorf("matrix: static source needs network.matrix")
		}
	case SourceORS:
		if strings.TrimSpace(c.ORS.APIKey) == "" {
			return fmt.Errorf("matrix: ors source needs matrix.ors.api_key")
		}
		if c.ORS.TimeUnitSeconds < 1 {
			return fmt.Errorf("matrix: time_unit_seconds must be positive")
		}
		for i, l := range n.Locations {
			if l.Coordinates == (domain.Coordinates{}) {
				return fmt.Errorf("matrix: ors source needs coordinates for location %d (%s)", i, l.Name)
			}
		}
	default:
		return fmt.Errorf("matrix: unknown source %q", c.Source)
	}
	return nil
}

func (c MatrixConfig) ORSProviderConfig() matrix.ORSConfig {
	return matrix.ORSConfig{
		APIKey:          c.ORS.APIKey,
		BaseURL:         c.ORS.BaseURL,
		Profile:         c.ORS.Profile,
		TimeUnitSeconds: c.ORS.TimeUnitSeconds,
	}
}

type DatabaseConfig struct {
	// Postgres URL; reports stay in memory when empty.
	URL string `json:"url"`
}

type RedisConfig struct {
	// Enables the Redis matrix cache and event publisher when set.
	URL     string `json:"url"`
	Channel string `json:"channel"`
}

func (c *RedisConfig) SetDefaults() {
	if c.Channel == "" {
		c.Channel = publisher.DefaultChannel
	}
}

type ServerConfig struct {
	Port string `json:"port"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

func (c LogConfig) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("log: unknown format %s", c.Format)
	}
	return nil
}
