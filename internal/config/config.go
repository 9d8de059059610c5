// Package config loads the server configuration from a YAML file,
// filling in defaults for anything the file leaves out.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig configures the WebSocket listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig configures the Redis connection used for room snapshots
// and the leaderboard.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig holds the match tunables.
type GameConfig struct {
	TurnTimeout      int `yaml:"turn_timeout"`      // seconds before a turn is forfeited
	ReconnectTimeout int `yaml:"reconnect_timeout"` // seconds an offline seat is held
	WinningScore     int `yaml:"winning_score"`     // tantos needed to win the match
	RoomTimeout      int `yaml:"room_timeout"`      // minutes an unfilled room waits
}

// TurnTimeoutDuration returns the turn timeout as a duration.
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

// ReconnectTimeoutDuration returns the reconnect grace as a duration.
func (c *GameConfig) ReconnectTimeoutDuration() time.Duration {
	return time.Duration(c.ReconnectTimeout) * time.Second
}

// RoomTimeoutDuration returns the room wait timeout as a duration.
func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

// Load reads and parses the configuration file, applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 1780
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Game.TurnTimeout == 0 {
		cfg.Game.TurnTimeout = 30
	}
	if cfg.Game.ReconnectTimeout == 0 {
		cfg.Game.ReconnectTimeout = 60
	}
	if cfg.Game.WinningScore == 0 {
		cfg.Game.WinningScore = 40
	}
	if cfg.Game.RoomTimeout == 0 {
		cfg.Game.RoomTimeout = 10
	}
}
