package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat         string        `mapstructure:"log_format" yaml:"log_format"`

	// WebSocket limits.
	MaxMessageBytes    int64    `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	SendBuffer         int      `mapstructure:"send_buffer" yaml:"send_buffer"`
	RateLimitPerMinute int      `mapstructure:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`
	AllowedOrigins     []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`

	// Rooms.
	ChatLogLimit   int  `mapstructure:"chat_log_limit" yaml:"chat_log_limit"`
	MaxRoomMembers int  `mapstructure:"max_room_members" yaml:"max_room_members"`
	EvictByName    bool `mapstructure:"evict_by_name" yaml:"evict_by_name"`

	// Front end.
	WebAppURL string `mapstructure:"webapp_url" yaml:"webapp_url"`
	BotToken  string `mapstructure:"bot_token" yaml:"bot_token"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
		MaxMessageBytes:   64 << 10,
		SendBuffer:        64,
		ChatLogLimit:      100,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.MaxMessageBytes != 0 {
		c.MaxMessageBytes = other.MaxMessageBytes
	}
	if other.SendBuffer != 0 {
		c.SendBuffer = other.SendBuffer
	}
	if other.RateLimitPerMinute != 0 {
		c.RateLimitPerMinute = other.RateLimitPerMinute
	}
	if len(other.AllowedOrigins) > 0 {
		c.AllowedOrigins = other.AllowedOrigins
	}
	if other.ChatLogLimit != 0 {
		c.ChatLogLimit = other.ChatLogLimit
	}
	if other.MaxRoomMembers != 0 {
		c.MaxRoomMembers = other.MaxRoomMembers
	}
	if other.EvictByName {
		c.EvictByName = true
	}
	if other.WebAppURL != "" {
		c.WebAppURL = other.WebAppURL
	}
	if other.BotToken != "" {
		c.BotToken = other.BotToken
	}
}

// Validate checks value ranges and reports every violation at once.
func (c Config) Validate() error {
	var errs []string
	if c.Addr == "" {
		errs = append(errs, "addr must not be empty")
	}
	if c.ReadHeaderTimeout < 0 {
		errs = append(errs, "read_header_timeout must not be negative")
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, "shutdown_timeout must not be negative")
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("log_format must be console or json, got %q", c.LogFormat))
	}
	if c.MaxMessageBytes <= 0 {
		errs = append(errs, fmt.Sprintf("max_message_bytes must be positive, got %d", c.MaxMessageBytes))
	}
	if c.SendBuffer <= 0 {
		errs = append(errs, fmt.Sprintf("send_buffer must be positive, got %d", c.SendBuffer))
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, "rate_limit_per_minute must not be negative")
	}
	if c.ChatLogLimit < 0 {
		errs = append(errs, "chat_log_limit must not be negative")
	}
	if c.MaxRoomMembers < 0 {
		errs = append(errs, "max_room_members must not be negative")
	}
	if len(errs) > 0 {
		return errors.New("invalid config: " + strings.Join(errs, "; "))
	}
	return nil
}
