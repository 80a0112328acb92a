// Package config loads mctext settings with viper from, in increasing order
// of precedence, built-in defaults, an optional YAML file, MCTEXT_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/jmoiron/mctext/markup"
)

const EnvPrefix = "MCTEXT"

type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Parse  ParseConfig  `mapstructure:"parse" yaml:"parse"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type ParseConfig struct {
	// MaxDepth limits hover nesting; negative means unlimited.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
	// MaxLength limits input size in bytes; zero means unlimited.
	MaxLength int  `mapstructure:"max_length" yaml:"max_length"`
	Strict    bool `mapstructure:"strict" yaml:"strict"`
}

type LogConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Verbose int    `mapstructure:"verbose" yaml:"verbose"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "127.0.0.1:8222")
	v.SetDefault("parse.max_depth", 8)
	v.SetDefault("parse.max_length", 32768)
	v.SetDefault("parse.strict", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.verbose", 0)
}

// New returns a viper instance with defaults and environment binding. If file
// is not empty it is read as the config file.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}
	return v, nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: server.addr must not be empty")
	}
	if c.Parse.MaxLength < 0 {
		return errors.New("config: parse.max_length must not be negative")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Level. Verbose > 0 forces debug.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	if l.Verbose > 0 {
		return slog.LevelDebug, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: log.level: %w", err)
	}
	return lvl, nil
}

// Parser builds a markup parser honoring the parse settings.
func (c *Config) Parser() *markup.Parser {
	opts := []markup.Option{
		markup.WithMaxDepth(c.Parse.MaxDepth),
		markup.WithMaxLength(c.Parse.MaxLength),
	}
	if c.Parse.Strict {
		opts = append(opts, markup.WithStrict())
	}
	return markup.NewParser(opts...)
}
