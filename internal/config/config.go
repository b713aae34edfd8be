package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server      Server      `yaml:"server"`
	Matchmaking Matchmaking `yaml:"matchmaking"`
	Log         Log         `yaml:"log"`
}

type Server struct {
	Addr            string `yaml:"addr"`
	AllowOrigins    string `yaml:"allow_origins"`
	ReadBufferSize  int    `yaml:"read_buffer_size"`
	WriteBufferSize int    `yaml:"write_buffer_size"`
}

type Matchmaking struct {
	// Interval is how often queued players are paired.
	Interval time.Duration `yaml:"interval"`
	// WaitTimeout bounds a single matchmaking request.
	WaitTimeout time.Duration `yaml:"wait_timeout"`
}

type Log struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":3000",
			AllowOrigins:    "http://localhost:5173",
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Matchmaking: Matchmaking{
			Interval:    time.Second,
			WaitTimeout: 30 * time.Second,
		},
		Log: Log{Level: "info"},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// -config, then the remaining flags in args.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	path := fs.String("config", "", "path to a YAML config file")
	addr := fs.String("addr", "", "listen address")
	level := fs.String("log-level", "", "trace, debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if *path != "" {
		data, err := os.ReadFile(*path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", *path, err)
		}
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *level != "" {
		cfg.Log.Level = *level
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	case c.Server.AllowOrigins == "" || strings.Contains(c.Server.AllowOrigins, "*"):
		// the server sends credentialed CORS responses, which forbid wildcards
		return fmt.Errorf("%w: server.allow_origins must list explicit origins", ErrInvalidConfig)
	case c.Server.ReadBufferSize <= 0:
		return fmt.Errorf("%w: server.read_buffer_size must be positive", ErrInvalidConfig)
	case c.Server.WriteBufferSize <= 0:
		return fmt.Errorf("%w: server.write_buffer_size must be positive", ErrInvalidConfig)
	case c.Matchmaking.Interval <= 0:
		return fmt.Errorf("%w: matchmaking.interval must be positive", ErrInvalidConfig)
	case c.Matchmaking.WaitTimeout <= 0:
		return fmt.Errorf("%w: matchmaking.wait_timeout must be positive", ErrInvalidConfig)
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}
