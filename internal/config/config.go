package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Sources SourcesConfig `yaml:"sources"`
	Status  StatusConfig  `yaml:"status"`
	Stream  StreamConfig  `yaml:"stream"`
	Mode    ModeConfig    `yaml:"mode"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
	// StaticDir holds index.html when the binary is built without the
	// embed tag.
	StaticDir string `yaml:"static_dir"`
}

// SourcesConfig points at the on-disk documents the dashboard reads. Both
// are optional; a missing file is not an error.
type SourcesConfig struct {
	TasksFile string `yaml:"tasks_file"`
	CostLog   string `yaml:"cost_log"`
}

type StatusConfig struct {
	Command string        `yaml:"command"`
	Args    []string      `yaml:"args"`
	Timeout time.Duration `yaml:"timeout"`
	// HostMetrics toggles the gopsutil CPU/memory/load section.
	HostMetrics bool `yaml:"host_metrics"`
}

type StreamConfig struct {
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
	SendBuffer        int           `yaml:"send_buffer"`
	MaxConnections    int           `yaml:"max_connections"` // 0 = unlimited
}

type ModeConfig struct {
	// HourShift is subtracted from the local hour before classification.
	HourShift int `yaml:"hour_shift"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      3030,
			Host:      "127.0.0.1",
			StaticDir: "internal/frontend/static",
		},
		Sources: SourcesConfig{
			TasksFile: "../memory/active-tasks.md",
			CostLog:   "../memory/pl-log.md",
		},
		Status: StatusConfig{
			Command:     "clawdbot",
			Args:        []string{"status", "--json"},
			Timeout:     5 * time.Second,
			HostMetrics: true,
		},
		Stream: StreamConfig{
			BroadcastInterval: 2 * time.Second,
			SendBuffer:        16,
		},
		Mode: ModeConfig{
			HourShift: 6,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path or a
// file that does not exist yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Stream.BroadcastInterval <= 0 {
		return fmt.Errorf("stream.broadcast_interval must be positive")
	}
	if c.Stream.SendBuffer <= 0 {
		return fmt.Errorf("stream.send_buffer must be positive")
	}
	if c.Stream.MaxConnections < 0 {
		return fmt.Errorf("stream.max_connections must not be negative")
	}
	if c.Status.Timeout <= 0 {
		return fmt.Errorf("status.timeout must be positive")
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
