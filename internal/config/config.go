// Package config loads the service configuration from a YAML file and the
// environment.
package config

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"service_print_receipt/internal/render"
)

var (
	c          *Config
	once       sync.Once
	configPath = flag.String("config", "config.yaml", "config file path")
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Printer PrinterConfig `yaml:"printer"`
	Receipt ReceiptConfig `yaml:"receipt"`
}

type ServerConfig struct {
	Addr          string `yaml:"addr" env:"SERVER_ADDR" env-default:":8080"`
	AllowedOrigin string `yaml:"allowed_origin" env:"ALLOWED_ORIGIN" env-default:"*"`
}

// PrinterConfig selects the transport to the physical printer.
// Mode is one of "network", "file" or "emulation".
type PrinterConfig struct {
	Mode    string        `yaml:"mode" env:"PRINTER_MODE" env-default:"emulation"`
	Host    string        `yaml:"host" env:"PRINTER_HOST" env-default:""`
	Port    int           `yaml:"port" env:"PRINTER_PORT" env-default:"9100"`
	Device  string        `yaml:"device" env:"PRINTER_DEVICE" env-default:""`
	Columns int           `yaml:"columns" env:"PRINTER_COLUMNS" env-default:"42"`
	Timeout time.Duration `yaml:"timeout" env:"PRINTER_TIMEOUT" env-default:"10s"`
}

// ReceiptConfig overrides the compliance text and classifier labels, so
// locale-specific strings live in deployment config rather than code.
type ReceiptConfig struct {
	Company render.Company `yaml:"company"`
	TaxNote string         `yaml:"tax_note" env:"TAX_NOTE" env-default:""`
	Labels  render.Labels  `yaml:"labels"`
}

// Load reads configuration from the given file, with environment variables
// taking effect through cleanenv's env tags. A missing file falls back to
// environment-only configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); err != nil {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read config from environment: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

func MustLoad() *Config {
	once.Do(func() {
		if !flag.Parsed() {
			flag.Parse()
		}
		var err error
		c, err = Load(*configPath)
		if err != nil {
			panic(err)
		}
	})
	return c
}
