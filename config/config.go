package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr     string    `yaml:"addr" validate:"required"`
	MaxRooms int       `yaml:"max_rooms" validate:"min=1"`
	Log      LogConfig `yaml:"log"`
	WS       WSConfig  `yaml:"ws"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Pretty bool   `yaml:"pretty"`
}

type WSConfig struct {
	ReadBuffer  int  `yaml:"read_buffer" validate:"min=64"`
	WriteBuffer int  `yaml:"write_buffer" validate:"min=64"`
	CheckOrigin bool `yaml:"check_origin"`
}

func Default() Config {
	return Config{
		Addr:     ":8080",
		MaxRooms: 1024,
		Log:      LogConfig{Level: "info"},
		WS: WSConfig{
			ReadBuffer:  1024,
			WriteBuffer: 1024,
		},
	}
}

var validate = validator.New()

// Load reads path over the defaults and applies CHECKERS_* environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("CHECKERS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CHECKERS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
