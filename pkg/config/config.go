package config

import (
	"errors"
	"os"
	"time"

	env "github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   int           `env:"HTTP_PORT" envDefault:"8080"`
	StorePath  string        `env:"STORE_PATH" envDefault:"techservice.db"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret  string        `env:"JWT_SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	if c.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return c, nil
}
