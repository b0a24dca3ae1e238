package main

import (
	"log/slog"
	"time"

	"github.com/fastprodman/lockpool/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL"`
	LogFormat       string        `env:"APP_LOG_FORMAT"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT"`

	Postgres config.PostgresConfig
	Pool     config.PoolConfig
}
