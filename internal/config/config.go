package config

import "time"

type PostgresConfig struct {
	DSN             string        `env:"PG_DSN"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME"`
}

// PoolConfig carries the construction-time pool parameters. The enrollment
// window opens when the service starts; the payout time is the enrollment
// end plus the lock duration.
type PoolConfig struct {
	EnrollmentDuration time.Duration `env:"POOL_ENROLLMENT_DURATION"`
	LockDuration       time.Duration `env:"POOL_LOCK_DURATION"`
	PenaltyRatePct     uint64        `env:"POOL_PENALTY_RATE_PCT"`
}
