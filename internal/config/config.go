package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string        `env:"HTTP_PORT" envDefault:"8000"`
	Environment       string        `env:"APP_ENV" envDefault:"development"`
	DatabaseURL       string        `env:"DATABASE_URL,required,notEmpty"`
	AutoMigrate       bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	DBMaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns        int32         `env:"DB_MIN_CONNS" envDefault:"1"`
	DBConnLifetime    time.Duration `env:"DB_CONN_LIFETIME" envDefault:"30m"`
	DBConnIdleTime    time.Duration `env:"DB_CONN_IDLE_TIME" envDefault:"5m"`
	DBConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	JWTSecret         string        `env:"JWT_SECRET,required,notEmpty"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	BcryptCost        int           `env:"BCRYPT_COST" envDefault:"10"`
	CORSOrigins       []string      `env:"CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	SignInMaxAttempts int           `env:"SIGNIN_MAX_ATTEMPTS" envDefault:"10"`
	SignInWindow      time.Duration `env:"SIGNIN_WINDOW" envDefault:"15m"`
	MetricsEnabled    bool          `env:"METRICS_ENABLED" envDefault:"true"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction indica si el servicio corre en modo produccion.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
