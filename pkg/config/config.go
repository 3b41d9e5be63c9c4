package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:""`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"stockfolio:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// QuoteCache controls the latest-quote cache in front of the price
// series tables.
type QuoteCache struct {
	TTL    time.Duration `envconfig:"TTL" default:"5m"`
	Prefix string        `envconfig:"CACHE_PREFIX" default:"quote:"`
}

// Predictor configures the forecasting subprocess.
type Predictor struct {
	Python  string        `envconfig:"PYTHON" default:"python3"`
	Script  string        `envconfig:"SCRIPT" default:"scripts/predict.py"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"20s"`
	Horizon int           `envconfig:"HORIZON_DAYS" default:"30"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[stockfolio]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env        string      `envconfig:"APP_ENV" default:"development"`
	Server     *Server     `envconfig:"SERVER"`
	Log        *Log        `envconfig:"LOG"`
	DB         *DB         `envconfig:"DATABASE"`
	Auth       *Auth       `envconfig:"AUTH"`
	Redis      *Redis      `envconfig:"REDIS"`
	RateLimit  *RateLimit  `envconfig:"RATE_LIMIT"`
	QuoteCache *QuoteCache `envconfig:"QUOTE_CACHE"`
	Predictor  *Predictor  `envconfig:"PREDICTOR"`
}
