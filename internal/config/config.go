package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	Database   Database   `envPrefix:"DB_"`
	Auth       Auth       `envPrefix:"AUTH_"`
	Cloudinary Cloudinary `envPrefix:"CLOUDINARY_"`
	Stats      Stats      `envPrefix:"STATS_"`
	RateLimit  RateLimit  `envPrefix:"RATE_LIMIT_"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite, mysql, postgres
	URL    string `env:"URL" envDefault:"bookalink.db"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
}

type Cloudinary struct {
	URL    string `env:"URL"`
	Folder string `env:"FOLDER" envDefault:"profile-images"`
}

type Stats struct {
	Interval time.Duration `env:"INTERVAL" envDefault:"30s"`
	WatchTTL time.Duration `env:"WATCH_TTL" envDefault:"10m"`
}

type RateLimit struct {
	RequestsPerSecond float64 `env:"RPS" envDefault:"10"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
