package config

import (
	"time"
)

// DB holds database connection settings.
type DB struct {
	Url string `envconfig:"URL"`
}

// Jwt holds token signing settings.
type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Log holds logger settings.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[sangam]"`
}

// Server holds the HTTP listener settings.
type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"5000"`
}

// RateLimit bounds request rates per client IP.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Uploads configures where uploaded files and generated documents are
// stored and how they are served back.
type Uploads struct {
	// Backend selects the storage implementation: local or s3.
	Backend string `envconfig:"BACKEND" default:"local"`
	Dir     string `envconfig:"DIR" default:"./uploads"`
	// BaseURL is the public prefix stored references are served under.
	BaseURL string `envconfig:"BASE_URL" default:"/uploads"`
	MaxSize int64  `envconfig:"MAX_SIZE" default:"10485760"`

	S3Region   string `envconfig:"S3_REGION"`
	S3Bucket   string `envconfig:"S3_BUCKET"`
	S3Endpoint string `envconfig:"S3_ENDPOINT"`
	S3User     string `envconfig:"S3_USER"`
	S3Password string `envconfig:"S3_PASSWORD"`
}

// Seed holds the super admin bootstrapped at startup when none exists.
type Seed struct {
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@community.com"`
	AdminPhone    string `envconfig:"ADMIN_PHONE" default:"9999999999"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
}

// App is the root configuration object, populated from the environment.
type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Jwt       *Jwt       `envconfig:"JWT"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Uploads   *Uploads   `envconfig:"UPLOADS"`
	Seed      *Seed      `envconfig:"SEED"`
}
