package configuration

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		panic(err)
	}
	return c
})

// Use returns the process-wide configuration, loading it on first call.
func Use() *Configuration {
	return singleton()
}

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existingFiles = append(existingFiles, file)
		}
	}
	if len(existingFiles) == 0 {
		return 0, nil
	}
	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"pixelport"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type RedisOptions struct {
	Enabled bool          `env:"REDIS_CACHE_ENABLED" envDefault:"false"`
	URL     string        `env:"REDIS_URL" envDefault:"localhost:6379"`
	TTL     time.Duration `env:"REDIS_CACHE_TTL" envDefault:"5m"`
}

// AdsAPIOptions configures the outbound conversions-API client.
type AdsAPIOptions struct {
	BaseURL    string        `env:"ADS_API_BASE_URL" envDefault:"https://graph.adsplatform.com"`
	Version    string        `env:"ADS_API_VERSION" envDefault:"v2"`
	Timeout    time.Duration `env:"ADS_API_TIMEOUT" envDefault:"10s"`
	TestEvents bool          `env:"ADS_API_TEST_EVENTS" envDefault:"false"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type RateLimitOptions struct {
	Enabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	GlobalRPS int    `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"1000"`
	Storage   string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"` // memory or redis
	RedisURL  string `env:"RATE_LIMIT_REDIS_URL"`
}

func (r *RateLimitOptions) Validate() error {
	if r.GlobalRPS < 0 {
		return fmt.Errorf("rate limit GlobalRPS must be non-negative, got %d", r.GlobalRPS)
	}
	if r.Storage != "memory" && r.Storage != "redis" {
		return fmt.Errorf("rate limit Storage must be 'memory' or 'redis', got '%s'", r.Storage)
	}
	if r.Storage == "redis" && r.RedisURL == "" {
		return fmt.Errorf("rate limit RedisURL is required when Storage is 'redis'")
	}
	return nil
}

type Configuration struct {
	Database   DatabaseOptions
	Redis      RedisOptions
	AdsAPI     AdsAPIOptions
	Prometheus PrometheusOptions
	RateLimit  RateLimitOptions

	ServerPort    int    `env:"PORT" envDefault:"3200"`
	GoAppEnv      string `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress string `env:"-"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	// Storefront scripts post conversion events cross-origin; "*" because the
	// set of shop domains is open-ended.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	logger *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) load(envFiles []string) error {
	if _, err := LoadEnv(envFiles); err != nil {
		return err
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := env.Parse(&c.Database); err != nil {
		return err
	}
	if err := env.Parse(&c.Redis); err != nil {
		return err
	}
	if err := env.Parse(&c.AdsAPI); err != nil {
		return err
	}
	if err := env.Parse(&c.Prometheus); err != nil {
		return err
	}
	if err := env.Parse(&c.RateLimit); err != nil {
		return err
	}
	if err := c.RateLimit.Validate(); err != nil {
		return err
	}
	c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	c.Database.Opts = c.Database.ConnectionString()

	logger := logrus.New()
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if c.GoAppEnv == Production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	c.logger = logger
	return nil
}
