package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

type Config struct {
	App struct {
		Port           string   `yaml:"port"`
		Env            string   `yaml:"env"`
		ClientURL      string   `yaml:"client_url"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"app"`

	Database struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret   string `yaml:"jwt_secret"`
		JWTTTLHours int    `yaml:"jwt_ttl_hours"`
	} `yaml:"auth"`

	Policies struct {
		Status    string `yaml:"status"`
		JobDelete string `yaml:"job_delete"`
	} `yaml:"policies"`

	RateLimit struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

func defaults() Config {
	var cfg Config
	cfg.App.Port = "3000"
	cfg.App.Env = "development"
	cfg.Database.Driver = "postgres"
	cfg.Auth.JWTTTLHours = 30 * 24
	cfg.Policies.Status = "permissive"
	cfg.Policies.JobDelete = "cascade"
	cfg.RateLimit.RPS = 5
	cfg.RateLimit.Burst = 10
	return cfg
}

// Load reads .env (optional), then the YAML file named by CONFIG_PATH (optional), then
// applies environment overrides.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("PORT", &cfg.App.Port)
	str("APP_ENV", &cfg.App.Env)
	str("CLIENT_URL", &cfg.App.ClientURL)
	str("DB_DRIVER", &cfg.Database.Driver)
	str("DATABASE_URL", &cfg.Database.URL)
	str("JWT_SECRET", &cfg.Auth.JWTSecret)
	str("STATUS_POLICY", &cfg.Policies.Status)
	str("JOB_DELETE_POLICY", &cfg.Policies.JobDelete)

	if v, ok := lookup("ALLOWED_ORIGINS"); ok && v != "" {
		cfg.App.AllowedOrigins = append(cfg.App.AllowedOrigins, splitList(v)...)
	}

	if v, ok := lookup("JWT_TTL_HOURS"); ok && v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("JWT_TTL_HOURS: %w", err)
		}
		cfg.Auth.JWTTTLHours = hours
	}

	if v, ok := lookup("RATE_LIMIT_RPS"); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimit.RPS = rps
	}

	if v, ok := lookup("RATE_LIMIT_BURST"); ok && v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimit.Burst = burst
	}

	return nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if c.Auth.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}

	if c.Auth.JWTTTLHours <= 0 {
		problems = append(problems, "JWT_TTL_HOURS must be positive")
	}

	switch c.Database.Driver {
	case "postgres", "mysql":
		if c.Database.URL == "" {
			problems = append(problems, "DATABASE_URL is required for driver "+c.Database.Driver)
		}
	case "memory":
	default:
		problems = append(problems, fmt.Sprintf("unknown DB_DRIVER %q", c.Database.Driver))
	}

	switch c.Policies.Status {
	case "permissive", "strict":
	default:
		problems = append(problems, fmt.Sprintf("unknown STATUS_POLICY %q", c.Policies.Status))
	}

	switch c.Policies.JobDelete {
	case "cascade", "orphan":
	default:
		problems = append(problems, fmt.Sprintf("unknown JOB_DELETE_POLICY %q", c.Policies.JobDelete))
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		problems = append(problems, "rate limit rps and burst must be positive")
	}

	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}

	return nil
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.JWTTTLHours) * time.Hour
}

func (c Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// Origins returns the CORS allow-list: the development defaults, the client URL and any
// configured extras, without duplicates.
func (c Config) Origins() []string {
	seen := map[string]bool{}
	var origins []string

	add := func(origin string) {
		if origin != "" && !seen[origin] {
			seen[origin] = true
			origins = append(origins, origin)
		}
	}

	for _, origin := range defaultOrigins {
		add(origin)
	}
	add(c.App.ClientURL)
	for _, origin := range c.App.AllowedOrigins {
		add(origin)
	}

	return origins
}
