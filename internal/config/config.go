package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the effective service configuration.
// Values come from the process environment, optionally seeded from a .env file.
type Settings struct {
	ProjectName   string        `yaml:"project_name"`
	Env           string        `yaml:"env"`
	LogLevel      string        `yaml:"log_level"`
	BackendPort   int           `yaml:"backend_port"`
	BackendURL    string        `yaml:"backend_url"`
	DatabaseURL   string        `yaml:"database_url"`
	HealthTimeout time.Duration `yaml:"health_timeout"`
	RenderWait    time.Duration `yaml:"render_wait"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("PROJECT_NAME", "frvn-template")
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BACKEND_PORT", 8000)
	v.SetDefault("BACKEND_URL", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("HEALTH_TIMEOUT", "10s")
	v.SetDefault("RENDER_WAIT", "5s")
}

// LoadDotEnv loads the given env files into the process environment.
// Existing variables win. A missing file is reported as (false, nil).
func LoadDotEnv(files ...string) (bool, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load config: read env file: %w", err)
	}
	return true, nil
}

// Load resolves Settings from the environment. Call LoadDotEnv first to honor .env.
func Load() (Settings, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	s := Settings{
		ProjectName: strings.TrimSpace(v.GetString("PROJECT_NAME")),
		Env:         strings.TrimSpace(v.GetString("ENV")),
		LogLevel:    strings.TrimSpace(v.GetString("LOG_LEVEL")),
		BackendPort: v.GetInt("BACKEND_PORT"),
		BackendURL:  strings.TrimRight(strings.TrimSpace(v.GetString("BACKEND_URL")), "/"),
		DatabaseURL: strings.TrimSpace(v.GetString("DATABASE_URL")),
	}

	var err error
	if s.HealthTimeout, err = parseDuration("HEALTH_TIMEOUT", v.GetString("HEALTH_TIMEOUT")); err != nil {
		return Settings{}, fmt.Errorf("load config: %w", err)
	}
	if s.RenderWait, err = parseDuration("RENDER_WAIT", v.GetString("RENDER_WAIT")); err != nil {
		return Settings{}, fmt.Errorf("load config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("load config: %w", err)
	}
	return s, nil
}

// parseDuration requires a unit ("10s", "500ms"); a bare number other than 0 is rejected.
func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration with a unit such as 10s: %w", key, err)
	}
	return d, nil
}

func (s Settings) Validate() error {
	if s.ProjectName == "" {
		return errors.New("PROJECT_NAME cannot be empty")
	}
	if s.BackendPort <= 0 || s.BackendPort > 65535 {
		return fmt.Errorf("BACKEND_PORT out of range: %d", s.BackendPort)
	}
	if s.HealthTimeout < 0 {
		return fmt.Errorf("HEALTH_TIMEOUT cannot be negative: %s", s.HealthTimeout)
	}
	if s.RenderWait < 0 {
		return fmt.Errorf("RENDER_WAIT cannot be negative: %s", s.RenderWait)
	}
	return nil
}

// LocalURL is the loopback origin of this service. The page reads health
// from it when BACKEND_URL is unset.
func (s Settings) LocalURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", s.BackendPort)
}

// Addr is the listen address for the HTTP server.
func (s Settings) Addr() string {
	return fmt.Sprintf(":%d", s.BackendPort)
}
