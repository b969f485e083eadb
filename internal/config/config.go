package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	HTTP        HTTPConfig
	Preferences PreferencesConfig
	RabbitMQ    RabbitMQConfig
	Mail        MailConfig
	Simulation  SimulationConfig
	Funnel      FunnelConfig
}

type AppConfig struct {
	Env      string // development, production
	LogLevel string
}

type HTTPConfig struct {
	Host               string
	Port               int
	CORSOrigins        []string
	RateLimitPerMinute int
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PreferencesConfig escolhe onde os controles de visualização são persistidos.
type PreferencesConfig struct {
	Driver      string // memory, sqlite, postgres
	SQLitePath  string
	DatabaseURL string
}

type RabbitMQConfig struct {
	URL string // vazio = eventos só vão pro log
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	NotifyTo string
}

func (c MailConfig) Enabled() bool {
	return c.Host != "" && c.NotifyTo != ""
}

// SimulationConfig controla a latência simulada e a taxa de falha do salvamento.
type SimulationConfig struct {
	LoadLatency    time.Duration
	SaveLatency    time.Duration
	ConvertLatency time.Duration
	FailureRate    float64
}

type FunnelConfig struct {
	Tick time.Duration
}

// Load lê .env (se existir) e depois as variáveis de ambiente. Env tem prioridade.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignora se não houver .env

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Host:               v.GetString("HTTP_HOST"),
			Port:               v.GetInt("HTTP_PORT"),
			CORSOrigins:        splitList(v.GetString("CORS_ORIGINS")),
			RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Preferences: PreferencesConfig{
			Driver:      strings.ToLower(v.GetString("PREFERENCES_DRIVER")),
			SQLitePath:  v.GetString("SQLITE_PATH"),
			DatabaseURL: v.GetString("DATABASE_URL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
		Mail: MailConfig{
			Host:     v.GetString("MAIL_HOST"),
			Port:     v.GetInt("MAIL_PORT"),
			User:     v.GetString("MAIL_USER"),
			Password: v.GetString("MAIL_PASS"),
			From:     v.GetString("MAIL_FROM"),
			NotifyTo: v.GetString("SALES_NOTIFY_TO"),
		},
		Simulation: SimulationConfig{
			LoadLatency:    v.GetDuration("LOAD_LATENCY"),
			SaveLatency:    v.GetDuration("SAVE_LATENCY"),
			ConvertLatency: v.GetDuration("CONVERT_LATENCY"),
			FailureRate:    v.GetFloat64("SAVE_FAILURE_RATE"),
		},
		Funnel: FunnelConfig{
			Tick: v.GetDuration("FUNNEL_TICK"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,*")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("PREFERENCES_DRIVER", "memory")
	v.SetDefault("SQLITE_PATH", "data/preferences.db")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("MAIL_FROM", "nao-responda@liguemedicina.com")
	v.SetDefault("LOAD_LATENCY", "800ms")
	v.SetDefault("SAVE_LATENCY", "900ms")
	v.SetDefault("CONVERT_LATENCY", "600ms")
	v.SetDefault("SAVE_FAILURE_RATE", 0.25)
	v.SetDefault("FUNNEL_TICK", "1m")
}

func (c *Config) validate() error {
	switch c.Preferences.Driver {
	case "memory", "sqlite":
	case "postgres":
		if c.Preferences.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when PREFERENCES_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("invalid PREFERENCES_DRIVER %q (memory, sqlite, postgres)", c.Preferences.Driver)
	}
	if c.Simulation.FailureRate < 0 || c.Simulation.FailureRate > 1 {
		return fmt.Errorf("SAVE_FAILURE_RATE must be between 0 and 1, got %v", c.Simulation.FailureRate)
	}
	if c.Funnel.Tick <= 0 {
		return fmt.Errorf("FUNNEL_TICK must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
