package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // таймзоны доступны и в минимальных образах

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	RateLimitMemory = "memory"
	RateLimitRedis  = "redis"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	App           AppConfig           `toml:"app"`
	Server        ServerConfig        `toml:"server"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Admin         AdminConfig         `toml:"admin"`
	BusinessHours BusinessHoursConfig `toml:"business_hours"`
	Calendar      CalendarConfig      `toml:"calendar"`
	SMTP          SMTPConfig          `toml:"smtp"`
	Notifications NotificationsConfig `toml:"notifications"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Storage       StorageConfig       `toml:"storage"`
	Database      DatabaseConfig      `toml:"database"`
	Redis         RedisConfig         `toml:"redis"`
}

type AppConfig struct {
	Environment   string `toml:"environment"` // development | production
	PublicBaseURL string `toml:"public_base_url"`
}

type ServerConfig struct {
	HTTPPort        int   `toml:"http_port"`
	ReadTimeout     int   `toml:"read_timeout"`
	WriteTimeout    int   `toml:"write_timeout"`
	IdleTimeout     int   `toml:"idle_timeout"`
	ShutdownTimeout int   `toml:"shutdown_timeout"`
	MaxBodyBytes    int64 `toml:"max_body_bytes"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AdminConfig struct {
	Secret string `toml:"secret"`
	Email  string `toml:"email"`
}

type BusinessHoursConfig struct {
	OpenTime              string `toml:"open_time"`
	CloseTime             string `toml:"close_time"`
	SlotDurationMinutes   int    `toml:"slot_duration_minutes"`
	Timezone              string `toml:"timezone"`
	WindowStartOffsetDays *int   `toml:"window_start_offset_days"`
	WindowDays            int    `toml:"window_days"`
	SkipWeekends          *bool  `toml:"skip_weekends"`
}

type CalendarConfig struct {
	CalendarID      string `toml:"calendar_id"`
	CredentialsJSON string `toml:"credentials_json"`
	CredentialsFile string `toml:"credentials_file"`
	Timeout         int    `toml:"timeout"`
}

type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	FromName string `toml:"from_name"`
	Timeout  int    `toml:"timeout"`
}

type NotificationsConfig struct {
	Workers      int     `toml:"workers"`
	QueueSize    int     `toml:"queue_size"`
	SendTimeout  int     `toml:"send_timeout"`
	MaxPerSecond float64 `toml:"max_per_second"` // 0 = без ограничения
}

type RateLimitConfig struct {
	Enabled       *bool  `toml:"enabled"`
	Backend       string `toml:"backend"` // memory | redis
	Requests      int    `toml:"requests"`
	WindowSeconds int    `toml:"window_seconds"`
	TrustProxy    bool   `toml:"trust_proxy"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // memory | postgres
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Load читает конфигурацию из TOML-файла, затем .env и переменные окружения.
// Отсутствующий файл не ошибка: используются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	// .env необязателен; уже заданные переменные окружения не перезаписываются
	_ = godotenv.Load()

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет секреты и окружение из переменных окружения
func (c *Config) applyEnv() {
	overrideString(&c.App.Environment, "APP_ENV")
	overrideString(&c.App.PublicBaseURL, "PUBLIC_BASE_URL")
	overrideString(&c.Admin.Secret, "ADMIN_SECRET")
	overrideString(&c.Admin.Email, "ADMIN_EMAIL")
	overrideString(&c.Calendar.CredentialsJSON, "GOOGLE_CREDENTIALS_JSON")
	overrideString(&c.Calendar.CalendarID, "GOOGLE_CALENDAR_ID")
	overrideString(&c.SMTP.Host, "SMTP_HOST")
	overrideInt(&c.SMTP.Port, "SMTP_PORT")
	overrideString(&c.SMTP.Username, "SMTP_USERNAME")
	overrideString(&c.SMTP.Password, "SMTP_PASSWORD")
	overrideString(&c.SMTP.From, "SMTP_FROM")
	overrideString(&c.Database.Password, "DATABASE_PASSWORD")
	overrideString(&c.Redis.Password, "REDIS_PASSWORD")
}

func (c *Config) applyDefaults() {
	c.App.Environment = strings.ToLower(strings.TrimSpace(c.App.Environment))
	if c.App.Environment == "" {
		c.App.Environment = EnvDevelopment
	}

	setDefaultInt(&c.Server.HTTPPort, 8080)
	setDefaultInt(&c.Server.ReadTimeout, 15)
	setDefaultInt(&c.Server.WriteTimeout, 15)
	setDefaultInt(&c.Server.IdleTimeout, 60)
	setDefaultInt(&c.Server.ShutdownTimeout, 10)
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = 64 << 10
	}

	setDefaultString(&c.Logs.Level, "info")
	setDefaultString(&c.Metrics.Path, "/metrics")
	setDefaultString(&c.Metrics.ServiceName, "meeting_booking")

	setDefaultString(&c.BusinessHours.OpenTime, domain.DefaultOpenTime)
	setDefaultString(&c.BusinessHours.CloseTime, domain.DefaultCloseTime)
	setDefaultInt(&c.BusinessHours.SlotDurationMinutes, domain.DefaultSlotDurationMinutes)
	setDefaultString(&c.BusinessHours.Timezone, domain.DefaultTimezone)
	if c.BusinessHours.WindowStartOffsetDays == nil {
		offset := domain.DefaultWindowStartOffsetDays
		c.BusinessHours.WindowStartOffsetDays = &offset
	}
	setDefaultInt(&c.BusinessHours.WindowDays, domain.DefaultWindowDays)
	if c.BusinessHours.SkipWeekends == nil {
		skip := true
		c.BusinessHours.SkipWeekends = &skip
	}

	setDefaultString(&c.Calendar.CalendarID, "primary")
	setDefaultInt(&c.Calendar.Timeout, 10)

	setDefaultInt(&c.SMTP.Port, 587)
	setDefaultInt(&c.SMTP.Timeout, 10)
	setDefaultString(&c.SMTP.FromName, "Meeting Booking")

	setDefaultInt(&c.Notifications.Workers, 2)
	setDefaultInt(&c.Notifications.QueueSize, 100)
	setDefaultInt(&c.Notifications.SendTimeout, 15)

	if c.RateLimit.Enabled == nil {
		enabled := true
		c.RateLimit.Enabled = &enabled
	}
	setDefaultString(&c.RateLimit.Backend, RateLimitMemory)
	setDefaultInt(&c.RateLimit.Requests, 10)
	setDefaultInt(&c.RateLimit.WindowSeconds, 3600)

	setDefaultString(&c.Storage.Driver, StorageMemory)

	setDefaultInt(&c.Database.Port, 5432)
	setDefaultString(&c.Database.SSLMode, "disable")
	setDefaultInt(&c.Database.MaxOpenConns, 10)
	setDefaultInt(&c.Database.MaxIdleConns, 5)
	setDefaultInt(&c.Database.ConnMaxLifetime, 300)

	setDefaultString(&c.Redis.Prefix, "meeting_booking:ratelimit")
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.App.Environment != EnvDevelopment && c.App.Environment != EnvProduction {
		return fmt.Errorf("%w: app.environment must be %q or %q, got %q",
			ErrInvalidConfig, EnvDevelopment, EnvProduction, c.App.Environment)
	}

	if _, err := time.LoadLocation(c.BusinessHours.Timezone); err != nil {
		return fmt.Errorf("%w: business_hours.timezone %q: %v", ErrInvalidConfig, c.BusinessHours.Timezone, err)
	}

	open, err := types.NewTimeStringFromString(c.BusinessHours.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: business_hours.open_time: %v", ErrInvalidConfig, err)
	}
	closeTime, err := types.NewTimeStringFromString(c.BusinessHours.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: business_hours.close_time: %v", ErrInvalidConfig, err)
	}
	if !open.IsBefore(closeTime) {
		return fmt.Errorf("%w: business_hours.open_time must be before close_time", ErrInvalidConfig)
	}
	if c.BusinessHours.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: business_hours.slot_duration_minutes must be positive", ErrInvalidConfig)
	}
	if c.BusinessHours.WindowStartOffsetDays != nil && *c.BusinessHours.WindowStartOffsetDays < 0 {
		return fmt.Errorf("%w: business_hours.window_start_offset_days must not be negative", ErrInvalidConfig)
	}
	if c.BusinessHours.WindowDays > domain.MaxWindowDays {
		return fmt.Errorf("%w: business_hours.window_days must be at most %d", ErrInvalidConfig, domain.MaxWindowDays)
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Notifications.MaxPerSecond < 0 {
		return fmt.Errorf("%w: notifications.max_per_second must not be negative", ErrInvalidConfig)
	}

	if !c.RateLimit.IsEnabled() && c.IsProduction() {
		return fmt.Errorf("%w: rate_limit can be disabled only in development", ErrInvalidConfig)
	}
	if c.RateLimit.IsEnabled() {
		switch c.RateLimit.Backend {
		case RateLimitMemory:
		case RateLimitRedis:
			if c.Redis.Addr == "" {
				return fmt.Errorf("%w: redis.addr is required for redis rate limiter", ErrInvalidConfig)
			}
		default:
			return fmt.Errorf("%w: unknown rate_limit.backend %q", ErrInvalidConfig, c.RateLimit.Backend)
		}
	}

	return nil
}

// IsProduction returns true for production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Policy собирает политику рабочего времени (конфиг уже провалидирован)
func (b BusinessHoursConfig) Policy() (domain.BusinessHoursPolicy, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return domain.BusinessHoursPolicy{}, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, b.Timezone, err)
	}
	skip := true
	if b.SkipWeekends != nil {
		skip = *b.SkipWeekends
	}
	offset := domain.DefaultWindowStartOffsetDays
	if b.WindowStartOffsetDays != nil {
		offset = *b.WindowStartOffsetDays
	}
	return domain.BusinessHoursPolicy{
		OpenTime:              types.TimeString(b.OpenTime),
		CloseTime:             types.TimeString(b.CloseTime),
		SlotDurationMinutes:   b.SlotDurationMinutes,
		Location:              loc,
		WindowStartOffsetDays: offset,
		WindowDays:            b.WindowDays,
		SkipWeekends:          skip,
	}, nil
}

// IsConfigured returns true when calendar credentials are present
func (c CalendarConfig) IsConfigured() bool {
	return c.CredentialsJSON != "" || c.CredentialsFile != ""
}

// IsConfigured returns true when SMTP host and sender are present
func (s SMTPConfig) IsConfigured() bool {
	return s.Host != "" && s.From != ""
}

// IsEnabled по умолчанию лимит включен
func (r RateLimitConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// Window окно лимита запросов
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDefaultString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func setDefaultInt(dst *int, def int) {
	if *dst <= 0 {
		*dst = def
	}
}
