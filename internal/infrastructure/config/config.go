package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Report    ReportConfig
	Print     PrintConfig
	Archive   ArchiveConfig
	Swagger   SwaggerConfig
	Telemetry TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `config:"log.level" validate:"oneof=debug info warn warning error"`
	Format string `config:"log.format" validate:"oneof=json console"`
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string `config:"app.port" validate:"numeric"`
	// DefaultTenantID is used when a request carries no X-Tenant-ID header
	DefaultTenantID string `config:"app.default_tenant_id" validate:"omitempty,uuid"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int `config:"database.max_open_conns" validate:"gt=0"`
	MaxIdleConns    int `config:"database.max_idle_conns" validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port address of the Redis server
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// ReportConfig holds balance sheet computation settings
type ReportConfig struct {
	// InventoryFailurePolicy is "lenient" (failed category valued at zero) or "strict"
	InventoryFailurePolicy string `config:"report.inventory_failure_policy" validate:"oneof=lenient strict"`
	// SourceTimeout bounds the ledger reads of one computation, zero disables it
	SourceTimeout time.Duration `config:"report.source_timeout" validate:"gte=0"`
	CacheEnabled  bool
	CacheBackend  string        `config:"report.cache_backend" validate:"oneof=memory redis"`
	CacheTTL      time.Duration `config:"report.cache_ttl" validate:"gte=0"`
}

// PrintConfig holds balance sheet printing and PDF export settings
type PrintConfig struct {
	CompanyName    string
	Language       string `config:"print.language" validate:"bcp47_language_tag"`
	CurrencySymbol string
	TimeZone       string `config:"print.timezone" validate:"timezone"`
	// PDFEnabled mounts the PDF download, which needs a reachable Chrome
	PDFEnabled      bool
	ChromeRemoteURL string `config:"print.chrome_remote_url" validate:"omitempty,url"`
	ChromeExecPath  string
	NoSandbox       bool
	RenderTimeout   time.Duration `config:"print.render_timeout" validate:"gte=0"`
}

// ArchiveConfig holds the S3-compatible bucket exported PDFs are archived to
type ArchiveConfig struct {
	Enabled           bool
	Endpoint          string // e.g. "localhost:9000" for MinIO
	Region            string
	Bucket            string `config:"archive.bucket" validate:"required_if=Enabled true"`
	AccessKey         string `config:"archive.access_key" validate:"required_if=Enabled true"`
	SecretKey         string `config:"archive.secret_key" validate:"required_if=Enabled true"`
	UseSSL            bool
	UsePathStyle      bool
	PresignExpiration time.Duration `config:"archive.presign_expiration" validate:"gte=0"`
}

// SwaggerConfig holds API documentation endpoint configuration
type SwaggerConfig struct {
	Enabled    bool
	AllowedIPs []string `config:"swagger.allowed_ips" validate:"dive,ip|cidr"` // empty = allow all
}

// TelemetryConfig holds OpenTelemetry and profiling configuration
type TelemetryConfig struct {
	Enabled           bool    // Export traces
	MetricsEnabled    bool    // Export metrics
	LogsEnabled       bool    // Export logs through the zap bridge
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 `config:"telemetry.sampling_ratio" validate:"gte=0,lte=1"` // 1.0 = 100%
	ServiceName       string
	Insecure          bool // Use insecure (non-TLS) connection (development only)
	MetricsInterval   time.Duration
	LogsInterval      time.Duration
	// Database tracing options
	DBTraceEnabled    bool
	DBLogFullSQL      bool // Include query variables in spans (dev only)
	DBSlowQueryThresh time.Duration
	// Continuous profiling
	ProfilingEnabled   bool
	ProfilingServerURL string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ERP_ prefix (e.g., ERP_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("swagger.enabled", true)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("ERP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:            v.GetString("app.name"),
			Env:             v.GetString("app.env"),
			Port:            v.GetString("app.port"),
			DefaultTenantID: v.GetString("app.default_tenant_id"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Report: ReportConfig{
			InventoryFailurePolicy: v.GetString("report.inventory_failure_policy"),
			SourceTimeout:          v.GetDuration("report.source_timeout"),
			CacheEnabled:           v.GetBool("report.cache_enabled"),
			CacheBackend:           v.GetString("report.cache_backend"),
			CacheTTL:               v.GetDuration("report.cache_ttl"),
		},
		Print: PrintConfig{
			CompanyName:     v.GetString("print.company_name"),
			Language:        v.GetString("print.language"),
			CurrencySymbol:  v.GetString("print.currency_symbol"),
			TimeZone:        v.GetString("print.timezone"),
			PDFEnabled:      v.GetBool("print.pdf_enabled"),
			ChromeRemoteURL: v.GetString("print.chrome_remote_url"),
			ChromeExecPath:  v.GetString("print.chrome_exec_path"),
			NoSandbox:       v.GetBool("print.no_sandbox"),
			RenderTimeout:   v.GetDuration("print.render_timeout"),
		},
		Archive: ArchiveConfig{
			Enabled:           v.GetBool("archive.enabled"),
			Endpoint:          v.GetString("archive.endpoint"),
			Region:            v.GetString("archive.region"),
			Bucket:            v.GetString("archive.bucket"),
			AccessKey:         v.GetString("archive.access_key"),
			SecretKey:         v.GetString("archive.secret_key"),
			UseSSL:            v.GetBool("archive.use_ssl"),
			UsePathStyle:      v.GetBool("archive.use_path_style"),
			PresignExpiration: v.GetDuration("archive.presign_expiration"),
		},
		Swagger: SwaggerConfig{
			Enabled:    v.GetBool("swagger.enabled"),
			AllowedIPs: v.GetStringSlice("swagger.allowed_ips"),
		},
		Telemetry: TelemetryConfig{
			Enabled:            v.GetBool("telemetry.enabled"),
			MetricsEnabled:     v.GetBool("telemetry.metrics_enabled"),
			LogsEnabled:        v.GetBool("telemetry.logs_enabled"),
			CollectorEndpoint:  v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:      v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:        v.GetString("telemetry.service_name"),
			Insecure:           v.GetBool("telemetry.insecure"),
			MetricsInterval:    v.GetDuration("telemetry.metrics_interval"),
			LogsInterval:       v.GetDuration("telemetry.logs_interval"),
			DBTraceEnabled:     v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:       v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh:  v.GetDuration("telemetry.db_slow_query_threshold"),
			ProfilingEnabled:   v.GetBool("telemetry.profiling_enabled"),
			ProfilingServerURL: v.GetString("telemetry.profiling_server_url"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "balance-sheet"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.App.DefaultTenantID == "" {
		cfg.App.DefaultTenantID = "00000000-0000-0000-0000-000000000001"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "erp"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 30 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	// An empty origin list allows no cross-origin requests until configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID", "X-Tenant-ID"}
	}
	if cfg.Report.InventoryFailurePolicy == "" {
		cfg.Report.InventoryFailurePolicy = "lenient"
	}
	if cfg.Report.CacheBackend == "" {
		cfg.Report.CacheBackend = "memory"
	}
	if cfg.Report.CacheTTL == 0 {
		cfg.Report.CacheTTL = 30 * time.Second
	}
	if cfg.Print.Language == "" {
		cfg.Print.Language = "en"
	}
	if cfg.Print.TimeZone == "" {
		cfg.Print.TimeZone = "UTC"
	}
	if cfg.Print.RenderTimeout == 0 {
		cfg.Print.RenderTimeout = 30 * time.Second
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
	if cfg.Telemetry.LogsInterval == 0 {
		cfg.Telemetry.LogsInterval = time.Second
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.Telemetry.ProfilingServerURL == "" {
		cfg.Telemetry.ProfilingServerURL = "http://localhost:4040"
	}

	if cfg.Archive.Region == "" {
		cfg.Archive.Region = "us-east-1"
	}
	if cfg.Archive.PresignExpiration == 0 {
		cfg.Archive.PresignExpiration = 15 * time.Minute
	}
}

// validate checks field rules declared in struct tags, then the production guards
func (c *Config) validate() error {
	if err := newValidator().Struct(c); err != nil {
		return formatValidationError(err)
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Swagger.Enabled && len(c.Swagger.AllowedIPs) == 0 {
			return fmt.Errorf("swagger endpoint must be disabled or restricted by swagger.allowed_ips in production")
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production")
		}
	}

	return nil
}

// newValidator reports fields by their configuration key
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if key := fld.Tag.Get("config"); key != "" {
			return key
		}
		return fld.Name
	})
	return v
}

// formatValidationError turns the first field error into a readable message
func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	e := fieldErrs[0]
	switch e.Tag() {
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", e.Field(), e.Param(), fmt.Sprint(e.Value()))
	case "gt":
		return fmt.Errorf("%s must be greater than %s", e.Field(), e.Param())
	case "gte":
		return fmt.Errorf("%s cannot be negative, got %v", e.Field(), e.Value())
	case "lte":
		return fmt.Errorf("%s must be between 0.0 and %s, got %v", e.Field(), e.Param(), e.Value())
	case "ltefield":
		return fmt.Errorf("%s (%v) cannot exceed database.max_open_conns", e.Field(), e.Value())
	case "bcp47_language_tag":
		return fmt.Errorf("%s must be a BCP 47 language tag, got %q", e.Field(), fmt.Sprint(e.Value()))
	case "timezone":
		return fmt.Errorf("%s must be an IANA time zone, got %q", e.Field(), fmt.Sprint(e.Value()))
	case "url":
		return fmt.Errorf("%s must be a URL, got %q", e.Field(), fmt.Sprint(e.Value()))
	case "uuid":
		return fmt.Errorf("%s must be a UUID, got %q", e.Field(), fmt.Sprint(e.Value()))
	case "required_if":
		return fmt.Errorf("%s is required when archive.enabled is set", e.Field())
	case "ip|cidr":
		return fmt.Errorf("%s entries must be IP addresses or CIDR ranges, got %q", e.Field(), fmt.Sprint(e.Value()))
	case "numeric":
		return fmt.Errorf("%s must be numeric, got %q", e.Field(), fmt.Sprint(e.Value()))
	default:
		return fmt.Errorf("%s is invalid (%s)", e.Field(), e.Tag())
	}
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
