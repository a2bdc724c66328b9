package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Lookup    LookupConfig
	Documents DocumentsConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	WhitelistPaths    []string
}

// LookupConfig configures the optional external enrichment client
// (postal-code and tax-registry lookups). The app runs without it.
type LookupConfig struct {
	Enabled        bool
	PostalBaseURL  string
	TaxIDBaseURL   string
	TimeoutSeconds int
}

// DocumentsConfig carries the branding and layout defaults handed to the
// document renderer. Rendering reads only this explicit object, never
// ambient state.
type DocumentsConfig struct {
	CompanyName    string
	CompanyTaxID   string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	CurrencySymbol string
	FooterNote     string
}

// JobsConfig configures the background job scheduler
type JobsConfig struct {
	Enabled             bool
	QuoteExpiryCron     string
	IntegrityCron       string
	IntegrityWindowDays int
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// TimeoutDuration returns the lookup client timeout as duration
func (l *LookupConfig) TimeoutDuration() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// Load loads configuration from file and environment variables.
// Environment variables override the config file; a local .env file is
// honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "primeorcamentos-api")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "primeorcamentos")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxopenconns", 25)
	v.SetDefault("database.maxidleconns", 5)
	v.SetDefault("database.connmaxlifetime", 300)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.readtimeout", 15)
	v.SetDefault("server.writetimeout", 30)
	v.SetDefault("server.requesttimeout", 60)
	v.SetDefault("server.enableswagger", true)

	v.SetDefault("cors.allowedmethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedheaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.allowcredentials", true)
	v.SetDefault("cors.maxage", 300)

	v.SetDefault("security.contenttypenosniff", true)
	v.SetDefault("security.frameoptions", "DENY")
	v.SetDefault("security.referrerpolicy", "strict-origin-when-cross-origin")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requestsperminute", 120)
	v.SetDefault("ratelimit.whitelistpaths", []string{"/health", "/health/db", "/health/ready"})

	v.SetDefault("lookup.enabled", false)
	v.SetDefault("lookup.postalbaseurl", "https://viacep.com.br/ws")
	v.SetDefault("lookup.taxidbaseurl", "https://brasilapi.com.br/api/cnpj/v1")
	v.SetDefault("lookup.timeoutseconds", 5)

	v.SetDefault("documents.companyname", "Prime Orçamentos")
	v.SetDefault("documents.currencysymbol", "R$")

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.quoteexpirycron", "0 0 3 * * *")
	v.SetDefault("jobs.integritycron", "0 30 3 * * *")
	v.SetDefault("jobs.integritywindowdays", 7)
}
