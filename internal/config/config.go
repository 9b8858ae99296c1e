package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported upstream providers
const (
	ProviderPesaFlux = "pesaflux"
	ProviderDaraja   = "daraja"
	ProviderSwiftPay = "swiftpay"
)

// Daraja transaction types
const (
	DarajaPayBill  = "CustomerPayBillOnline"
	DarajaBuyGoods = "CustomerBuyGoodsOnline"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Provider ProviderConfig
	Payment  PaymentConfig
	Redis    RedisConfig
	NSQ      NSQConfig
	Poll     PollConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host             string
	Port             string
	User             string
	Password         string
	DBName           string
	SSLMode          string
	ConnMaxLifetime  time.Duration
	MaxOpenConns     int
	MaxIdleConns     int
	MigrateOnStartup bool
}

// ProviderConfig selects and configures the single active STK push provider
type ProviderConfig struct {
	Name     string
	Timeout  time.Duration
	PesaFlux PesaFluxConfig
	Daraja   DarajaConfig
	SwiftPay SwiftPayConfig
}

// PesaFluxConfig holds PesaFlux aggregator credentials
type PesaFluxConfig struct {
	BaseURL string
	APIKey  string
	Email   string
}

// DarajaConfig holds Safaricom Daraja credentials
type DarajaConfig struct {
	BaseURL          string
	ConsumerKey      string
	ConsumerSecret   string
	ShortCode        string
	PartyB           string
	PassKey          string
	TransactionType  string
	AccountReference string
}

// SwiftPayConfig holds SwiftPay reseller credentials
type SwiftPayConfig struct {
	BaseURL string
	APIKey  string
	TillID  string
}

// PaymentConfig holds orchestration defaults
type PaymentConfig struct {
	CallbackURL        string
	ReferencePrefix    string
	DefaultDescription string
	DefaultLoanAmount  int64
}

// RedisConfig holds the optional cache connection. An empty Addr disables it.
type RedisConfig struct {
	Addr      string
	Password  string
	KeyPrefix string
	DB        int
}

// NSQConfig holds the optional settlement event producer. An empty Address disables it.
type NSQConfig struct {
	Address string
	Topic   string
}

// PollConfig bounds caller-side status polling
type PollConfig struct {
	Interval     time.Duration
	InitialDelay time.Duration
	MaxAttempts  int
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

type binding struct {
	def any
	key string
	env string
}

var bindings = []binding{
	{key: "server.port", env: "PORT", def: "8080"},
	{key: "server.read_timeout", env: "SERVER_READ_TIMEOUT", def: "15s"},
	{key: "server.write_timeout", env: "SERVER_WRITE_TIMEOUT", def: "30s"},
	{key: "server.idle_timeout", env: "SERVER_IDLE_TIMEOUT", def: "60s"},
	{key: "server.shutdown_timeout", env: "SERVER_SHUTDOWN_TIMEOUT", def: "30s"},

	{key: "database.host", env: "DB_HOST", def: "localhost"},
	{key: "database.port", env: "DB_PORT", def: "5432"},
	{key: "database.user", env: "DB_USER", def: "postgres"},
	{key: "database.password", env: "DB_PASSWORD", def: "postgres"},
	{key: "database.name", env: "DB_NAME", def: "payments"},
	{key: "database.sslmode", env: "DB_SSLMODE", def: "disable"},
	{key: "database.max_open_conns", env: "DB_MAX_OPEN_CONNS", def: 25},
	{key: "database.max_idle_conns", env: "DB_MAX_IDLE_CONNS", def: 5},
	{key: "database.conn_max_lifetime", env: "DB_CONN_MAX_LIFETIME", def: "5m"},
	{key: "database.migrate", env: "DB_MIGRATE", def: true},

	{key: "provider.name", env: "PAYMENT_PROVIDER", def: ProviderPesaFlux},
	{key: "provider.timeout", env: "PROVIDER_TIMEOUT", def: "30s"},
	{key: "provider.pesaflux.base_url", env: "PESAFLUX_BASE_URL", def: "https://api.pesaflux.co.ke"},
	{key: "provider.pesaflux.api_key", env: "PESAFLUX_API_KEY", def: ""},
	{key: "provider.pesaflux.email", env: "PESAFLUX_EMAIL", def: ""},
	{key: "provider.daraja.base_url", env: "DARAJA_BASE_URL", def: "https://sandbox.safaricom.co.ke"},
	{key: "provider.daraja.consumer_key", env: "DARAJA_CONSUMER_KEY", def: ""},
	{key: "provider.daraja.consumer_secret", env: "DARAJA_CONSUMER_SECRET", def: ""},
	{key: "provider.daraja.short_code", env: "DARAJA_SHORT_CODE", def: ""},
	{key: "provider.daraja.party_b", env: "DARAJA_PARTY_B", def: ""},
	{key: "provider.daraja.pass_key", env: "DARAJA_PASS_KEY", def: ""},
	{key: "provider.daraja.transaction_type", env: "DARAJA_TRANSACTION_TYPE", def: DarajaPayBill},
	{key: "provider.daraja.account_reference", env: "DARAJA_ACCOUNT_REFERENCE", def: ""},
	{key: "provider.swiftpay.base_url", env: "SWIFTPAY_BASE_URL", def: "https://swiftpay-backend-uvv9.onrender.com"},
	{key: "provider.swiftpay.api_key", env: "SWIFTPAY_API_KEY", def: ""},
	{key: "provider.swiftpay.till_id", env: "SWIFTPAY_TILL_ID", def: ""},

	{key: "payment.callback_url", env: "PAYMENT_CALLBACK_URL", def: ""},
	{key: "payment.reference_prefix", env: "PAYMENT_REFERENCE_PREFIX", def: "ZENKA"},
	{key: "payment.default_description", env: "PAYMENT_DEFAULT_DESCRIPTION", def: "Loan Processing Fee"},
	{key: "payment.default_loan_amount", env: "PAYMENT_DEFAULT_LOAN_AMOUNT", def: 5000},

	{key: "redis.addr", env: "REDIS_ADDR", def: ""},
	{key: "redis.password", env: "REDIS_PASSWORD", def: ""},
	{key: "redis.db", env: "REDIS_DB", def: 0},
	{key: "redis.key_prefix", env: "REDIS_KEY_PREFIX", def: "payments"},

	{key: "nsq.address", env: "NSQD_ADDRESS", def: ""},
	{key: "nsq.topic", env: "NSQ_SETTLEMENT_TOPIC", def: "payments.settled"},

	{key: "poll.max_attempts", env: "POLL_MAX_ATTEMPTS", def: 24},
	{key: "poll.interval", env: "POLL_INTERVAL", def: "5s"},
	{key: "poll.initial_delay", env: "POLL_INITIAL_DELAY", def: "3s"},

	{key: "logger.level", env: "LOG_LEVEL", def: "info"},
	{key: "logger.format", env: "LOG_FORMAT", def: "json"},
}

// Load loads configuration from the environment, an optional CONFIG_FILE and
// built-in defaults.
func Load() (*Config, error) {
	return LoadWithOverrides(nil)
}

// LoadWithOverrides loads configuration with explicit values on top.
//
// Precedence: overrides > environment > config file > defaults.
func LoadWithOverrides(overrides map[string]any) (*Config, error) {
	v, err := newViper(overrides)
	if err != nil {
		return nil, err
	}

	cfg := fromViper(v)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadClient loads only the sections a CLI caller needs: polling and logging.
// Server, database and provider settings are neither read nor validated.
func LoadClient(overrides map[string]any) (PollConfig, LoggerConfig, error) {
	v, err := newViper(overrides)
	if err != nil {
		return PollConfig{}, LoggerConfig{}, err
	}

	cfg := fromViper(v)
	if err := cfg.Poll.Validate(); err != nil {
		return PollConfig{}, LoggerConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg.Poll, cfg.Logger, nil
}

func newViper(overrides map[string]any) (*viper.Viper, error) {
	loadDotEnv()

	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", b.env, err)
		}
	}

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	return v, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			IdleTimeout:     v.GetDuration("server.idle_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			Host:             v.GetString("database.host"),
			Port:             v.GetString("database.port"),
			User:             v.GetString("database.user"),
			Password:         v.GetString("database.password"),
			DBName:           v.GetString("database.name"),
			SSLMode:          v.GetString("database.sslmode"),
			MaxOpenConns:     v.GetInt("database.max_open_conns"),
			MaxIdleConns:     v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime:  v.GetDuration("database.conn_max_lifetime"),
			MigrateOnStartup: v.GetBool("database.migrate"),
		},
		Provider: ProviderConfig{
			Name:    strings.ToLower(v.GetString("provider.name")),
			Timeout: v.GetDuration("provider.timeout"),
			PesaFlux: PesaFluxConfig{
				BaseURL: v.GetString("provider.pesaflux.base_url"),
				APIKey:  v.GetString("provider.pesaflux.api_key"),
				Email:   v.GetString("provider.pesaflux.email"),
			},
			Daraja: DarajaConfig{
				BaseURL:          v.GetString("provider.daraja.base_url"),
				ConsumerKey:      v.GetString("provider.daraja.consumer_key"),
				ConsumerSecret:   v.GetString("provider.daraja.consumer_secret"),
				ShortCode:        v.GetString("provider.daraja.short_code"),
				PartyB:           v.GetString("provider.daraja.party_b"),
				PassKey:          v.GetString("provider.daraja.pass_key"),
				TransactionType:  v.GetString("provider.daraja.transaction_type"),
				AccountReference: v.GetString("provider.daraja.account_reference"),
			},
			SwiftPay: SwiftPayConfig{
				BaseURL: v.GetString("provider.swiftpay.base_url"),
				APIKey:  v.GetString("provider.swiftpay.api_key"),
				TillID:  v.GetString("provider.swiftpay.till_id"),
			},
		},
		Payment: PaymentConfig{
			CallbackURL:        v.GetString("payment.callback_url"),
			ReferencePrefix:    v.GetString("payment.reference_prefix"),
			DefaultDescription: v.GetString("payment.default_description"),
			DefaultLoanAmount:  v.GetInt64("payment.default_loan_amount"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("redis.addr"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		NSQ: NSQConfig{
			Address: v.GetString("nsq.address"),
			Topic:   v.GetString("nsq.topic"),
		},
		Poll: PollConfig{
			MaxAttempts:  v.GetInt("poll.max_attempts"),
			Interval:     v.GetDuration("poll.interval"),
			InitialDelay: v.GetDuration("poll.initial_delay"),
		},
		Logger: LoggerConfig{
			Level:  strings.ToLower(v.GetString("logger.level")),
			Format: strings.ToLower(v.GetString("logger.format")),
		},
	}
}

// loadDotEnv reads .env into the process environment for local runs.
// Variables already set in the environment win.
func loadDotEnv() {
	appEnv := os.Getenv("APP_ENV")
	if appEnv != "" && appEnv != "local" {
		return
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host cannot be empty")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name cannot be empty")
	}

	if err := c.Provider.Validate(); err != nil {
		return err
	}

	if c.Payment.DefaultLoanAmount <= 0 {
		return fmt.Errorf("default loan amount must be positive, got %d", c.Payment.DefaultLoanAmount)
	}

	if err := c.Poll.Validate(); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if c.Logger.Format != "json" && c.Logger.Format != "text" {
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Logger.Format)
	}

	return nil
}

// Validate checks that the active provider has everything it needs.
func (p *ProviderConfig) Validate() error {
	if p.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive")
	}

	switch p.Name {
	case ProviderPesaFlux:
		if p.PesaFlux.BaseURL == "" || p.PesaFlux.APIKey == "" || p.PesaFlux.Email == "" {
			return fmt.Errorf("pesaflux requires PESAFLUX_BASE_URL, PESAFLUX_API_KEY and PESAFLUX_EMAIL")
		}
	case ProviderDaraja:
		d := p.Daraja
		if d.BaseURL == "" || d.ConsumerKey == "" || d.ConsumerSecret == "" || d.ShortCode == "" || d.PassKey == "" {
			return fmt.Errorf("daraja requires base url, consumer key, consumer secret, short code and pass key")
		}
		if d.TransactionType != DarajaPayBill && d.TransactionType != DarajaBuyGoods {
			return fmt.Errorf("invalid daraja transaction type: %s", d.TransactionType)
		}
	case ProviderSwiftPay:
		if p.SwiftPay.BaseURL == "" || p.SwiftPay.APIKey == "" || p.SwiftPay.TillID == "" {
			return fmt.Errorf("swiftpay requires SWIFTPAY_BASE_URL, SWIFTPAY_API_KEY and SWIFTPAY_TILL_ID")
		}
	default:
		return fmt.Errorf("unknown payment provider: %q (must be pesaflux, daraja, or swiftpay)", p.Name)
	}

	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL returns the connection string in postgres:// form, as golang-migrate expects
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.DBName,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

// Validate checks the polling bounds
func (c PollConfig) Validate() error {
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("poll max attempts must be positive, got %d", c.MaxAttempts)
	}
	if c.Interval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.InitialDelay < 0 {
		return errors.New("poll initial delay cannot be negative")
	}
	return nil
}
