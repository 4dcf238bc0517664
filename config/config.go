package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Mail transports selectable with MAIL_TRANSPORT.
const (
	TransportSendmail = "sendmail"
	TransportSMTP     = "smtp"
	TransportResend   = "resend"
	TransportLog      = "log"
)

// Database drivers selectable with DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is loaded once at startup and treated as read-only afterwards.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"debug"`
	// PublicBaseURL is used to build confirmation links. When empty the
	// request's scheme and host are used.
	PublicBaseURL  string   `env:"PUBLIC_BASE_URL"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	// TrustedProxies may set X-Forwarded-For. Empty means the socket
	// address is the client IP.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	// SubmissionLogDir receives the monthly submission logs. Logging is
	// skipped when the directory does not exist.
	SubmissionLogDir string `env:"SUBMISSION_LOG_DIR" envDefault:"logs"`

	Company    CompanyConfig    `envPrefix:"COMPANY_"`
	Mail       MailConfig       `envPrefix:"MAIL_"`
	SMTP       SMTPConfig       `envPrefix:"SMTP_"`
	Contact    ContactConfig    `envPrefix:"CONTACT_"`
	Newsletter NewsletterConfig `envPrefix:"NEWSLETTER_"`
	Database   DatabaseConfig   `envPrefix:"DB_"`
	Redis      RedisConfig      `envPrefix:"REDIS_"`
	Session    SessionConfig    `envPrefix:"SESSION_"`
	Throttle   ThrottleConfig   `envPrefix:"THROTTLE_"`
}

type CompanyConfig struct {
	Name      string `env:"NAME" envDefault:"NexGen Solutions"`
	FromEmail string `env:"FROM_EMAIL" envDefault:"noreply@nexgensolutions.com"`
	Address   string `env:"ADDRESS" envDefault:"2847 Maple Avenue, Los Angeles, CA 90210"`
}

type MailConfig struct {
	// Transport is one of sendmail, smtp, resend or log.
	Transport    string `env:"TRANSPORT" envDefault:"sendmail"`
	SendmailPath string `env:"SENDMAIL_PATH" envDefault:"/usr/sbin/sendmail"`
	ResendAPIKey string `env:"RESEND_API_KEY"`
}

type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

type ContactConfig struct {
	ReceivingEmail   string `env:"EMAIL_TO" envDefault:"contact@nexgensolutions.com"`
	CooldownSeconds  int    `env:"COOLDOWN_SECONDS" envDefault:"60"`
	MaxMessageLength int    `env:"MAX_MESSAGE_LENGTH" envDefault:"5000"`
}

type NewsletterConfig struct {
	ReceivingEmail  string `env:"EMAIL_TO" envDefault:"newsletter@nexgensolutions.com"`
	CooldownSeconds int    `env:"COOLDOWN_SECONDS" envDefault:"30"`
	// AdminNotification sends a notice of every new subscriber to ReceivingEmail.
	AdminNotification bool `env:"ADMIN_NOTIFICATION" envDefault:"true"`
	// SendConfirmation sends a welcome message to the subscriber.
	SendConfirmation bool `env:"SEND_CONFIRMATION" envDefault:"true"`
	// UseDatabase enables duplicate detection and subscriber persistence.
	UseDatabase bool `env:"USE_DATABASE" envDefault:"false"`
	// RequireDoubleOptIn adds a confirmation link to the welcome message.
	RequireDoubleOptIn bool   `env:"DOUBLE_OPTIN" envDefault:"false"`
	Table              string `env:"TABLE" envDefault:"newsletter_subscribers"`
}

type DatabaseConfig struct {
	Driver     string `env:"DRIVER" envDefault:"postgres"`
	URL        string `env:"URL"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"formrelay.db"`
}

type RedisConfig struct {
	URL      string `env:"URL"`
	Password string `env:"PASSWORD"`
}

type SessionConfig struct {
	CookieName string `env:"COOKIE_NAME" envDefault:"formrelay_session"`
	MaxAgeSecs int    `env:"MAX_AGE_SECONDS" envDefault:"86400"`
	Secure     bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

type ThrottleConfig struct {
	RPS   float64 `env:"RPS" envDefault:"20"`
	Burst int     `env:"BURST" envDefault:"40"`
}

func LoadConfig() (*Config, error) {
	// Only effective locally; a missing .env file is fine
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	cfg.Mail.Transport = strings.ToLower(strings.TrimSpace(cfg.Mail.Transport))
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Newsletter.UseDatabase && cfg.Database.Driver == DriverPostgres && cfg.Database.URL == "" {
		log.Println("WARNING: DB_URL is missing. Subscriber storage will be unavailable.")
	}
	if cfg.Redis.URL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory storage.")
	}

	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Mail.Transport {
	case TransportSendmail, TransportSMTP, TransportResend, TransportLog:
	default:
		return fmt.Errorf("config: unknown MAIL_TRANSPORT %q", c.Mail.Transport)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.Database.Driver)
	}
	if c.Contact.CooldownSeconds < 0 || c.Newsletter.CooldownSeconds < 0 {
		return fmt.Errorf("config: cooldowns must not be negative")
	}
	for _, o := range c.AllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("config: ALLOWED_ORIGINS entry %q must start with http:// or https://", o)
		}
	}
	if c.Contact.MaxMessageLength < 10 {
		return fmt.Errorf("config: CONTACT_MAX_MESSAGE_LENGTH must be at least 10")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
