package app

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aussiebroadwan/cnap/pkg/jwtx"
	"github.com/caarlos0/env/v11"
)

// Config is read from the environment once at startup and handed to every
// component that needs it.
type Config struct {
	Env                 string        `env:"ENV"                   envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DatabaseDriver string `env:"CNAP_DATABASE_DRIVER" envDefault:"sqlite"` // sqlite or postgres
	DatabaseFile   string `env:"CNAP_DATABASE_FILE"   envDefault:"cnap.db"`
	DatabaseURL    string `env:"CNAP_DATABASE_URL"`

	PollInterval time.Duration `env:"CNAP_POLL_INTERVAL" envDefault:"60s"`
	PollWorkers  int           `env:"CNAP_POLL_WORKERS"  envDefault:"1"`

	MailboxDriver      string `env:"CNAP_MAILBOX_DRIVER" envDefault:"dir"`          // dir or s3
	MailboxDir         string `env:"CNAP_MAILBOX_DIR" envDefault:"mail"`
	MailboxS3Bucket    string `env:"CNAP_MAILBOX_S3_BUCKET"`
	MailboxS3Prefix    string `env:"CNAP_MAILBOX_S3_PREFIX"`
	MailboxS3Region    string `env:"CNAP_MAILBOX_S3_REGION" envDefault:"us-east-1"`
	MailboxS3Endpoint  string `env:"CNAP_MAILBOX_S3_ENDPOINT"`
	MailboxS3Path      bool   `env:"CNAP_MAILBOX_S3_PATH_STYLE"`
	MailboxS3KeyID     string `env:"CNAP_MAILBOX_S3_ACCESS_KEY_ID"`                 // empty uses the default credential chain
	MailboxS3SecretKey string `env:"CNAP_MAILBOX_S3_SECRET_ACCESS_KEY"`
	MailFolder         string `env:"CNAP_MAIL_FOLDER" envDefault:"INBOX"`

	FacilityAddress string `env:"CNAP_FACILITY_ADDRESS"`
	FacilityName    string `env:"CNAP_FACILITY_NAME"    envDefault:"CNAP Team"`
	AccountSubject  string `env:"CNAP_ACCOUNT_SUBJECT"  envDefault:"CNAP Account Request"`
	PipelineSubject string `env:"CNAP_PIPELINE_SUBJECT" envDefault:"CNAP Pipeline Request"`

	SMTPAddr      string   `env:"CNAP_SMTP_ADDR"` // empty logs outbound mail instead of sending it
	SMTPUsername  string   `env:"CNAP_SMTP_USERNAME"`
	SMTPPassword  string   `env:"CNAP_SMTP_PASSWORD"`
	MailFrom      string   `env:"CNAP_MAIL_FROM"`
	StaffEmails   []string `env:"CNAP_STAFF_EMAILS"          envSeparator:","`
	TestAddresses []string `env:"CNAP_TEST_EMAIL_ADDRESSES"  envSeparator:","`

	PublicBaseURL    string `env:"CNAP_PUBLIC_BASE_URL"`
	AnalysisAPIURL   string `env:"CNAP_ANALYSIS_API_URL"`
	AnalysisAPIToken string `env:"CNAP_ANALYSIS_API_TOKEN"`

	StaffTokenSecret string `env:"CNAP_STAFF_TOKEN_SECRET"`
	StaffTokenIssuer string `env:"CNAP_STAFF_TOKEN_ISSUER" envDefault:"cnap"`
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("CNAP_DATABASE_FILE is required for the sqlite driver"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("CNAP_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("CNAP_DATABASE_DRIVER %q: want sqlite or postgres", c.DatabaseDriver))
	}

	switch c.MailboxDriver {
	case "dir":
		if c.MailboxDir == "" {
			errs = append(errs, errors.New("CNAP_MAILBOX_DIR is required for the dir mailbox"))
		}
	case "s3":
		if c.MailboxS3Bucket == "" {
			errs = append(errs, errors.New("CNAP_MAILBOX_S3_BUCKET is required for the s3 mailbox"))
		}
	default:
		errs = append(errs, fmt.Errorf("CNAP_MAILBOX_DRIVER %q: want dir or s3", c.MailboxDriver))
	}

	if c.FacilityAddress == "" {
		errs = append(errs, errors.New("CNAP_FACILITY_ADDRESS is required"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("CNAP_POLL_INTERVAL must be positive"))
	}
	if c.PollWorkers < 1 {
		errs = append(errs, errors.New("CNAP_POLL_WORKERS must be at least 1"))
	}
	if len(c.StaffTokenSecret) < jwtx.MinSecretLen {
		errs = append(errs, fmt.Errorf("CNAP_STAFF_TOKEN_SECRET must be at least %d bytes", jwtx.MinSecretLen))
	}
	if err := requireURL("CNAP_PUBLIC_BASE_URL", c.PublicBaseURL); err != nil {
		errs = append(errs, err)
	}
	if err := requireURL("CNAP_ANALYSIS_API_URL", c.AnalysisAPIURL); err != nil {
		errs = append(errs, err)
	}
	if c.SMTPAddr != "" && c.MailFrom == "" {
		errs = append(errs, errors.New("CNAP_MAIL_FROM is required when CNAP_SMTP_ADDR is set"))
	}

	return errors.Join(errs...)
}

func requireURL(name, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", name)
	}
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s %q is not an absolute URL", name, v)
	}
	return nil
}
