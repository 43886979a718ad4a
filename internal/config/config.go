package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores all service settings, passed explicitly into components.
type Config struct {
	Port      int
	FedEx     FedEx
	Shipper   Shipper
	Tax       Tax
	VIES      VIES
	Captcha   Captcha
	Mail      Mail
	RateLimit RateLimit
	Pprof     Pprof

	// HTTPClientTimeout bounds every outbound upstream call.
	HTTPClientTimeout time.Duration
}

// FedEx stores carrier API credentials and request defaults.
type FedEx struct {
	ClientID             string
	ClientSecret         string
	AccountNumber        string
	APIBase              string
	PickupType           string
	Currency             string
	CountryOfManufacture string
	FallbackEnabled      bool
	FallbackAmount       float64
}

// Configured reports whether the required carrier credentials are present.
func (f FedEx) Configured() bool {
	return f.ClientID != "" && f.ClientSecret != "" && f.AccountNumber != ""
}

// Shipper is the fixed shipment origin.
type Shipper struct {
	Name       string
	Company    string
	Phone      string
	Address1   string
	City       string
	PostalCode string
	State      string
	Country    string
}

// Tax stores VAT settings.
type Tax struct {
	HomeCountry   string
	HomeRate      float64
	DefaultEURate float64
}

// VIES stores VAT-registry lookup settings.
type VIES struct {
	URL         string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Captcha stores CAPTCHA assessment settings.
type Captcha struct {
	Secret    string
	VerifyURL string
	MinScore  float64
}

// Mail stores email-delivery API settings.
type Mail struct {
	APIKey           string
	APISecret        string
	BaseURL          string
	SenderEmail      string
	SenderName       string
	ContactRecipient string
}

// RateLimit stores per-client request limiting settings.
type RateLimit struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

// Pprof stores the debug side-server settings.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:              DefaultPort(),
		FedEx:             DefaultFedEx(),
		Shipper:           DefaultShipper(),
		Tax:               DefaultTax(),
		VIES:              DefaultVIES(),
		Captcha:           DefaultCaptcha(),
		Mail:              DefaultMail(),
		RateLimit:         DefaultRateLimit(),
		Pprof:             DefaultPprof(),
		HTTPClientTimeout: DefaultHTTPClientTimeout(),
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %q", v)
		}
		cfg.Port = p
	}

	envStr("FEDEX_CLIENT_ID", &cfg.FedEx.ClientID)
	envStr("FEDEX_CLIENT_SECRET", &cfg.FedEx.ClientSecret)
	envStr("FEDEX_ACCOUNT_NUMBER", &cfg.FedEx.AccountNumber)
	envStr("FEDEX_API_BASE", &cfg.FedEx.APIBase)
	envStr("FEDEX_PICKUP_TYPE", &cfg.FedEx.PickupType)
	envStr("FEDEX_CURRENCY", &cfg.FedEx.Currency)
	envStr("COUNTRY_OF_MANUFACTURE", &cfg.FedEx.CountryOfManufacture)
	if err := envBool("SHIPPING_FALLBACK_ENABLED", &cfg.FedEx.FallbackEnabled); err != nil {
		return nil, err
	}
	if err := envFloat("SHIPPING_FALLBACK_AMOUNT", &cfg.FedEx.FallbackAmount); err != nil {
		return nil, err
	}

	envStr("SHIPPER_NAME", &cfg.Shipper.Name)
	envStr("SHIPPER_COMPANY", &cfg.Shipper.Company)
	envStr("SHIPPER_PHONE", &cfg.Shipper.Phone)
	envStr("SHIPPER_ADDRESS1", &cfg.Shipper.Address1)
	envStr("SHIPPER_CITY", &cfg.Shipper.City)
	envStr("SHIPPER_POSTAL_CODE", &cfg.Shipper.PostalCode)
	envStr("SHIPPER_STATE", &cfg.Shipper.State)
	envStr("SHIPPER_COUNTRY", &cfg.Shipper.Country)

	envStr("TAX_HOME_COUNTRY", &cfg.Tax.HomeCountry)
	if err := envFloat("TAX_HOME_RATE", &cfg.Tax.HomeRate); err != nil {
		return nil, err
	}
	if err := envFloat("TAX_DEFAULT_EU_RATE", &cfg.Tax.DefaultEURate); err != nil {
		return nil, err
	}

	envStr("VIES_URL", &cfg.VIES.URL)
	if err := envInt("VIES_MAX_ATTEMPTS", &cfg.VIES.MaxAttempts); err != nil {
		return nil, err
	}
	if err := envDuration("VIES_BASE_DELAY", &cfg.VIES.BaseDelay); err != nil {
		return nil, err
	}
	if err := envDuration("VIES_MAX_DELAY", &cfg.VIES.MaxDelay); err != nil {
		return nil, err
	}

	envStr("CAPTCHA_SECRET", &cfg.Captcha.Secret)
	envStr("CAPTCHA_VERIFY_URL", &cfg.Captcha.VerifyURL)
	if err := envFloat("CAPTCHA_MIN_SCORE", &cfg.Captcha.MinScore); err != nil {
		return nil, err
	}

	envStr("MAIL_API_KEY", &cfg.Mail.APIKey)
	envStr("MAIL_API_SECRET", &cfg.Mail.APISecret)
	envStr("MAIL_BASE_URL", &cfg.Mail.BaseURL)
	envStr("MAIL_SENDER_EMAIL", &cfg.Mail.SenderEmail)
	envStr("MAIL_SENDER_NAME", &cfg.Mail.SenderName)
	envStr("MAIL_CONTACT_RECIPIENT", &cfg.Mail.ContactRecipient)

	if err := envBool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	if err := envInt("RATE_LIMIT_LIMIT", &cfg.RateLimit.Limit); err != nil {
		return nil, err
	}
	if err := envDuration("RATE_LIMIT_WINDOW", &cfg.RateLimit.Window); err != nil {
		return nil, err
	}

	envStr("PPROF_ADDR", &cfg.Pprof.Addr)
	envStr("PPROF_USER", &cfg.Pprof.User)
	envStr("PPROF_PASS", &cfg.Pprof.Pass)

	if err := envDuration("HTTP_CLIENT_TIMEOUT", &cfg.HTTPClientTimeout); err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := parseFlags(); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	return cfg, nil
}

func parseFlags() error {
	if pflag.Parsed() {
		return nil
	}
	return pflag.CommandLine.Parse(os.Args[1:])
}

func envStr(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = b
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = d
	return nil
}
