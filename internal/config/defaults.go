package config

import "time"

const defaultPort = 8080

const defaultHTTPClientTimeout = 15 * time.Second

var defaultFedEx = FedEx{
	APIBase:              "https://apis.fedex.com",
	PickupType:           "DROPOFF_AT_FEDEX_LOCATION",
	Currency:             "EUR",
	CountryOfManufacture: "ES",
}

var defaultShipper = Shipper{
	Name:       "Shipping Department",
	Company:    "FilmRAID Store",
	Phone:      "+34930000000",
	Address1:   "Carrer de la Llacuna 22",
	City:       "Barcelona",
	PostalCode: "08005",
	Country:    "ES",
}

var defaultTax = Tax{
	HomeCountry:   "ES",
	HomeRate:      21,
	DefaultEURate: 21,
}

var defaultVIES = VIES{
	URL:         "https://ec.europa.eu/taxation_customs/vies/services/checkVatService",
	MaxAttempts: 3,
	BaseDelay:   200 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultCaptcha = Captcha{
	VerifyURL: "https://www.google.com/recaptcha/api/siteverify",
	MinScore:  0.5,
}

var defaultMail = Mail{
	BaseURL: "https://api.mailjet.com/v3.1",
}

var defaultRateLimit = RateLimit{
	Enabled: true,
	Limit:   20,
	Window:  time.Second,
}

var defaultPprof = Pprof{
	Addr: "127.0.0.1:6060",
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int {
	return defaultPort
}

// DefaultHTTPClientTimeout returns the default outbound client timeout.
func DefaultHTTPClientTimeout() time.Duration {
	return defaultHTTPClientTimeout
}

// DefaultFedEx returns the default carrier settings (no credentials).
func DefaultFedEx() FedEx {
	return defaultFedEx
}

// DefaultShipper returns the default shipment origin (Barcelona).
func DefaultShipper() Shipper {
	return defaultShipper
}

// DefaultTax returns the default tax settings.
func DefaultTax() Tax {
	return defaultTax
}

// DefaultVIES returns the default VAT-registry lookup settings.
func DefaultVIES() VIES {
	return defaultVIES
}

// DefaultCaptcha returns the default CAPTCHA settings (no secret).
func DefaultCaptcha() Captcha {
	return defaultCaptcha
}

// DefaultMail returns the default email-delivery settings (no keys).
func DefaultMail() Mail {
	return defaultMail
}

// DefaultRateLimit returns the default rate-limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultPprof returns the default pprof side-server settings.
func DefaultPprof() Pprof {
	return defaultPprof
}
