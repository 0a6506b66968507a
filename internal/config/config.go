package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Environment  Environment
	Log          Log
	HTTP         HTTPServer
	BaseURL      string      `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabasePath string      `env:"DATABASE_PATH" envDefault:"checkout.db"`

	Paypal Paypal `envPrefix:"PAYPAL_"`
}

type Paypal struct {
	ClientID        string `env:"CLIENT_ID"`
	ClientSecret    string `env:"CLIENT_SECRET"`
	Sandbox         bool   `env:"SANDBOX" envDefault:"false"`
	PaymentLabel    string `env:"PAYMENT_LABEL" envDefault:"Pay with PayPal"`
	DefaultCurrency string `env:"DEFAULT_CURRENCY" envDefault:"USD"`
	ReturnURL       string `env:"RETURN_URL"`
	CancelURL       string `env:"CANCEL_URL"`
	PaidStatus      string `env:"PAID_STATUS" envDefault:"PROCESSING"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

// Validate checks required settings so a misconfigured deployment fails at
// startup instead of on the first payment.
func (c *Config) Validate() error {
	if c.Paypal.ClientID == "" {
		return fmt.Errorf("missing PAYPAL_CLIENT_ID in settings")
	}
	if c.Paypal.ClientSecret == "" {
		return fmt.Errorf("missing PAYPAL_CLIENT_SECRET in settings")
	}
	return nil
}

// Currency returns the configured ISO currency, upper-cased.
func (p Paypal) Currency() string {
	return strings.ToUpper(p.DefaultCurrency)
}
