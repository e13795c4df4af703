// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"serviceheft/internal/consent"
)

// Config is the process-wide configuration shared by the binaries.
type Config struct {
	LogLevel    string `env:"SERVICEHEFT_LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"SERVICEHEFT_LOG_FORMAT" envDefault:"json"`
	ServiceName string `env:"SERVICEHEFT_SERVICE_NAME" envDefault:"serviceheft"`
	Consent     ConsentVersions
}

// ConsentVersions are the currently published legal document versions.
type ConsentVersions struct {
	TermsVersion   string `env:"SERVICEHEFT_TERMS_VERSION"`
	PrivacyVersion string `env:"SERVICEHEFT_PRIVACY_VERSION"`
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RequiredConsent returns the versions the consent gate enforces. Unset
// versions stay empty and make the gate reject every check.
func (c Config) RequiredConsent() consent.RequiredVersions {
	return consent.RequiredVersions{
		Terms:   c.Consent.TermsVersion,
		Privacy: c.Consent.PrivacyVersion,
	}
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
