package pseudonym

import (
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"

	dErrors "serviceheft/pkg/domain-errors"
)

// keyEnv lists the recognized variables. Field order is lookup order.
type keyEnv struct {
	ServiceHeft      string `env:"SERVICEHEFT_HMAC_KEY"`
	LTC              string `env:"LTC_HMAC_KEY"`
	Pseudonymization string `env:"PSEUDONYMIZATION_HMAC_KEY"`
	Generic          string `env:"HMAC_KEY"`
}

func (e keyEnv) candidates() []string {
	v := reflect.ValueOf(e)
	values := make([]string, v.NumField())
	for i := range values {
		values[i] = v.Field(i).String()
	}
	return values
}

// KeyVariables returns the recognized environment variable names in lookup
// order.
func KeyVariables() []string {
	t := reflect.TypeFor[keyEnv]()
	names := make([]string, t.NumField())
	for i := range names {
		names[i] = t.Field(i).Tag.Get("env")
	}
	return names
}

// KeyFromEnv returns the first recognized variable whose trimmed value is at
// least MinKeyLength characters. Call it once at startup.
func KeyFromEnv() (Key, error) {
	var cfg keyEnv
	if err := env.Parse(&cfg); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeBadRequest, "read hmac key")
	}
	return firstKey(cfg)
}

// KeyFromEnvironment is KeyFromEnv over an explicit variable map.
func KeyFromEnvironment(environ map[string]string) (Key, error) {
	var cfg keyEnv
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeBadRequest, "read hmac key")
	}
	return firstKey(cfg)
}

func firstKey(cfg keyEnv) (Key, error) {
	for _, v := range cfg.candidates() {
		if k := strings.TrimSpace(v); len(k) >= MinKeyLength {
			return Key(k), nil
		}
	}
	return "", dErrors.New(dErrors.CodeBadRequest,
		"no hmac key configured: set one of "+strings.Join(KeyVariables(), ", ")+" to at least 32 characters")
}
