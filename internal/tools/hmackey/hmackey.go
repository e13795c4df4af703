// Package hmackey generates pseudonymization keys for SERVICEHEFT_HMAC_KEY.
package hmackey

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"

	"serviceheft/internal/pseudonym"
)

// MinBytes is the smallest entropy that still encodes to a key the
// pseudonymizer accepts.
const MinBytes = 24

// Config holds configuration for HMAC key generation.
type Config struct {
	Bytes int
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Bytes: 32}
	fs.IntVar(&cfg.Bytes, "bytes", cfg.Bytes, "number of random bytes (minimum 24)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates the key and writes it to out as an env assignment.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if cfg.Bytes < MinBytes {
		return fmt.Errorf("bytes must be at least %d", MinBytes)
	}
	if out == nil {
		return errors.New("output is required")
	}
	if reader == nil {
		reader = rand.Reader
	}

	buf := make([]byte, cfg.Bytes)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return fmt.Errorf("generate random bytes: %w", err)
	}
	key := pseudonym.Key(base64.RawURLEncoding.EncodeToString(buf))
	if _, err := pseudonym.NewHasher(key); err != nil {
		return fmt.Errorf("generated key rejected: %w", err)
	}

	_, err := fmt.Fprintf(out, "%s=%s\n", pseudonym.KeyVariables()[0], string(key))
	return err
}
