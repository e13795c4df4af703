// Package pseudonymize hashes identifiers read line by line, so operators can
// look up stored pseudonyms without the raw value ever reaching storage.
package pseudonymize

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"serviceheft/internal/pseudonym"
)

var kinds = map[string]func(*pseudonym.Hasher, string) (string, error){
	"email":     (*pseudonym.Hasher).Email,
	"email-raw": (*pseudonym.Hasher).EmailHMAC,
	"ip":        (*pseudonym.Hasher).IP,
	"ua":        (*pseudonym.Hasher).UserAgent,
	"token":     (*pseudonym.Hasher).TokenHash,
	"value":     (*pseudonym.Hasher).Pseudonymize,
}

// Kinds returns the supported -kind values, sorted.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

type Config struct {
	Kind string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Kind: "email"}
	fs.StringVar(&cfg.Kind, "kind", cfg.Kind, "identifier kind: "+strings.Join(Kinds(), "|"))
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if _, ok := kinds[cfg.Kind]; !ok {
		return Config{}, fmt.Errorf("unknown kind %q", cfg.Kind)
	}
	return cfg, nil
}

// Run writes one pseudonym per non-blank input line. It stops at the first
// line that cannot be hashed and reports its line number, never its content.
func Run(cfg Config, hasher *pseudonym.Hasher, in io.Reader, out io.Writer) error {
	hash, ok := kinds[cfg.Kind]
	if !ok {
		return fmt.Errorf("unknown kind %q", cfg.Kind)
	}
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		value := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(value) == "" {
			continue
		}
		h, err := hash(hasher, value)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := fmt.Fprintln(out, h); err != nil {
			return err
		}
	}
	return scanner.Err()
}
