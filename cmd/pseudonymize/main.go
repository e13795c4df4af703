package main

import (
	"flag"
	"os"

	"serviceheft/internal/platform/config"
	"serviceheft/internal/pseudonym"
	"serviceheft/internal/tools/pseudonymize"
)

func main() {
	cfg, err := pseudonymize.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	key, err := pseudonym.KeyFromEnv()
	if err != nil {
		config.Exitf("load key: %v", err)
	}
	hasher, err := pseudonym.NewHasher(key)
	if err != nil {
		config.Exitf("load key: %v", err)
	}
	if err := pseudonymize.Run(cfg, hasher, os.Stdin, os.Stdout); err != nil {
		config.Exitf("pseudonymize: %v", err)
	}
}
