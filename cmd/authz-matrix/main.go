package main

import (
	"flag"
	"os"

	"serviceheft/internal/platform/config"
	"serviceheft/internal/platform/logger"
	"serviceheft/internal/tools/authzmatrix"
)

// main prints the authorization decision table so policy changes can be
// reviewed as a diff.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		config.Exitf("load config: %v", err)
	}
	log, err := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
		Writer:  os.Stderr,
	})
	if err != nil {
		config.Exitf("init logger: %v", err)
	}

	matrixCfg, err := authzmatrix.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := authzmatrix.Run(matrixCfg, os.Stdout); err != nil {
		config.Exitf("render matrix: %v", err)
	}
	log.Debug("authorization matrix rendered", "shape", matrixCfg.Shape, "superadmin", matrixCfg.SuperAdmin)
}
