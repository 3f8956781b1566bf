package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/amirphl/product-analytics-dashboard/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging points the standard logger at stdout, a rotating file, or
// both. The returned func closes the log file and is safe to call when no file is open.
func SetupLogging(cfg config.LoggingConfig) (func(), error) {
	flags := log.LstdFlags | log.LUTC | log.Lmicroseconds
	if cfg.Level == "debug" {
		flags |= log.Lshortfile
	}
	log.SetFlags(flags)

	if cfg.Output == "stdout" {
		log.SetOutput(os.Stdout)
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  false,
	}

	var out io.Writer = rotator
	if cfg.Output == "both" {
		out = io.MultiWriter(os.Stdout, rotator)
	}
	log.SetOutput(out)

	return func() {
		log.SetOutput(os.Stdout)
		_ = rotator.Close()
	}, nil
}
