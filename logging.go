package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger builds the root logger writing to w at the configured level.
func newLogger(cfg *Config, w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "qtermsim",
		ReportTimestamp: true,
	}), nil
}

// openLogFile opens cfg.LogFile for appending. The TUI owns the terminal, so
// its log goes here instead of stderr.
func openLogFile(cfg *Config) (*os.File, error) {
	return os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
