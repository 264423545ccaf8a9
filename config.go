package main

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"qtermsim/qsim"
)

// Config holds the resolved settings for a session.
type Config struct {
	Qubits    int
	MaxQubits int
	Shots     int
	Workers   int
	Seed      uint64 // 0 draws a fresh seed per run
	LogLevel  string
	LogFile   string
	QASMFile  string
	ChartFile string
	Demo      bool
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Qubits:    2,
		MaxQubits: qsim.DefaultMaxQubits,
		Shots:     1000,
		Workers:   runtime.NumCPU(),
		LogLevel:  "info",
		LogFile:   "qtermsim.log",
		QASMFile:  "circuit.qasm",
		ChartFile: "histogram.png",
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"qubits":     "qubits",
	"max-qubits": "max_qubits",
	"shots":      "shots",
	"workers":    "workers",
	"seed":       "seed",
	"log-level":  "log_level",
	"log-file":   "log_file",
	"qasm":       "qasm_file",
	"chart":      "chart_file",
	"demo":       "demo",
}

// LoadConfig resolves configuration from, in rising precedence, defaults, an
// optional qtermsim.yaml, QTERMSIM_* environment variables and flags.
func LoadConfig(args []string) (*Config, error) {
	def := NewConfig()

	fs := pflag.NewFlagSet("qtermsim", pflag.ContinueOnError)
	fs.Int("qubits", def.Qubits, "qubits in a new circuit")
	fs.Int("max-qubits", def.MaxQubits, "largest register the engine will build")
	fs.Int("shots", def.Shots, "shots per sampling run")
	fs.Int("workers", def.Workers, "goroutines used for sampling")
	fs.Uint64("seed", def.Seed, "random seed (0 = random)")
	fs.String("log-level", def.LogLevel, "debug, info, warn or error")
	fs.String("log-file", def.LogFile, "log destination while the TUI is running")
	fs.String("qasm", def.QASMFile, "QASM file loaded at start and written by ctrl+s")
	fs.String("chart", def.ChartFile, "histogram export path (.png, .svg, .pdf)")
	fs.Bool("demo", def.Demo, "print the Bell-state demo and exit")
	configFile := fs.String("config", "", "config file (default ./qtermsim.yaml)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("qubits", def.Qubits)
	v.SetDefault("max_qubits", def.MaxQubits)
	v.SetDefault("shots", def.Shots)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("qasm_file", def.QASMFile)
	v.SetDefault("chart_file", def.ChartFile)
	v.SetDefault("demo", def.Demo)

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix("QTERMSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("qtermsim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Qubits:    v.GetInt("qubits"),
		MaxQubits: v.GetInt("max_qubits"),
		Shots:     v.GetInt("shots"),
		Workers:   v.GetInt("workers"),
		Seed:      v.GetUint64("seed"),
		LogLevel:  v.GetString("log_level"),
		LogFile:   v.GetString("log_file"),
		QASMFile:  v.GetString("qasm_file"),
		ChartFile: v.GetString("chart_file"),
		Demo:      v.GetBool("demo"),
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the engine would refuse later.
func (c *Config) Validate() error {
	switch {
	case c.MaxQubits < 1 || c.MaxQubits > qsim.HardMaxQubits:
		return fmt.Errorf("max_qubits must be in [1, %d], got %d", qsim.HardMaxQubits, c.MaxQubits)
	case c.Qubits < 1 || c.Qubits > c.MaxQubits:
		return fmt.Errorf("qubits must be in [1, %d], got %d", c.MaxQubits, c.Qubits)
	case c.Shots < 1:
		return fmt.Errorf("shots must be positive, got %d", c.Shots)
	case c.Workers < 1:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// EngineOptions turns the config into circuit options.
func (c *Config) EngineOptions() []qsim.Option {
	opts := []qsim.Option{
		qsim.WithMaxQubits(c.MaxQubits),
		qsim.WithWorkers(c.Workers),
	}
	if c.Seed != 0 {
		opts = append(opts, qsim.WithSeed(c.Seed))
	}
	return opts
}
