// Command qtermsim is a terminal quantum circuit simulator. It edits circuits
// on a grid or as QASM, evolves them with the qsim state-vector engine and
// samples measurement histograms.
//
// With --demo it prints the Bell-state walkthrough and exits instead of
// starting the TUI.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "qtermsim:", err)
		os.Exit(2)
	}

	if cfg.Demo {
		logger, err := newLogger(cfg, os.Stderr)
		if err != nil {
			fmt.Fprintln(os.Stderr, "qtermsim:", err)
			os.Exit(2)
		}
		if err := runDemo(os.Stdout, cfg, logger); err != nil {
			logger.Fatal("demo failed", "err", err)
		}
		return
	}

	f, err := openLogFile(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qtermsim:", err)
		os.Exit(1)
	}
	defer f.Close()

	logger, err := newLogger(cfg, f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qtermsim:", err)
		os.Exit(2)
	}
	logger.Info("starting", "qubits", cfg.Qubits, "shots", cfg.Shots, "workers", cfg.Workers)

	p := tea.NewProgram(newModel(cfg, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", "err", err)
		fmt.Fprintln(os.Stderr, "qtermsim:", err)
		os.Exit(1)
	}
}
