package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"qtermsim/qsim"
)

const demoSamples = 10

// runDemo prepares the Bell state (|00⟩ + |11⟩)/√2, prints it, prints a few
// single-shot measurements and then a shot histogram. The histogram chart is
// written to cfg.ChartFile when one is set.
func runDemo(w io.Writer, cfg *Config, logger *log.Logger) error {
	opts := append(cfg.EngineOptions(), qsim.WithLogger(logger))
	qc, err := qsim.NewCircuit(2, opts...)
	if err != nil {
		return err
	}
	if err := qc.H(0); err != nil {
		return err
	}
	if err := qc.Apply(qsim.CNOT()); err != nil {
		return err
	}

	state, err := qc.Run()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Final quantum state:")
	fmt.Fprintln(w, state)

	fmt.Fprintln(w, "\nMeasurement results:")
	for range demoSamples {
		idx, err := qc.RunAndMeasure()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, qsim.BasisLabel(idx, qc.Qubits()))
	}

	res, err := qc.Measure(cfg.Shots)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nCounts over %d shots:\n%s\n", res.Shots(), res)

	if cfg.ChartFile == "" {
		return nil
	}
	if err := saveChart(res, cfg.ChartFile); err != nil {
		return err
	}
	logger.Info("histogram written", "file", cfg.ChartFile)
	return nil
}
