package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"qtermsim/qsim"
)

var errNoCounts = errors.New("no measurement counts to chart")

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

var barColor = color.RGBA{R: 0x73, G: 0xda, B: 0xca, A: 0xff}

// newHistogramPlot builds a bar chart of counts per basis state, one bar per
// observed outcome in label order.
func newHistogramPlot(res *qsim.Result) (*plot.Plot, error) {
	if res == nil || len(res.Counts()) == 0 {
		return nil, errNoCounts
	}
	outcomes := res.Sorted()
	values := make(plotter.Values, len(outcomes))
	labels := make([]string, len(outcomes))
	for i, o := range outcomes {
		values[i] = float64(o.Count)
		labels[i] = o.State
	}

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return nil, err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d shots, %d qubits", res.Shots(), res.Qubits())
	p.X.Label.Text = "basis state"
	p.Y.Label.Text = "count"
	p.Y.Min = 0
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

// writeChart renders the histogram in the given format (png, svg, pdf, ...).
func writeChart(w io.Writer, res *qsim.Result, format string) error {
	p, err := newHistogramPlot(res)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, format)
	if err != nil {
		return fmt.Errorf("chart %s: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// saveChart writes the histogram to file; the extension picks the format.
func saveChart(res *qsim.Result, file string) (err error) {
	if res == nil || len(res.Counts()) == 0 {
		return errNoCounts
	}
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))
	if format == "" {
		return fmt.Errorf("chart file %q has no extension", file)
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return writeChart(f, res, format)
}
