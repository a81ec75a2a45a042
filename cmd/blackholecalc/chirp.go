package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/blackholecalc/internal/config"
	"github.com/nao1215/blackholecalc/internal/report"
	"github.com/nao1215/blackholecalc/internal/waveform"
)

// csvHeader is the first row of a waveform CSV file.
var csvHeader = []string{"time_s", "strain", "phase"}

// NewChirpCmd creates the chirp command.
func NewChirpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chirp",
		Short: "Synthesize a toy binary black hole merger waveform",
		Long: `Chirp synthesizes a simplified inspiral-merger-ringdown strain series for two
black holes. The inspiral follows the leading-order chirp, the ringdown is a
damped sinusoid at a frequency scaled from a 60 solar mass remnant.

This is a visualization aid, not a template for data analysis.

Examples:
  # GW150914-like masses, summary only
  blackholecalc chirp --m1 36 --m2 29

  # Write the series as CSV
  blackholecalc chirp --m1 36 --m2 29 -o chirp.csv

  # Print the CSV to stdout
  blackholecalc chirp -o -`,
		Args: cobra.NoArgs,
		RunE: runChirpCmd,
	}

	cmd.Flags().Float64("m1", config.DefaultChirpM1,
		"Primary mass in solar masses")
	cmd.Flags().Float64("m2", config.DefaultChirpM2,
		"Secondary mass in solar masses")
	cmd.Flags().Int("samples", config.DefaultChirpSamples,
		"Number of samples")
	cmd.Flags().Float64("start", waveform.DefaultStart,
		"First sample time in seconds relative to merger")
	cmd.Flags().Float64("end", waveform.DefaultEnd,
		"Last sample time in seconds relative to merger")
	cmd.Flags().StringP("output", "o", "",
		"Write the series as CSV to this path (\"-\" for stdout)")

	return cmd
}

// runChirpCmd executes the chirp command.
func runChirpCmd(cmd *cobra.Command, _ []string) (err error) {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}

	m1, m2 := v.GetFloat64("m1"), v.GetFloat64("m2")
	samples := v.GetInt("samples")
	if err := config.ValidateChirp(m1, m2, samples); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	start, end := v.GetFloat64("start"), v.GetFloat64("end")
	if start >= end {
		return fmt.Errorf("configuration error: start (%g) must be before end (%g)", start, end)
	}

	logger := setupLogger(cmd)
	c := waveform.GenerateChirp(m1, m2,
		waveform.WithSamples(samples),
		waveform.WithWindow(start, end),
	)
	logger.Debug("waveform generated", "samples", c.Len(), "chirpMass", c.ChirpMassSolar)

	path := v.GetString("output")
	if path == "-" {
		return writeChirpCSV(cmd.OutOrStdout(), c)
	}

	writeChirpSummary(cmd.OutOrStdout(), m1, m2, c)

	if path == "" {
		return nil
	}
	out, closeOut, err := openOutput(path, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeWith(&err, closeOut)

	if err := writeChirpCSV(out, c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d samples to %s\n", c.Len(), path)
	return nil
}

// writeChirpSummary prints the characteristic scales of the waveform.
func writeChirpSummary(w io.Writer, m1, m2 float64, c waveform.Chirp) {
	peak := c.Peak()

	fmt.Fprintf(w, "Binary:           %s + %s\n", report.FormatSolarMass(m1), report.FormatSolarMass(m2))
	fmt.Fprintf(w, "Chirp mass:       %s\n", report.FormatSolarMass(c.ChirpMassSolar))
	fmt.Fprintf(w, "Chirp time scale: %ss\n", humanize.SIWithDigits(c.ChirpTimeSeconds, 3, ""))
	fmt.Fprintf(w, "Ringdown:         %s, decay %ss\n",
		humanize.SIWithDigits(c.RingFrequencyHz, 1, "Hz"),
		humanize.SIWithDigits(c.RingDecaySeconds, 2, ""))
	fmt.Fprintf(w, "Samples:          %d\n", c.Len())
	if peak.Index >= 0 {
		fmt.Fprintf(w, "Peak strain:      %.3e at t = %.4g s (%s)\n",
			peak.Strain, peak.Time, c.Phase(peak.Index))
	}
}

// writeChirpCSV writes one row per sample.
func writeChirpCSV(w io.Writer, c waveform.Chirp) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := range c.Time {
		row := []string{
			strconv.FormatFloat(c.Time[i], 'g', -1, 64),
			strconv.FormatFloat(c.Strain[i], 'g', -1, 64),
			c.Phase(i).String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
