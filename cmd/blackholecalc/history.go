package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/blackholecalc/internal/config"
	"github.com/nao1215/blackholecalc/internal/database"
	"github.com/nao1215/blackholecalc/internal/model"
	"github.com/nao1215/blackholecalc/internal/report"
)

// defaultHistoryLimit is the number of runs listed by default.
const defaultHistoryLimit = 20

// historyTimeLayout formats timestamps in listings.
const historyTimeLayout = "2006-01-02 15:04:05"

// NewHistoryCmd creates the history command.
// This command lists, shows and compares runs stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show and compare saved runs",
		Long: `History reads the run index kept by 'blackholecalc analyze'.

Without flags it lists the most recent runs. A run can be shown in full by
its ID, and two runs can be compared quantity by quantity.

Examples:
  # List the 20 most recent runs
  blackholecalc history

  # Show one run as JSON
  blackholecalc history --show 1a2b3c4d --json

  # Compare two runs
  blackholecalc history --compare 1a2b3c4d,5e6f7a8b

  # Compare the two most recent runs
  blackholecalc history --compare-latest

  # List runs evaluated with the same parameters as a given run
  blackholecalc history --same 1a2b3c4d`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", defaultHistoryLimit,
		"Maximum number of runs to list")
	cmd.Flags().StringP("show", "s", "",
		"Show the run with this ID")
	cmd.Flags().StringSlice("compare", nil,
		"Compare two runs by ID (previous,current)")
	cmd.Flags().Bool("compare-latest", false,
		"Compare the two most recent complete runs")
	cmd.Flags().String("same", "",
		"List runs with the same parameters as the run with this ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().String("db-dir", "",
		"Directory of the history database (default: XDG data dir)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}

	// Validate arguments before opening the database
	compareIDs, err := cmd.Flags().GetStringSlice("compare")
	if err != nil {
		return err
	}
	if len(compareIDs) != 0 && len(compareIDs) != 2 {
		return fmt.Errorf("--compare needs exactly two run IDs, got %d", len(compareIDs))
	}
	limit := v.GetInt("limit")
	if limit <= 0 {
		return errors.New("--limit must be positive")
	}

	dbDir := v.GetString("db-dir")
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	setupLogger(cmd)

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	jsonOutput := v.GetBool("json")

	switch {
	case len(compareIDs) == 2:
		return runComparison(ctx, db, out, compareIDs[0], compareIDs[1], jsonOutput)
	case v.GetBool("compare-latest"):
		return runLatestComparison(ctx, db, out, jsonOutput)
	case v.GetString("show") != "":
		return showRun(ctx, db, out, v.GetString("show"), jsonOutput)
	case v.GetString("same") != "":
		return listSameParameters(ctx, db, out, v.GetString("same"))
	default:
		return listHistory(ctx, db, out, limit)
	}
}

// getRun loads a run by ID and reports a missing run as an error.
func getRun(ctx context.Context, db *database.RunDB, id string) (*model.Run, error) {
	run, err := db.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	if run == nil {
		return nil, fmt.Errorf("run %s not found (use 'blackholecalc history' to list runs)", id)
	}
	return run, nil
}

// listHistory lists the most recent runs.
func listHistory(ctx context.Context, db *database.RunDB, w io.Writer, limit int) error {
	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found in the database.")
		fmt.Fprintln(w, "\nUse 'blackholecalc analyze' to evaluate and save a black hole.")
		return nil
	}

	total, err := db.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count runs: %w", err)
	}

	fmt.Fprintf(w, "Runs (%d of %d):\n\n", len(runs), total)
	writeSummaries(w, runs)
	fmt.Fprintln(w, "\nUse 'blackholecalc history --show <id>' to see a run.")
	fmt.Fprintln(w, "Use 'blackholecalc history --compare <id>,<id>' to compare two runs.")

	return nil
}

// listSameParameters lists runs sharing the fingerprint of run id.
func listSameParameters(ctx context.Context, db *database.RunDB, w io.Writer, id string) error {
	run, err := getRun(ctx, db, id)
	if err != nil {
		return err
	}

	runs, err := db.FindByFingerprint(ctx, run.Fingerprint())
	if err != nil {
		return fmt.Errorf("failed to find runs: %w", err)
	}

	fmt.Fprintf(w, "Runs with the parameters of %s (%d):\n\n", id, len(runs))
	writeSummaries(w, runs)
	return nil
}

// writeSummaries prints one line per indexed run.
func writeSummaries(w io.Writer, runs []database.RunSummary) {
	fmt.Fprintf(w, "  %-8s  %-19s  %-20s  %-12s  %-7s  %-7s  %s\n",
		"ID", "Date", "Model", "Mass (M_sun)", "Spin", "Charge", "Name")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 95))
	for _, r := range runs {
		class := r.ModelClass
		if r.Failed {
			class += " (failed)"
		}
		fmt.Fprintf(w, "  %-8s  %-19s  %-20s  %-12.4g  %-7.4f  %-7.4f  %s\n",
			r.ID,
			r.Timestamp.Format(historyTimeLayout),
			class,
			r.MassSolar,
			r.Spin,
			r.Charge,
			r.Name,
		)
	}
}

// showRun writes the full report of one run.
func showRun(ctx context.Context, db *database.RunDB, w io.Writer, id string, jsonOutput bool) error {
	run, err := getRun(ctx, db, id)
	if err != nil {
		return err
	}

	var writer report.Writer = report.NewSimpleWriter(w, report.WithVerbose(true))
	if jsonOutput {
		writer = report.NewFullJSONWriter(w, getVersion(), report.WithPrettyPrint())
	}
	_, err = writer.Write(run)
	return err
}

// RunMetadata identifies one side of a comparison.
type RunMetadata struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Timestamp  time.Time `json:"timestamp"`
	ModelClass string    `json:"model_class"`
	MassSolar  float64   `json:"mass_solar"`
	Spin       float64   `json:"spin"`
	Charge     float64   `json:"charge"`
}

// QuantityDelta is the change of one output between two runs.
// Values are nil where a run did not compute the quantity.
type QuantityDelta struct {
	Key      string        `json:"key"`
	Unit     string        `json:"unit"`
	Previous *model.Number `json:"previous"`
	Current  *model.Number `json:"current"`
	Delta    *model.Number `json:"delta"`
	Relative *model.Number `json:"relative"`
}

// ComparisonResult holds the result of comparing two runs.
type ComparisonResult struct {
	Previous RunMetadata `json:"previous"`
	Current  RunMetadata `json:"current"`

	// SameParameters is true when both runs share a fingerprint.
	SameParameters bool `json:"same_parameters"`

	// Deltas lists every output of either run, previous run order first.
	Deltas []QuantityDelta `json:"deltas"`
}

// runComparison loads two runs and writes their differences.
func runComparison(ctx context.Context, db *database.RunDB, w io.Writer, previousID, currentID string, jsonOutput bool) error {
	previous, err := getRun(ctx, db, previousID)
	if err != nil {
		return err
	}
	current, err := getRun(ctx, db, currentID)
	if err != nil {
		return err
	}

	return writeComparison(w, compareRuns(previous, current), jsonOutput)
}

// runLatestComparison compares the two most recent complete runs.
func runLatestComparison(ctx context.Context, db *database.RunDB, w io.Writer, jsonOutput bool) error {
	runs, err := db.LatestRuns(ctx, 2)
	if err != nil {
		return fmt.Errorf("failed to get latest runs: %w", err)
	}
	if len(runs) < 2 {
		return fmt.Errorf("need at least two saved runs to compare, found %d", len(runs))
	}
	return writeComparison(w, compareRuns(runs[1], runs[0]), jsonOutput)
}

func writeComparison(w io.Writer, result *ComparisonResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	outputComparisonText(w, result)
	return nil
}

// compareRuns computes output deltas between two runs.
func compareRuns(previous, current *model.Run) *ComparisonResult {
	result := &ComparisonResult{
		Previous:       runMetadata(previous),
		Current:        runMetadata(current),
		SameParameters: previous.Fingerprint() == current.Fingerprint(),
	}

	seen := make(map[string]bool)
	keys := make([]string, 0, previous.Outputs.Len()+current.Outputs.Len())
	for _, k := range append(previous.Outputs.Keys(), current.Outputs.Keys()...) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	for _, key := range keys {
		p, _ := previous.Outputs.Get(key)
		c, _ := current.Outputs.Get(key)
		d := QuantityDelta{
			Key:      key,
			Unit:     c.Unit,
			Previous: p.Value,
			Current:  c.Value,
		}
		if d.Unit == "" || d.Unit == model.UnitNotImplemented {
			d.Unit = p.Unit
		}
		if p.Computed() && c.Computed() {
			pv, cv := p.Value.Float64(), c.Value.Float64()
			delta := model.Number(cv - pv)
			d.Delta = &delta
			if pv != 0 && !math.IsInf(pv, 0) {
				rel := model.Number((cv - pv) / math.Abs(pv))
				d.Relative = &rel
			}
		}
		result.Deltas = append(result.Deltas, d)
	}

	return result
}

func runMetadata(r *model.Run) RunMetadata {
	return RunMetadata{
		ID:         r.ID,
		Name:       r.Name,
		Timestamp:  r.Timestamp,
		ModelClass: r.Provenance.ModelClass,
		MassSolar:  r.Request.Input.MassSolar,
		Spin:       r.Request.Input.Spin,
		Charge:     r.Request.Input.Charge,
	}
}

// outputComparisonText writes the comparison as a text table.
func outputComparisonText(w io.Writer, result *ComparisonResult) {
	fmt.Fprintf(w, "Run Comparison: %s -> %s\n", result.Previous.ID, result.Current.ID)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	for _, m := range []struct {
		label string
		meta  RunMetadata
	}{
		{"Previous", result.Previous},
		{"Current ", result.Current},
	} {
		fmt.Fprintf(w, "%s: %s  %s  M=%g a*=%g Q*=%g  (%s)\n",
			m.label, m.meta.ID, m.meta.ModelClass,
			m.meta.MassSolar, m.meta.Spin, m.meta.Charge,
			m.meta.Timestamp.Format(historyTimeLayout))
	}
	if result.SameParameters {
		fmt.Fprintln(w, "\nBoth runs used the same parameters.")
	}

	fmt.Fprintln(w, "\nOutputs:")
	fmt.Fprintf(w, "  %-24s  %-14s  %-14s  %-14s  %s\n", "Quantity", "Previous", "Current", "Change", "Unit")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 80))
	for _, d := range result.Deltas {
		fmt.Fprintf(w, "  %-24s  %-14s  %-14s  %-14s  %s\n",
			d.Key, formatValue(d.Previous), formatValue(d.Current), formatDelta(d), d.Unit)
	}
}

// formatValue renders an optional value; nil means not computed.
func formatValue(n *model.Number) string {
	if n == nil {
		return "-"
	}
	if !n.IsFinite() {
		return n.String()
	}
	return fmt.Sprintf("%.6g", n.Float64())
}

// formatDelta renders the change with an explicit sign and, when defined,
// the relative change.
func formatDelta(d QuantityDelta) string {
	if d.Delta == nil {
		return "-"
	}
	v := d.Delta.Float64()
	switch {
	case math.IsNaN(v):
		return "NaN"
	case v == 0:
		return "0"
	}
	s := fmt.Sprintf("%+.4g", v)
	if d.Relative != nil && d.Relative.IsFinite() {
		s += fmt.Sprintf(" (%+.1f%%)", d.Relative.Float64()*100)
	}
	return s
}
