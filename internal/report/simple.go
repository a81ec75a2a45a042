package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/blackholecalc/internal/model"
)

// timeLayout is the timestamp format used in human-readable reports.
const timeLayout = "2006-01-02 15:04:05 MST"

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors so the output can be piped to files or other tools.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no entries are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output: provenance and performed steps.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run in human-readable format.
func (w *SimpleWriter) Write(run *model.Run) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, run)
	w.writeClassification(&sb, run)
	w.writeQuantities(&sb, "PARAMETERS", run.Inputs, 0)
	w.writeQuantities(&sb, "RESULTS", run.Outputs, geometricMass(run))
	w.writeNotices(&sb, run)
	w.writeAssumptions(&sb, run)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteSweep outputs a sweep as a fixed-width table.
func (w *SimpleWriter) WriteSweep(sweep *model.Sweep) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "PARAMETER SWEEP")
	sb.WriteString(fmt.Sprintf("Parameter:      %s\n", sweep.Parameter))
	sb.WriteString(fmt.Sprintf("Mass:           %s\n", FormatSolarMass(sweep.MassSolar)))
	sb.WriteString(fmt.Sprintf("Points:         %d (%d failed)\n\n", len(sweep.Runs), sweep.Failed()))

	writeSection(&sb, "RESULTS")
	sb.WriteString(fmt.Sprintf("  %-8s  %-20s  %-10s  %-10s  %-10s  %s\n",
		sweep.Parameter, "Type", "r+ (M)", "ISCO (M)", "T (K)", "Status"))
	for _, row := range sweepRows(sweep) {
		sb.WriteString(fmt.Sprintf("  %-8s  %-20s  %-10s  %-10s  %-10s  %s\n",
			row.value, row.class, row.horizon, row.isco, row.temperature, row.status))
	}
	sb.WriteString("\n")
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, run *model.Run) {
	writeBanner(sb, "BLACK HOLE REPORT")

	sb.WriteString(fmt.Sprintf("Run:            %s (%s)\n", run.Name, run.ID))
	sb.WriteString(fmt.Sprintf("Date:           %s\n", run.Timestamp.Format(timeLayout)))
	sb.WriteString(fmt.Sprintf("Model:          %s\n", run.Provenance.ModelClass))
	if run.Description != "" {
		sb.WriteString(fmt.Sprintf("Description:    %s\n", run.Description))
	}

	if run.Failed() {
		sb.WriteString(fmt.Sprintf("Status:         ERROR - %s\n", run.ErrorMessage))
	} else {
		sb.WriteString("Status:         Complete\n")
	}

	if w.verbose {
		sb.WriteString(fmt.Sprintf("Fingerprint:    %s\n", run.Fingerprint()))
		sb.WriteString(fmt.Sprintf("Version:        %s (%s, %s)\n",
			run.Provenance.LibraryVersion, run.Provenance.GoVersion, run.Provenance.Platform))
		if len(run.PerformedSteps) > 0 {
			sb.WriteString(fmt.Sprintf("Steps:          %s\n", strings.Join(run.PerformedSteps, ", ")))
		}
	}

	sb.WriteString("\n")
}

// writeClassification writes the classifier verdict and model description.
func (w *SimpleWriter) writeClassification(sb *strings.Builder, run *model.Run) {
	if run.Classification == nil && run.TypeInfo == nil {
		return
	}

	writeSection(sb, "CLASSIFICATION")
	if c := run.Classification; c != nil {
		sb.WriteString(fmt.Sprintf("  Type:         %s\n", c.Type))
		sb.WriteString(fmt.Sprintf("  Description:  %s\n", c.Description))
		sb.WriteString(fmt.Sprintf("  Status:       %s\n", c.Status))
		sb.WriteString(fmt.Sprintf("  Physical:     %t\n", c.IsPhysical))
	}
	if t := run.TypeInfo; t != nil {
		sb.WriteString(fmt.Sprintf("  Properties:   %s\n", t.Properties))
		sb.WriteString(fmt.Sprintf("  Singularity:  %s\n", t.Singularity))
		sb.WriteString(fmt.Sprintf("  Ergosphere:   %s\n", t.Ergosphere))
	}
	sb.WriteString("\n")
}

// writeQuantities writes one labelled line per quantity.
func (w *SimpleWriter) writeQuantities(sb *strings.Builder, title string, qs model.Quantities, m float64) {
	if qs.Len() == 0 && !w.showEmpty {
		return
	}

	writeSection(sb, title)
	if qs.Len() == 0 {
		sb.WriteString("  None\n\n")
		return
	}
	for _, key := range qs.Keys() {
		q, _ := qs.Get(key)
		sb.WriteString(fmt.Sprintf("  %-30s %s\n", Label(key)+":", FormatQuantity(q, m)))
	}
	sb.WriteString("\n")
}

// writeNotices writes warnings raised during evaluation, one per line.
func (w *SimpleWriter) writeNotices(sb *strings.Builder, run *model.Run) {
	if len(run.Notices) == 0 && !w.showEmpty {
		return
	}

	writeSection(sb, "NOTICES")
	if len(run.Notices) == 0 {
		sb.WriteString("  None\n")
	}
	for _, n := range run.Notices {
		sb.WriteString(fmt.Sprintf("  [%s] %s: %s\n", levelIndicator(n.Level), n.Step, n.Message))
	}
	sb.WriteString("\n")
}

// writeAssumptions writes the modeling assumptions in effect.
func (w *SimpleWriter) writeAssumptions(sb *strings.Builder, run *model.Run) {
	if len(run.Assumptions) == 0 && !w.showEmpty {
		return
	}

	writeSection(sb, "ASSUMPTIONS")
	if len(run.Assumptions) == 0 {
		sb.WriteString("  None\n")
	}
	for _, a := range run.Assumptions {
		sb.WriteString(fmt.Sprintf("  * %s\n", a))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by blackholecalc\n")
	sb.WriteString("https://github.com/nao1215/blackholecalc\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

// levelIndicator returns a visual indicator for the notice level.
func levelIndicator(level model.Level) string {
	switch level {
	case model.LevelCaution:
		return "!!!"
	case model.LevelWarning:
		return "!!"
	case model.LevelNote:
		return "!"
	case model.LevelInfo:
		return "i"
	default:
		return "?"
	}
}

func writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	pad := max((70-len(title))/2, 0)
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}
