package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/blackholecalc/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for notebooks, issues and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables and GitHub-flavored alerts.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run in Markdown format.
func (w *MarkdownWriter) Write(run *model.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeAlert(md, run)
	w.writeQuantities(md, "Parameters", run.Inputs, 0)
	w.writeQuantities(md, "Results", run.Outputs, geometricMass(run))
	w.writeAssumptions(md, run)
	w.writeNotices(md, run)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSweep outputs the sweep as a Markdown table.
func (w *MarkdownWriter) WriteSweep(sweep *model.Sweep) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Parameter Sweep")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Parameter", "`" + sweep.Parameter + "`"},
			{"Mass", FormatSolarMass(sweep.MassSolar)},
			{"Points", strconv.Itoa(len(sweep.Runs))},
			{"Failed", strconv.Itoa(sweep.Failed())},
		},
	})
	md.PlainText("")

	rows := sweepRows(sweep)
	tableRows := make([][]string, len(rows))
	for i, r := range rows {
		tableRows[i] = []string{r.value, r.class, r.horizon, r.isco, r.temperature, r.status}
	}
	md.H2("Results")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{sweep.Parameter, "Type", "r+ (M)", "ISCO (M)", "T (K)", "Status"},
		Rows:   tableRows,
	})
	md.PlainText("")

	w.writeClassPieChart(md, rows)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.Run) {
	md.H1("Black Hole Report")
	md.PlainText("")

	rows := [][]string{
		{"Run", "`" + run.Name + "`"},
		{"Date", run.Timestamp.Format(timeLayout)},
		{"Model", run.Provenance.ModelClass},
	}
	if c := run.Classification; c != nil {
		rows = append(rows,
			[]string{"Description", c.Description},
			[]string{"Orbit Status", c.Status},
		)
	}
	if t := run.TypeInfo; t != nil {
		rows = append(rows,
			[]string{"Singularity", t.Singularity},
			[]string{"Ergosphere", t.Ergosphere},
		)
	}
	rows = append(rows, []string{"Status", w.getStatusText(run)})

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if run.Description != "" {
		md.PlainText(run.Description)
		md.PlainText("")
	}
}

// getStatusText returns the status text based on run state.
func (w *MarkdownWriter) getStatusText(run *model.Run) string {
	if run.Failed() {
		return "❌ Error - " + run.ErrorMessage
	}
	return "✅ Complete"
}

// writeAlert writes an alert for the most severe notice.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, run *model.Run) {
	switch {
	case run.Failed():
		md.Cautionf("Evaluation stopped: %s", run.ErrorMessage)
	case run.HighestLevel() == model.LevelCaution:
		md.Caution("The parameters describe a naked singularity. No horizon hides the central singularity.")
	case run.HighestLevel() == model.LevelWarning:
		md.Warning("The black hole is near-extremal. Quantities that depend on the horizon separation may be degenerate.")
	case run.HighestLevel() == model.LevelNote:
		md.Note("Some quantities are not implemented for this model and are reported as missing.")
	default:
		md.Tip("All quantities were evaluated.")
	}
	md.PlainText("")
}

// writeQuantities writes a table of quantities with units.
func (w *MarkdownWriter) writeQuantities(md *markdown.Markdown, title string, qs model.Quantities, m float64) {
	md.H2(title)
	md.PlainText("")

	if qs.Len() == 0 {
		md.PlainText("None recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, qs.Len())
	for _, key := range qs.Keys() {
		q, _ := qs.Get(key)
		rows = append(rows, []string{Label(key), "`" + key + "`", FormatQuantity(q, m)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Quantity", "Key", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAssumptions writes the modeling assumptions as a bullet list.
func (w *MarkdownWriter) writeAssumptions(md *markdown.Markdown, run *model.Run) {
	if len(run.Assumptions) == 0 {
		return
	}
	md.H2("Assumptions")
	md.PlainText("")
	md.BulletList(run.Assumptions...)
	md.PlainText("")
}

// writeNotices writes each notice as a collapsible detail block.
func (w *MarkdownWriter) writeNotices(md *markdown.Markdown, run *model.Run) {
	if len(run.Notices) == 0 {
		return
	}
	md.H2("Notices")
	md.PlainText("")
	for _, n := range run.Notices {
		md.Details(n.Level.String()+" ("+n.Step+")", n.Message)
	}
	md.PlainText("")
}

// writeClassPieChart writes a mermaid pie chart of model classes in a sweep.
func (w *MarkdownWriter) writeClassPieChart(md *markdown.Markdown, rows []sweepRow) {
	if len(rows) == 0 {
		return
	}

	counts := make(map[string]uint64)
	var order []string
	for _, r := range rows {
		if _, ok := counts[r.class]; !ok {
			order = append(order, r.class)
		}
		counts[r.class]++
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Model Classes"),
		piechart.WithShowData(true),
	)
	for _, class := range order {
		chart.LabelAndIntValue(strings.TrimSpace(class), counts[class])
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by [blackholecalc](https://github.com/nao1215/blackholecalc)*")
}
