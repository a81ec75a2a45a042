// Package report renders evaluated runs and parameter sweeps.
//
// Three formats are available, all behind the Writer interface:
//   - SimpleWriter: fixed-width text for the terminal
//   - JSONWriter and FullJSONWriter: the run record itself, for scripts
//   - MarkdownWriter: tables and alerts for notebooks and issues
//
// Lengths are printed in SI units alongside their value in units of the
// geometric mass M, so a reader can check a result against the closed-form
// expression without converting by hand. Quantities a model could not
// compute are printed as "not implemented" rather than dropped.
//
// Design decision: writers only read from model.Run. Formatting helpers
// live here, not on the model, so the saved JSON stays free of display
// concerns.
package report
