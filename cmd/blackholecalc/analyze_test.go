package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/blackholecalc/internal/config"
	"github.com/nao1215/blackholecalc/internal/database"
	"github.com/nao1215/blackholecalc/internal/metric"
)

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeConfig writes a configuration file so tests do not pick up one from
// the working or home directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// jsonRun is the subset of the JSON report the tests inspect.
type jsonRun struct {
	Version string `json:"version"`
	Run     struct {
		Name    string `json:"name"`
		Request struct {
			Input struct {
				MassSolar float64 `json:"mass_solar"`
				Spin      float64 `json:"spin"`
				Charge    float64 `json:"charge"`
			} `json:"input"`
		} `json:"request"`
		Provenance struct {
			ModelClass string `json:"model_class"`
		} `json:"provenance"`
		Outputs map[string]struct {
			Value json.RawMessage `json:"value"`
			Unit  string          `json:"unit"`
		} `json:"outputs"`
		Description string `json:"description"`
	} `json:"run"`
}

func decodeRun(t *testing.T, out string) jsonRun {
	t.Helper()

	var r jsonRun
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("invalid JSON report: %v\n%s", err, out)
	}
	return r
}

// TestNewAnalyzeCmd tests the analyze command flags.
func TestNewAnalyzeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewAnalyzeCmd()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"mass", "M", "10"},
		{"spin", "a", "0"},
		{"charge", "q", "0"},
		{"preset", "p", ""},
		{"json", "j", "false"},
		{"markdown", "m", "false"},
		{"output", "o", ""},
		{"save", "", "true"},
		{"radius", "", "10"},
		{"angular-momentum", "", "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("expected default %q, got %q", tt.defValue, flag.DefValue)
			}
		})
	}
}

func TestAnalyzeCmd(t *testing.T) {
	t.Parallel()

	t.Run("dry run prints text report", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "analyze", "--mass", "10", "--save=false",
			"--config", writeConfig(t, ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"BLACK HOLE REPORT",
			"Model:          Schwarzschild",
			"(2.0000 M)",
			"(6.0000 M)",
			"Hawking temperature",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q\n%s", want, out)
			}
		}
	})

	t.Run("json report", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "analyze", "-M", "10", "-a", "0.9", "--json", "--save=false",
			"--config", writeConfig(t, ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		r := decodeRun(t, out)
		if r.Version == "" {
			t.Error("expected version")
		}
		if r.Run.Provenance.ModelClass != "Kerr" {
			t.Errorf("expected Kerr, got %q", r.Run.Provenance.ModelClass)
		}
		if got := r.Run.Outputs["horizon_radius"].Unit; got != "meters" {
			t.Errorf("expected horizon radius in meters, got %q", got)
		}
		if _, ok := r.Run.Outputs["ergosphere_equator"]; !ok {
			t.Error("expected ergosphere output for a rotating hole")
		}
	})

	t.Run("json logs on stderr", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := execute(t, "analyze", "-v", "--log-json", "--save=false",
			"--config", writeConfig(t, ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, `"msg":"starting evaluation"`) {
			t.Errorf("expected JSON log records, got %q", stderr)
		}
	})

	t.Run("markdown report to file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "reports", "run.md")
		out, _, err := execute(t, "analyze", "--markdown", "-o", path, "--save=false",
			"--config", writeConfig(t, ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "" {
			t.Errorf("expected nothing on stdout, got %q", out)
		}
		content, err := os.ReadFile(path) //nolint:gosec // test path
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(content), "# Black Hole Report") {
			t.Errorf("unexpected report\n%s", content)
		}
	})

	t.Run("saves run directory and index", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		runsDir := filepath.Join(dir, "runs")
		dbDir := filepath.Join(dir, "db")
		_, stderr, err := execute(t, "analyze", "--mass", "5", "--name", "my-run",
			"--description", "saved", "--runs-dir", runsDir, "--db-dir", dbDir,
			"--config", writeConfig(t, ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "Saved my-run") {
			t.Errorf("expected save message, got %q", stderr)
		}
		for _, f := range []string{"inputs.json", "outputs.json", "metadata.json"} {
			if _, err := os.Stat(filepath.Join(runsDir, "my-run", f)); err != nil {
				t.Errorf("expected %s: %v", f, err)
			}
		}

		db, err := database.Open(dbDir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		runs, err := db.ListRuns(context.Background(), 10)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 1 || runs[0].Name != "my-run" || runs[0].MassSolar != 5 {
			t.Errorf("unexpected index contents: %+v", runs)
		}
	})

	t.Run("naked singularity is reported then fails", func(t *testing.T) {
		t.Parallel()

		out, _, err := execute(t, "analyze", "--spin", "0.9", "--charge", "0.9", "--save=false",
			"--config", writeConfig(t, ""))
		if !errors.Is(err, metric.ErrNakedSingularity) {
			t.Fatalf("expected ErrNakedSingularity, got %v", err)
		}
		if !strings.Contains(out, "Status:         ERROR") {
			t.Errorf("expected error status in report\n%s", out)
		}
		if !strings.Contains(out, "UNSTABLE") {
			t.Errorf("expected classification in report\n%s", out)
		}
	})

	t.Run("preset with flag override", func(t *testing.T) {
		t.Parallel()

		cfgPath := writeConfig(t, `presets:
  sgr-a:
    mass: 4.3e6
    spin: 0.9
    description: "Milky Way centre"
`)
		out, _, err := execute(t, "analyze", "--preset", "sgr-a", "--spin", "0.5", "--json",
			"--save=false", "--config", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		r := decodeRun(t, out)
		if r.Run.Request.Input.MassSolar != 4.3e6 {
			t.Errorf("expected preset mass, got %v", r.Run.Request.Input.MassSolar)
		}
		if r.Run.Request.Input.Spin != 0.5 {
			t.Errorf("expected flag spin 0.5, got %v", r.Run.Request.Input.Spin)
		}
		if r.Run.Description != "Milky Way centre" {
			t.Errorf("expected preset description, got %q", r.Run.Description)
		}
	})

	t.Run("configuration errors", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			args    []string
			wantErr error
		}{
			{"both formats", []string{"--json", "--markdown"}, config.ErrConflictingReportFormats},
			{"negative mass", []string{"--mass=-1"}, config.ErrInvalidMass},
			{"spin out of range", []string{"--spin", "1.5"}, config.ErrInvalidSpin},
			{"unknown preset", []string{"--preset", "nope"}, config.ErrPresetNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				args := append([]string{"analyze", "--save=false", "--config", writeConfig(t, "")}, tt.args...)
				_, _, err := execute(t, args...)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			})
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "analyze", "--save=false",
			"--config", filepath.Join(t.TempDir(), "absent.yaml"))
		if err == nil || !strings.Contains(err.Error(), "configuration file not found") {
			t.Errorf("expected not found error, got %v", err)
		}
	})
}

// TestAnalyzeCmd_Environment sets process environment and cannot run in
// parallel.
func TestAnalyzeCmd_Environment(t *testing.T) {
	t.Setenv("BLACKHOLECALC_MASS", "20")
	t.Setenv("BLACKHOLECALC_CHARGE", "0.3")

	cfgPath := writeConfig(t, "")

	out, _, err := execute(t, "analyze", "--json", "--save=false", "--config", cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := decodeRun(t, out)
	if r.Run.Request.Input.MassSolar != 20 || r.Run.Request.Input.Charge != 0.3 {
		t.Errorf("expected environment values, got %+v", r.Run.Request.Input)
	}
	if r.Run.Provenance.ModelClass != "Reissner-Nordström" {
		t.Errorf("expected Reissner-Nordström, got %q", r.Run.Provenance.ModelClass)
	}

	out, _, err = execute(t, "analyze", "--mass", "30", "--json", "--save=false", "--config", cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := decodeRun(t, out).Run.Request.Input.MassSolar; got != 30 {
		t.Errorf("expected flag to override environment, got %v", got)
	}
}
