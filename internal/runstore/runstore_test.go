package runstore

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/blackholecalc/internal/classify"
	"github.com/nao1215/blackholecalc/internal/metric"
	"github.com/nao1215/blackholecalc/internal/model"
)

func sampleRun() *model.Run {
	run := model.NewRun(model.NewRequest(metric.Input{MassSolar: 10, Spin: 0.5, Charge: 0.5}), "sample")
	run.Provenance.ModelClass = "Kerr-Newman"
	run.Inputs.Set(model.InputMassSolar, 10, model.UnitSolarMass)
	run.Inputs.Set(model.InputSpin, 0.5, model.UnitDimensionless)
	run.Outputs.Set(model.OutputHorizonRadius, 27559.4, model.UnitMeters)
	run.Outputs.Set(model.OutputLifetime, math.Inf(1), model.UnitYears)
	run.Outputs.SetMissing(model.OutputEffectivePotential)
	run.AddAssumption("vacuum")
	rec := classify.Classify(10, 0.5, 0.5)
	run.Classification = &rec
	return run
}

func TestSave(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	run := sampleRun()

	dir, err := Save(base, run)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join(base, run.Name) {
		t.Errorf("unexpected directory %q", dir)
	}

	t.Run("writes three files", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{InputsFile, OutputsFile, MetadataFile} {
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if runtime.GOOS != "windows" && info.Mode().Perm() != 0600 {
				t.Errorf("%s: expected mode 0600, got %v", name, info.Mode().Perm())
			}
		}
	})

	t.Run("outputs keep order and sentinels", func(t *testing.T) {
		t.Parallel()
		data, err := os.ReadFile(filepath.Join(dir, OutputsFile))
		if err != nil {
			t.Fatal(err)
		}
		var raw map[string]map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("outputs.json is not valid JSON: %v", err)
		}
		if raw[model.OutputLifetime]["value"] != "+Inf" {
			t.Errorf("expected +Inf lifetime, got %v", raw[model.OutputLifetime]["value"])
		}
		if raw[model.OutputEffectivePotential]["value"] != nil ||
			raw[model.OutputEffectivePotential]["unit"] != model.UnitNotImplemented {
			t.Errorf("unexpected missing value %v", raw[model.OutputEffectivePotential])
		}
	})

	t.Run("metadata carries provenance", func(t *testing.T) {
		t.Parallel()
		data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
		if err != nil {
			t.Fatal(err)
		}
		var meta Metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			t.Fatal(err)
		}
		if meta.ID != run.ID || meta.Provenance.ModelClass != "Kerr-Newman" || meta.Fingerprint != run.Fingerprint() {
			t.Errorf("unexpected metadata %+v", meta)
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	run := sampleRun()
	dir, err := Save(t.TempDir(), run)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != run.ID || got.Name != run.Name || !got.Timestamp.Equal(run.Timestamp) {
		t.Errorf("identity mismatch: %s/%s vs %s/%s", got.ID, got.Name, run.ID, run.Name)
	}
	if diff := cmp.Diff(run.Outputs.Keys(), got.Outputs.Keys()); diff != "" {
		t.Errorf("output keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(run.Assumptions, got.Assumptions); diff != "" {
		t.Errorf("assumptions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(run.Classification, got.Classification); diff != "" {
		t.Errorf("classification mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveErrors(t *testing.T) {
	t.Parallel()

	t.Run("run without name", func(t *testing.T) {
		t.Parallel()
		if _, err := Save(t.TempDir(), &model.Run{}); !errors.Is(err, ErrNoName) {
			t.Errorf("expected ErrNoName, got %v", err)
		}
	})

	t.Run("names that leave the base directory", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"../escaped", "..", ".", "a/b", `a\b`, "/abs"} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				parent := t.TempDir()
				base := filepath.Join(parent, "runs")
				run := &model.Run{Name: name}
				if _, err := Save(base, run); !errors.Is(err, ErrInvalidName) {
					t.Fatalf("expected ErrInvalidName, got %v", err)
				}
				if _, err := os.Stat(filepath.Join(parent, "escaped", InputsFile)); !os.IsNotExist(err) {
					t.Errorf("expected nothing written outside %s", base)
				}
			})
		}
	})

	t.Run("load missing directory", func(t *testing.T) {
		t.Parallel()
		if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("expected an error")
		}
	})
}
