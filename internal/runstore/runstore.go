package runstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/blackholecalc/internal/classify"
	"github.com/nao1215/blackholecalc/internal/model"
)

// File names inside a run directory.
const (
	InputsFile   = "inputs.json"
	OutputsFile  = "outputs.json"
	MetadataFile = "metadata.json"
)

const (
	dirPerm  = 0750
	filePerm = 0600
)

// ErrNoName is returned when a run has no name to use as its directory.
var ErrNoName = errors.New("run has no name")

// ErrInvalidName is returned when a run name would place its directory
// outside the base directory.
var ErrInvalidName = errors.New("run name must be a single path element")

// Metadata is the content of metadata.json.
type Metadata struct {
	ID             string           `json:"id"`
	Timestamp      time.Time        `json:"timestamp"`
	Description    string           `json:"description"`
	Provenance     model.Provenance `json:"provenance"`
	Assumptions    []string         `json:"assumptions"`
	Classification *classify.Record `json:"classification,omitempty"`
	Notices        []model.Notice   `json:"notices,omitempty"`
	Fingerprint    string           `json:"fingerprint"`
}

// Save writes run under baseDir and returns the run directory.
// An existing directory for the same run is overwritten.
func Save(baseDir string, run *model.Run) (string, error) {
	if run.Name == "" {
		return "", ErrNoName
	}
	if !validName(run.Name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, run.Name)
	}

	dir := filepath.Join(baseDir, run.Name)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}

	assumptions := run.Assumptions
	if assumptions == nil {
		assumptions = []string{}
	}
	meta := Metadata{
		ID:             run.ID,
		Timestamp:      run.Timestamp,
		Description:    run.Description,
		Provenance:     run.Provenance,
		Assumptions:    assumptions,
		Classification: run.Classification,
		Notices:        run.Notices,
		Fingerprint:    run.Fingerprint(),
	}

	files := []struct {
		name string
		v    any
	}{
		{InputsFile, run.Inputs},
		{OutputsFile, run.Outputs},
		{MetadataFile, meta},
	}
	for _, f := range files {
		if err := writeJSON(filepath.Join(dir, f.name), f.v); err != nil {
			return "", err
		}
	}

	return dir, nil
}

// Load reads a run directory written by Save. The request and model are
// not restored; inputs, outputs and metadata are.
func Load(dir string) (*model.Run, error) {
	var (
		inputs  model.Quantities
		outputs model.Quantities
		meta    Metadata
	)
	if err := readJSON(filepath.Join(dir, InputsFile), &inputs); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, OutputsFile), &outputs); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, MetadataFile), &meta); err != nil {
		return nil, err
	}

	return &model.Run{
		ID:             meta.ID,
		Name:           filepath.Base(dir),
		Timestamp:      meta.Timestamp,
		Description:    meta.Description,
		Provenance:     meta.Provenance,
		Inputs:         inputs,
		Outputs:        outputs,
		Assumptions:    meta.Assumptions,
		Classification: meta.Classification,
		Notices:        meta.Notices,
	}, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// validName reports whether name is one path element other than "." and "..".
func validName(name string) bool {
	return filepath.Base(name) == name && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`)
}
