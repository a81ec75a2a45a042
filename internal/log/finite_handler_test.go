package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestFormatNonFinite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  float64
		want   string
		wantOK bool
	}{
		{name: "positive infinity", value: math.Inf(1), want: "+Inf", wantOK: true},
		{name: "negative infinity", value: math.Inf(-1), want: "-Inf", wantOK: true},
		{name: "not a number", value: math.NaN(), want: "NaN", wantOK: true},
		{name: "finite value", value: 1.5, want: "", wantOK: false},
		{name: "zero", value: 0, want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := FormatNonFinite(tt.value)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FormatNonFinite(%g) = (%q, %v), want (%q, %v)", tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestJSONLogger_EncodesInfinity(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, true)
	logger.Info("redshift probe", "z", math.Inf(1), "r", 3.0, slog.Group("thermo", "lifetime", math.Inf(1), "t", float32(math.NaN())))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry["z"] != "+Inf" {
		t.Errorf("expected z to be +Inf, got %v", entry["z"])
	}
	if entry["r"] != 3.0 {
		t.Errorf("expected r to stay numeric, got %v", entry["r"])
	}
	group, ok := entry["thermo"].(map[string]any)
	if !ok {
		t.Fatalf("expected thermo group, got %v", entry["thermo"])
	}
	if group["lifetime"] != "+Inf" || group["t"] != "NaN" {
		t.Errorf("unexpected group values %v", group)
	}
}

func TestFiniteHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, true).With("wavelength", math.Inf(1))
	logger.Info("extremal")

	if !strings.Contains(buf.String(), `"wavelength":"+Inf"`) {
		t.Errorf("expected rewritten attribute, got %s", buf.String())
	}
}

func TestFiniteHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, true).WithGroup("run")
	logger.Info("done", "z", math.Inf(-1))

	if !strings.Contains(buf.String(), `"run":{"z":"-Inf"}`) {
		t.Errorf("expected grouped attribute, got %s", buf.String())
	}
}

func TestNewLogger_Level(t *testing.T) {
	t.Parallel()

	t.Run("quiet logger drops info", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		NewLogger(&buf, false).Info("hidden")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("verbose logger keeps debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		NewLogger(&buf, true).Debug("shown", "v", math.NaN())
		if !strings.Contains(buf.String(), "v=NaN") {
			t.Errorf("expected debug output, got %q", buf.String())
		}
	})
}

func TestNewFiniteHandler_NilFallsBackToDefault(t *testing.T) {
	t.Parallel()

	h := NewFiniteHandler(nil)
	if h.handler == nil {
		t.Error("expected a fallback handler")
	}
}
