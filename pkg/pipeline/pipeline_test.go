package pipeline

import (
	"math"
	"testing"

	"github.com/BardicNoel/perktree/pkg/graph"
	"github.com/BardicNoel/perktree/pkg/layout"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptions_ValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.MaxRecords != DefaultMaxRecords {
		t.Errorf("MaxRecords = %d, want %d", opts.MaxRecords, DefaultMaxRecords)
	}
	if opts.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", opts.Concurrency, DefaultConcurrency)
	}
	if opts.Layout != layout.DefaultConfig() {
		t.Errorf("Layout = %+v, want defaults", opts.Layout)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() error: %v", err)
	}
}

func TestOptions_ValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad format", Options{Formats: []string{"pdf"}}},
		{"negative max records", Options{MaxRecords: -1}},
	}
	for _, tt := range tests {
		if err := tt.opts.ValidateAndSetDefaults(); err == nil {
			t.Errorf("%s: ValidateAndSetDefaults() expected error", tt.name)
		}
	}
}

func TestOptions_LayoutKeyOpts(t *testing.T) {
	zero := Options{}
	zero.SetLayoutDefaults()
	explicit := Options{Layout: layout.DefaultConfig()}
	explicit.SetLayoutDefaults()

	if zero.LayoutKeyOpts() != explicit.LayoutKeyOpts() {
		t.Errorf("LayoutKeyOpts() differ for equivalent configs: %+v vs %+v",
			zero.LayoutKeyOpts(), explicit.LayoutKeyOpts())
	}

	wide := Options{Layout: layout.Config{NodeWidth: 300}}
	wide.SetLayoutDefaults()
	if wide.LayoutKeyOpts() == zero.LayoutKeyOpts() {
		t.Error("LayoutKeyOpts() should change with NodeWidth")
	}
}

func TestOptions_ArtifactKeyOpts(t *testing.T) {
	opts := Options{ShowLabels: true}
	got := opts.ArtifactKeyOpts(FormatSVG)
	if got.Format != FormatSVG || !got.ShowLabel || got.FlipY {
		t.Errorf("ArtifactKeyOpts() = %+v", got)
	}
}

func TestRecordsHash(t *testing.T) {
	a := []graph.Record{{ID: "a", Children: []string{"b"}}, {ID: "b"}}
	b := []graph.Record{{ID: "b"}, {ID: "a", Children: []string{"b"}}}
	c := []graph.Record{{ID: "a"}, {ID: "b"}}

	if RecordsHash(a) != RecordsHash(b) {
		t.Error("RecordsHash() should not depend on record order")
	}
	if RecordsHash(a) == RecordsHash(c) {
		t.Error("RecordsHash() should change with record content")
	}
	if len(a) != 2 || a[0].ID != "a" {
		t.Error("RecordsHash() must not reorder its input")
	}
}

func TestRecordsHash_NonFiniteSeeds(t *testing.T) {
	x := []graph.Record{{ID: "x", Seed: graph.Point{X: math.NaN()}}}
	y := []graph.Record{{ID: "y", Seed: graph.Point{X: math.NaN()}}}
	if RecordsHash(x) == RecordsHash(y) {
		t.Error("RecordsHash() collides for different records with NaN seeds")
	}
}
