package pipeline

import (
	"math"
	"testing"

	"github.com/matzehuels/mindmap/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"html", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "gif"}); err == nil {
		t.Error("invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("empty formats should pass: %v", err)
	}
}

func TestValidateEnums(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		value   string
		code    errors.Code
		wantErr bool
	}{
		{"style simple", ValidateStyle, "simple", "", false},
		{"style animated", ValidateStyle, "animated", "", false},
		{"style handdrawn", ValidateStyle, "handdrawn", errors.ErrCodeInvalidStyle, true},
		{"theme night", ValidateTheme, "night", "", false},
		{"theme day", ValidateTheme, "day", "", false},
		{"theme dusk", ValidateTheme, "dusk", errors.ErrCodeInvalidTheme, true},
		{"viz radial", ValidateVizType, "radial", "", false},
		{"viz nodelink", ValidateVizType, "nodelink", "", false},
		{"viz treemap", ValidateVizType, "treemap", errors.ErrCodeInvalidVizType, true},
		{"viz empty", ValidateVizType, "", errors.ErrCodeInvalidVizType, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestValidateForRenderDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender() error: %v", err)
	}
	if o.Width != 800 || o.Height != 650 {
		t.Errorf("canvas = %vx%v, want 800x650", o.Width, o.Height)
	}
	if o.VizType != "radial" || o.Style != "animated" || o.Theme != "night" {
		t.Errorf("viz/style/theme = %s/%s/%s", o.VizType, o.Style, o.Theme)
	}
	if len(o.Formats) != 1 || o.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Scale != 2 {
		t.Errorf("Scale = %v, want 2", o.Scale)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestValidateForRenderDedupesFormats(t *testing.T) {
	o := Options{Formats: []string{"SVG", "svg", " json ", ""}}
	if err := o.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender() error: %v", err)
	}
	if len(o.Formats) != 2 || o.Formats[0] != "svg" || o.Formats[1] != "json" {
		t.Errorf("Formats = %v, want [svg json]", o.Formats)
	}
}

func TestValidateForLayoutCanvas(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"negative width", -1, 650},
		{"negative height", 800, -5},
		{"nan", math.NaN(), 650},
		{"inf", 800, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Options{Width: tt.width, Height: tt.height}
			if err := o.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("err = %v, want INVALID_ARGUMENT", err)
			}
		})
	}
}

func TestValidateForRenderScale(t *testing.T) {
	o := Options{Scale: -1}
	if err := o.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("err = %v, want INVALID_ARGUMENT", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{}
	_ = o.ValidateForRender()

	svg := o.ArtifactKeyOpts("svg")
	if svg.Scale != 0 {
		t.Error("scale should only key PNG artifacts")
	}
	if png := o.ArtifactKeyOpts("png"); png.Scale != 2 {
		t.Errorf("png scale = %v, want 2", png.Scale)
	}

	nl := Options{VizType: VizTypeNodelink}
	_ = nl.ValidateForRender()
	if nl.ArtifactKeyOpts("svg") == svg {
		t.Error("nodelink and radial artifacts must have different keys")
	}
}
