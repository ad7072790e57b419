package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateCanvas(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"default canvas", 800, 650, false},
		{"tiny canvas", 0.001, 0.001, false},
		{"zero width", 0, 650, true},
		{"zero height", 800, 0, true},
		{"negative width", -800, 650, true},
		{"negative height", 800, -1, true},
		{"nan width", math.NaN(), 650, true},
		{"inf height", 800, math.Inf(1), true},
		{"negative inf width", math.Inf(-1), 650, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvas(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCanvas(%v, %v) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidArgument) {
				t.Errorf("ValidateCanvas() code = %v, want %v", GetCode(err), ErrCodeInvalidArgument)
			}
		})
	}
}

func TestValidateMapID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "3f0c6f1e-8a47-4f43-9d2b-1d1f6c0b9a11", false},
		{"underscore", "node_map_1", false},
		{"alnum", "abc123", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"slash", "a/b", true},
		{"dot dot", "..", true},
		{"space", "a b", true},
		{"unicode", "kärta", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMapID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMapID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDimension(t *testing.T) {
	if err := ValidateDimension("height", 650); err != nil {
		t.Errorf("ValidateDimension(650) = %v", err)
	}
	err := ValidateDimension("height", 0)
	if !Is(err, ErrCodeInvalidArgument) || !strings.Contains(err.Error(), "height") {
		t.Errorf("ValidateDimension(0) = %v, want INVALID_ARGUMENT naming height", err)
	}
}
