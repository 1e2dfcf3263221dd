package svg

import (
	"errors"
	"testing"

	"iconc"
)

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name string
		attr string
		in   iconc.Point
		want iconc.Point
	}{
		{"translate two args", "translate(2, 3)", iconc.Pt(1, 1), iconc.Pt(3, 4)},
		{"translate one arg", "translate(2)", iconc.Pt(0, 5), iconc.Pt(2, 5)},
		{"scale uniform", "scale(3)", iconc.Pt(1, 2), iconc.Pt(3, 6)},
		{"scale two args", "scale(2,4)", iconc.Pt(1, 1), iconc.Pt(2, 4)},
		{"rotate quarter turn", "rotate(90)", iconc.Pt(1, 0), iconc.Pt(0, 1)},
		{"rotate about point", "rotate(180, 5, 5)", iconc.Pt(0, 5), iconc.Pt(10, 5)},
		{"matrix", "matrix(1 0 0 1 7 -2)", iconc.Pt(1, 1), iconc.Pt(8, -1)},
		{"list applies left to right", "translate(2,0) scale(3)", iconc.Pt(1, 0), iconc.Pt(5, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := parseTransform(tt.attr)
			if err != nil {
				t.Fatalf("parseTransform(%q) error: %v", tt.attr, err)
			}
			got := m.TransformPoint(tt.in)
			if !pointsClose(got, tt.want) {
				t.Errorf("%q maps %v to %v, want %v", tt.attr, tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTransformErrors(t *testing.T) {
	tests := []struct {
		name string
		attr string
	}{
		{"missing paren", "translate 2 3"},
		{"bad number", "translate(x)"},
		{"wrong arg count", "scale(1,2,3)"},
		{"matrix short", "matrix(1 2 3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseTransform(tt.attr); err == nil {
				t.Errorf("parseTransform(%q) succeeded, want error", tt.attr)
			}
		})
	}
}

func TestParseTransformUnknownOp(t *testing.T) {
	_, err := parseTransform("perspective(5)")
	var ufe *UnsupportedFeatureError
	if !errors.As(err, &ufe) {
		t.Fatalf("got %v, want UnsupportedFeatureError", err)
	}
}
