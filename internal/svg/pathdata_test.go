package svg

import (
	"errors"
	"math"
	"testing"

	"iconc"
)

const epsilon = 1e-9

func pointsClose(a, b iconc.Point) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

// elementsEqual compares path elements with a coordinate tolerance.
func elementsEqual(t *testing.T, got, want []iconc.PathElement) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d elements, want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		switch w := want[i].(type) {
		case iconc.MoveTo:
			g, ok := got[i].(iconc.MoveTo)
			if !ok || !pointsClose(g.Point, w.Point) {
				t.Errorf("element %d = %#v, want %#v", i, got[i], w)
			}
		case iconc.LineTo:
			g, ok := got[i].(iconc.LineTo)
			if !ok || !pointsClose(g.Point, w.Point) {
				t.Errorf("element %d = %#v, want %#v", i, got[i], w)
			}
		case iconc.QuadTo:
			g, ok := got[i].(iconc.QuadTo)
			if !ok || !pointsClose(g.Control, w.Control) || !pointsClose(g.Point, w.Point) {
				t.Errorf("element %d = %#v, want %#v", i, got[i], w)
			}
		case iconc.CubicTo:
			g, ok := got[i].(iconc.CubicTo)
			if !ok || !pointsClose(g.Control1, w.Control1) ||
				!pointsClose(g.Control2, w.Control2) || !pointsClose(g.Point, w.Point) {
				t.Errorf("element %d = %#v, want %#v", i, got[i], w)
			}
		case iconc.Close:
			if _, ok := got[i].(iconc.Close); !ok {
				t.Errorf("element %d = %#v, want Close", i, got[i])
			}
		}
	}
}

func TestParsePathData(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []iconc.PathElement
	}{
		{
			"absolute move line close",
			"M0 0L10 0Z",
			[]iconc.PathElement{
				iconc.MoveTo{Point: iconc.Pt(0, 0)},
				iconc.LineTo{Point: iconc.Pt(10, 0)},
				iconc.Close{},
			},
		},
		{
			"relative line",
			"M5 5l2 3",
			[]iconc.PathElement{
				iconc.MoveTo{Point: iconc.Pt(5, 5)},
				iconc.LineTo{Point: iconc.Pt(7, 8)},
			},
		},
		{
			"horizontal and vertical",
			"M1 2H5V7h-2v-1",
			[]iconc.PathElement{
				iconc.MoveTo{Point: iconc.Pt(1, 2)},
				iconc.LineTo{Point: iconc.Pt(5, 2)},
				iconc.LineTo{Point: iconc.Pt(5, 7)},
				iconc.LineTo{Point: iconc.Pt(3, 7)},
				iconc.LineTo{Point: iconc.Pt(3, 6)},
			},
		},
		{
			"cubic curve",
			"M0 0C10 5 5 10 0 10",
			[]iconc.PathElement{
				iconc.MoveTo{Point: iconc.Pt(0, 0)},
				iconc.CubicTo{
					Control1: iconc.Pt(10, 5),
					Control2: iconc.Pt(5, 10),
					Point:    iconc.Pt(0, 10),
				},
			},
		},
		{
			"smooth cubic reflects previous control",
			"M0 0C0 2 2 2 4 2S8 4 8 0",
			[]iconc.PathElement{
				iconc.MoveTo{Point: iconc.Pt(0, 0)},
				iconc.CubicTo{
					Control1: iconc.Pt(0, 2),
					Control2: iconc.Pt(2, 2),
					Point:    iconc.Pt(4, 2),
				},
				iconc.CubicTo{
					Control1: iconc.Pt(6, 2), // reflection of (2,2) about (4,2)
					Control2: iconc.Pt(8, 4),
					Point:    iconc.Pt(8, 0),
				},
			},
		},
		{
			"quadratic and smooth quadratic",
			"M0 0Q2 4 4 0T8 0",
			[]iconc.PathElement{
				iconc.MoveTo{Point: iconc.Pt(0, 0)},
				iconc.QuadTo{Control: iconc.Pt(2, 4), Point: iconc.Pt(4, 0)},
				iconc.QuadTo{Control: iconc.Pt(6, -4), Point: iconc.Pt(8, 0)},
			},
		},
		{
			"implicit lineto after moveto",
			"M0 0 5 0 5 5",
			[]iconc.PathElement{
				iconc.MoveTo{Point: iconc.Pt(0, 0)},
				iconc.LineTo{Point: iconc.Pt(5, 0)},
				iconc.LineTo{Point: iconc.Pt(5, 5)},
			},
		},
		{
			"terse separators",
			"M10-5.5.5.5",
			[]iconc.PathElement{
				iconc.MoveTo{Point: iconc.Pt(10, -5.5)},
				iconc.LineTo{Point: iconc.Pt(0.5, 0.5)},
			},
		},
		{
			"relative move after close is relative to subpath start",
			"M10 10l5 0Zl0 5",
			[]iconc.PathElement{
				iconc.MoveTo{Point: iconc.Pt(10, 10)},
				iconc.LineTo{Point: iconc.Pt(15, 10)},
				iconc.Close{},
				iconc.LineTo{Point: iconc.Pt(10, 15)},
			},
		},
		{
			"exponent notation",
			"M1e1 2E0",
			[]iconc.PathElement{
				iconc.MoveTo{Point: iconc.Pt(10, 2)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePathData(tt.d)
			if err != nil {
				t.Fatalf("parsePathData(%q) error: %v", tt.d, err)
			}
			elementsEqual(t, p.Elements(), tt.want)
		})
	}
}

func TestParsePathDataRejectsArcs(t *testing.T) {
	_, err := parsePathData("M0 0A5 5 0 0 1 10 10")
	var ufe *UnsupportedFeatureError
	if !errors.As(err, &ufe) {
		t.Fatalf("got %v, want UnsupportedFeatureError", err)
	}
}

func TestParsePathDataErrors(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"unknown command", "M0 0X5"},
		{"leading number", "10 10"},
		{"dangling coordinate", "M0 0L5"},
		{"malformed exponent", "M1e 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePathData(tt.d); err == nil {
				t.Errorf("parsePathData(%q) succeeded, want error", tt.d)
			}
		})
	}
}
