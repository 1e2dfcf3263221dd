package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"iconc"
)

// parseTransform parses an SVG transform attribute into a single matrix.
// Operations in the list apply left to right, matching the SVG rendering
// model where transform="translate(2) scale(3)" moves first in the parent
// frame and scales inside it.
func parseTransform(v string) (iconc.Matrix, error) {
	m := iconc.Identity()
	for _, chunk := range strings.Split(v, ")") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		name, argstr, ok := strings.Cut(chunk, "(")
		if !ok {
			return m, fmt.Errorf("svg: malformed transform %q", v)
		}
		args, err := parseNumberList(argstr)
		if err != nil {
			return m, fmt.Errorf("svg: transform %q: %w", chunk, err)
		}
		op, err := transformOp(strings.TrimSpace(name), args)
		if err != nil {
			return m, err
		}
		m = m.Multiply(op)
	}
	return m, nil
}

// transformOp builds the matrix for one transform function.
func transformOp(name string, args []float64) (iconc.Matrix, error) {
	switch strings.ToLower(name) {
	case "translate":
		switch len(args) {
		case 1:
			return iconc.Translate(args[0], 0), nil
		case 2:
			return iconc.Translate(args[0], args[1]), nil
		}
	case "scale":
		switch len(args) {
		case 1:
			return iconc.Scale(args[0], args[0]), nil
		case 2:
			return iconc.Scale(args[0], args[1]), nil
		}
	case "rotate":
		switch len(args) {
		case 1:
			return iconc.Rotate(args[0] * math.Pi / 180), nil
		case 3:
			// Rotation about a point: translate there, rotate, come back.
			return iconc.Translate(args[1], args[2]).
				Multiply(iconc.Rotate(args[0] * math.Pi / 180)).
				Multiply(iconc.Translate(-args[1], -args[2])), nil
		}
	case "skewx":
		if len(args) == 1 {
			return iconc.Shear(math.Tan(args[0]*math.Pi/180), 0), nil
		}
	case "skewy":
		if len(args) == 1 {
			return iconc.Shear(0, math.Tan(args[0]*math.Pi/180)), nil
		}
	case "matrix":
		if len(args) == 6 {
			// SVG matrix(a b c d e f) is column-major.
			return iconc.Matrix{
				A: args[0], B: args[2], C: args[4],
				D: args[1], E: args[3], F: args[5],
			}, nil
		}
	default:
		return iconc.Matrix{}, &UnsupportedFeatureError{Feature: "transform " + name}
	}
	return iconc.Matrix{}, fmt.Errorf("svg: transform %s: wrong argument count %d", name, len(args))
}

// parseNumberList parses whitespace- or comma-separated numbers, the
// grammar shared by transform arguments and the viewBox attribute.
func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	nums := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		nums = append(nums, n)
	}
	return nums, nil
}
