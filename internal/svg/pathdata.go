package svg

import (
	"fmt"
	"strconv"
	"unicode"

	"iconc"
)

// pathScanner tokenizes an SVG path data string into command letters and
// numbers. SVG allows terse separators ("M10-5.5.5" is three numbers), so
// numbers are scanned by hand rather than split on delimiters.
type pathScanner struct {
	data string
	pos  int
}

func (s *pathScanner) skipSeparators() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *pathScanner) done() bool {
	s.skipSeparators()
	return s.pos >= len(s.data)
}

// peekCommand reports whether the next token is a command letter.
func (s *pathScanner) peekCommand() (byte, bool) {
	s.skipSeparators()
	if s.pos >= len(s.data) {
		return 0, false
	}
	c := s.data[s.pos]
	if unicode.IsLetter(rune(c)) {
		return c, true
	}
	return 0, false
}

func (s *pathScanner) nextCommand() (byte, error) {
	c, ok := s.peekCommand()
	if !ok {
		return 0, fmt.Errorf("svg: path data: expected command at offset %d", s.pos)
	}
	s.pos++
	return c, nil
}

// number scans one float: optional sign, digits, at most one dot, and an
// optional exponent. It stops at the second dot so "1.5.5" reads as 1.5
// followed by .5, per the SVG grammar.
func (s *pathScanner) number() (float64, error) {
	s.skipSeparators()
	start := s.pos
	if s.pos < len(s.data) && (s.data[s.pos] == '-' || s.data[s.pos] == '+') {
		s.pos++
	}
	digits := 0
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
		digits++
	}
	if s.pos < len(s.data) && s.data[s.pos] == '.' {
		s.pos++
		for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.pos++
			digits++
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("svg: path data: expected number at offset %d", start)
	}
	if s.pos < len(s.data) && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		s.pos++
		if s.pos < len(s.data) && (s.data[s.pos] == '-' || s.data[s.pos] == '+') {
			s.pos++
		}
		expDigits := 0
		for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.pos++
			expDigits++
		}
		if expDigits == 0 {
			return 0, fmt.Errorf("svg: path data: malformed exponent at offset %d", start)
		}
	}
	f, err := strconv.ParseFloat(s.data[start:s.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("svg: path data: bad number %q", s.data[start:s.pos])
	}
	return f, nil
}

// hasMoreArgs reports whether another argument group follows for the
// current command (a number rather than a command letter or the end).
func (s *pathScanner) hasMoreArgs() bool {
	if s.done() {
		return false
	}
	_, isCmd := s.peekCommand()
	return !isCmd
}

// parsePathData converts an SVG path d attribute into a Path. Supported
// commands are moveto, lineto (including horizontal/vertical), quadratic
// and cubic curves with their smooth shorthands, and closepath, in both
// absolute and relative forms. Elliptical arcs are outside the supported
// subset.
func parsePathData(d string) (*iconc.Path, error) {
	s := &pathScanner{data: d}
	p := iconc.NewPath()

	// prevCtrl is the reflection anchor for the smooth shorthands; valid
	// only directly after the matching curve kind.
	var prevCubicCtrl, prevQuadCtrl iconc.Point
	var lastCmd byte

	for !s.done() {
		cmd, err := s.nextCommand()
		if err != nil {
			return nil, err
		}
		rel := cmd >= 'a' && cmd <= 'z'
		op := cmd
		if rel {
			op -= 'a' - 'A'
		}

		switch op {
		case 'M':
			first := true
			for first || s.hasMoreArgs() {
				pt, err := s.point()
				if err != nil {
					return nil, err
				}
				if rel {
					pt = pt.Add(p.CurrentPoint())
				}
				if first {
					p.MoveTo(pt.X, pt.Y)
				} else {
					// Extra coordinate pairs after a moveto are
					// implicit linetos.
					p.LineTo(pt.X, pt.Y)
				}
				first = false
			}

		case 'L':
			for first := true; first || s.hasMoreArgs(); first = false {
				pt, err := s.point()
				if err != nil {
					return nil, err
				}
				if rel {
					pt = pt.Add(p.CurrentPoint())
				}
				p.LineTo(pt.X, pt.Y)
			}

		case 'H':
			for first := true; first || s.hasMoreArgs(); first = false {
				x, err := s.number()
				if err != nil {
					return nil, err
				}
				cur := p.CurrentPoint()
				if rel {
					x += cur.X
				}
				p.LineTo(x, cur.Y)
			}

		case 'V':
			for first := true; first || s.hasMoreArgs(); first = false {
				y, err := s.number()
				if err != nil {
					return nil, err
				}
				cur := p.CurrentPoint()
				if rel {
					y += cur.Y
				}
				p.LineTo(cur.X, y)
			}

		case 'C':
			for first := true; first || s.hasMoreArgs(); first = false {
				c1, err := s.point()
				if err != nil {
					return nil, err
				}
				c2, err := s.point()
				if err != nil {
					return nil, err
				}
				end, err := s.point()
				if err != nil {
					return nil, err
				}
				if rel {
					cur := p.CurrentPoint()
					c1 = c1.Add(cur)
					c2 = c2.Add(cur)
					end = end.Add(cur)
				}
				p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
				prevCubicCtrl = c2
				lastCmd = 'C'
			}
			continue

		case 'S':
			for first := true; first || s.hasMoreArgs(); first = false {
				c2, err := s.point()
				if err != nil {
					return nil, err
				}
				end, err := s.point()
				if err != nil {
					return nil, err
				}
				cur := p.CurrentPoint()
				if rel {
					c2 = c2.Add(cur)
					end = end.Add(cur)
				}
				c1 := cur
				if lastCmd == 'C' {
					c1 = cur.Mul(2).Sub(prevCubicCtrl)
				}
				p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
				prevCubicCtrl = c2
				lastCmd = 'C'
			}
			continue

		case 'Q':
			for first := true; first || s.hasMoreArgs(); first = false {
				ctrl, err := s.point()
				if err != nil {
					return nil, err
				}
				end, err := s.point()
				if err != nil {
					return nil, err
				}
				if rel {
					cur := p.CurrentPoint()
					ctrl = ctrl.Add(cur)
					end = end.Add(cur)
				}
				p.QuadraticTo(ctrl.X, ctrl.Y, end.X, end.Y)
				prevQuadCtrl = ctrl
				lastCmd = 'Q'
			}
			continue

		case 'T':
			for first := true; first || s.hasMoreArgs(); first = false {
				end, err := s.point()
				if err != nil {
					return nil, err
				}
				cur := p.CurrentPoint()
				if rel {
					end = end.Add(cur)
				}
				ctrl := cur
				if lastCmd == 'Q' {
					ctrl = cur.Mul(2).Sub(prevQuadCtrl)
				}
				p.QuadraticTo(ctrl.X, ctrl.Y, end.X, end.Y)
				prevQuadCtrl = ctrl
				lastCmd = 'Q'
			}
			continue

		case 'Z':
			p.Close()

		case 'A':
			return nil, &UnsupportedFeatureError{Feature: "elliptical arc path command"}

		default:
			return nil, fmt.Errorf("svg: path data: unknown command %q", string(cmd))
		}
		lastCmd = op
	}

	return p, nil
}

func (s *pathScanner) point() (iconc.Point, error) {
	x, err := s.number()
	if err != nil {
		return iconc.Point{}, err
	}
	y, err := s.number()
	if err != nil {
		return iconc.Point{}, err
	}
	return iconc.Pt(x, y), nil
}
