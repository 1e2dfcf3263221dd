package svg

import (
	"fmt"
	"io"
	"os"

	"iconc"
)

// Resolved is the flattened geometry of one icon source: the document's
// nominal size and its fill shapes in painter's order.
type Resolved struct {
	Size   float64
	Shapes []iconc.Shape
}

// Resolve parses one icon source document and flattens it. Group
// transforms are composed parent-first, so a point's final position is
// Troot * Tgroup * point; group opacities multiply down the tree.
func Resolve(r io.Reader) (*Resolved, error) {
	doc, err := parse(r)
	if err != nil {
		return nil, err
	}
	res := &Resolved{Size: doc.size}
	if err := flatten(doc.root, iconc.Identity(), 1, &res.Shapes); err != nil {
		return nil, err
	}
	return res, nil
}

// ResolveFile resolves the document at path, tagging any error with the
// offending file.
func ResolveFile(path string) (*Resolved, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	defer f.Close()

	res, err := Resolve(f)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return res, nil
}

// flatten walks the scene tree depth-first. Inherited state is passed by
// value so sibling branches cannot contaminate each other.
func flatten(n node, m iconc.Matrix, opacity float64, out *[]iconc.Shape) error {
	switch t := n.(type) {
	case *group:
		gm := m
		if !t.transform.IsIdentity() {
			gm = m.Multiply(t.transform)
		}
		op := opacity * t.opacity
		for _, child := range t.children {
			if err := flatten(child, gm, op, out); err != nil {
				return err
			}
		}

	case *pathLeaf:
		if !t.visible || !t.filled {
			return nil
		}
		flat := t.path
		if !m.IsIdentity() {
			flat = flat.Transform(m)
		}
		*out = append(*out, iconc.PathShape(flat.Elements(), opacity*t.opacity))

	case *circleLeaf:
		if !t.visible || !t.filled {
			return nil
		}
		if !m.IsUniformScale() {
			// A sheared or anisotropically scaled circle is an ellipse,
			// which the circle primitive cannot carry.
			return &UnsupportedFeatureError{Feature: "non-uniform transform over <circle>"}
		}
		c := iconc.Circle{
			Center: m.TransformPoint(t.center),
			Radius: t.radius * m.ScaleFactor(),
		}
		*out = append(*out, iconc.CircleShape(c, opacity*t.opacity))

	default:
		return fmt.Errorf("svg: internal: unknown scene node %T", n)
	}
	return nil
}
