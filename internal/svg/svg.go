// Package svg parses one icon source document and flattens its scene
// graph into fill geometry.
//
// Only the vocabulary that icon sets actually use is supported: groups
// with optional transform and opacity, filled paths, and circles.
// Everything else is rejected loudly rather than approximated, because a
// silently dropped clip or gradient produces icons that render wrong.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"iconc"
)

// UnsupportedFeatureError reports a scene-graph feature outside the
// supported subset (clip paths, masks, filters, gradients, strokes, ...).
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return "svg: unsupported feature: " + e.Feature
}

// UnsupportedNodeError reports an element kind the resolver does not
// understand.
type UnsupportedNodeError struct {
	Node string
}

func (e *UnsupportedNodeError) Error() string {
	return "svg: unsupported node: <" + e.Node + ">"
}

// node is a parsed scene-graph node: a group, a path leaf, or a circle
// leaf.
type node interface {
	isNode()
}

// group carries inherited state for its children. Transform is identity
// and opacity 1 when the source declares none.
type group struct {
	transform iconc.Matrix
	opacity   float64
	children  []node
}

func (*group) isNode() {}

// pathLeaf is a filled path outline in document coordinates.
type pathLeaf struct {
	path    *iconc.Path
	visible bool
	filled  bool
	opacity float64
}

func (*pathLeaf) isNode() {}

// circleLeaf is a filled circle in document coordinates.
type circleLeaf struct {
	center  iconc.Point
	radius  float64
	visible bool
	filled  bool
	opacity float64
}

func (*circleLeaf) isNode() {}

// document is one parsed icon source.
type document struct {
	size float64
	root *group
}

// groupForbidden lists attributes whose presence on a group would change
// rendering in ways the flattened output cannot express.
var groupForbidden = []string{"id", "clip-path", "mask", "filter"}

// parse decodes an SVG document into a scene tree. The decoder uses the
// charset reader so that sources with non-UTF-8 encoding declarations
// still decode.
func parse(r io.Reader) (*document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	doc := &document{root: &group{transform: iconc.Identity(), opacity: 1}}
	var (
		stack    []*group // open groups, innermost last
		leafOpen string   // name of the open leaf element, if any
		inDefs   bool     // inside a <defs> block
		defsUsed bool     // the defs block had element content
		sawRoot  bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("svg: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if inDefs {
				defsUsed = true
				continue
			}
			if leafOpen != "" {
				return nil, &UnsupportedNodeError{Node: name}
			}
			if !sawRoot && name != "svg" {
				return nil, fmt.Errorf("svg: <%s> outside <svg> root", name)
			}
			if sawRoot && len(stack) == 0 {
				return nil, fmt.Errorf("svg: content after </svg>")
			}
			switch name {
			case "svg":
				if sawRoot {
					return nil, &UnsupportedNodeError{Node: "svg"}
				}
				sawRoot = true
				size, err := parseRootSize(t)
				if err != nil {
					return nil, err
				}
				doc.size = size
				stack = append(stack, doc.root)
			case "g":
				g, err := parseGroup(t)
				if err != nil {
					return nil, err
				}
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, g)
				stack = append(stack, g)
			case "path":
				leaf, err := parsePathLeaf(t)
				if err != nil {
					return nil, err
				}
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, leaf)
				leafOpen = name
			case "circle":
				leaf, err := parseCircleLeaf(t)
				if err != nil {
					return nil, err
				}
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, leaf)
				leafOpen = name
			case "defs":
				inDefs = true
			default:
				return nil, &UnsupportedNodeError{Node: name}
			}

		case xml.EndElement:
			name := t.Name.Local
			switch {
			case name == "defs":
				inDefs = false
			case inDefs:
				// Closing an element inside the skipped defs subtree.
			case leafOpen != "":
				leafOpen = ""
			case name == "g" || name == "svg":
				stack = stack[:len(stack)-1]
			}

		case xml.CharData, xml.Comment, xml.ProcInst, xml.Directive:
			// Icons carry no meaningful text content.
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("svg: no <svg> root element")
	}
	if defsUsed {
		// Definitions are inert for the simple icon sets this targets,
		// but dropping referenced content would be invisible data loss.
		iconc.Logger().Warn("ignoring non-empty <defs> block; output may be incomplete")
	}
	return doc, nil
}

// parseRootSize extracts the document's nominal square size from
// width/height, falling back to the viewBox.
func parseRootSize(se xml.StartElement) (float64, error) {
	var width, height float64
	var viewBox []float64
	for _, attr := range se.Attr {
		var err error
		switch attr.Name.Local {
		case "width":
			width, err = parseLength(attr.Value)
		case "height":
			height, err = parseLength(attr.Value)
		case "viewBox":
			viewBox, err = parseNumberList(attr.Value)
		}
		if err != nil {
			return 0, fmt.Errorf("svg: %s: %w", attr.Name.Local, err)
		}
	}
	if width == 0 && height == 0 && viewBox != nil {
		if len(viewBox) != 4 {
			return 0, fmt.Errorf("svg: viewBox needs 4 numbers, got %d", len(viewBox))
		}
		if viewBox[0] != 0 || viewBox[1] != 0 {
			return 0, &UnsupportedFeatureError{Feature: "viewBox with non-zero origin"}
		}
		width, height = viewBox[2], viewBox[3]
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("svg: missing or non-positive document size")
	}
	if width != height {
		return 0, fmt.Errorf("svg: non-square document %gx%g", width, height)
	}
	return width, nil
}

// parseGroup validates a <g> element and captures its transform and
// opacity.
func parseGroup(se xml.StartElement) (*group, error) {
	g := &group{transform: iconc.Identity(), opacity: 1}
	for _, attr := range se.Attr {
		name := attr.Name.Local
		for _, bad := range groupForbidden {
			if name == bad {
				return nil, &UnsupportedFeatureError{Feature: bad}
			}
		}
		var err error
		switch name {
		case "transform":
			g.transform, err = parseTransform(attr.Value)
		case "opacity":
			g.opacity, err = parseOpacity(attr.Value)
		}
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// leafStyle accumulates the presentation properties a leaf may carry,
// whether as attributes or packed into a style attribute.
type leafStyle struct {
	visible bool
	filled  bool
	opacity float64
}

func newLeafStyle() leafStyle {
	return leafStyle{visible: true, filled: true, opacity: 1}
}

// apply routes one presentation property into the style. Properties that
// would change rendering in ways the output cannot express are rejected.
func (ls *leafStyle) apply(name, value string) error {
	value = strings.TrimSpace(value)
	switch name {
	case "fill":
		if strings.HasPrefix(value, "url(") {
			return &UnsupportedFeatureError{Feature: "paint server fill"}
		}
		ls.filled = value != "none"
	case "stroke":
		if value != "none" && value != "" {
			return &UnsupportedFeatureError{Feature: "stroke"}
		}
	case "display":
		if value == "none" {
			ls.visible = false
		}
	case "visibility":
		if value == "hidden" || value == "collapse" {
			ls.visible = false
		}
	case "opacity", "fill-opacity":
		op, err := parseOpacity(value)
		if err != nil {
			return err
		}
		ls.opacity *= op
	case "fill-rule":
		if value == "evenodd" {
			return &UnsupportedFeatureError{Feature: "fill-rule=evenodd"}
		}
	case "clip-path", "mask", "filter":
		return &UnsupportedFeatureError{Feature: name}
	case "style":
		for _, decl := range strings.Split(value, ";") {
			decl = strings.TrimSpace(decl)
			if decl == "" {
				continue
			}
			k, v, ok := strings.Cut(decl, ":")
			if !ok {
				return fmt.Errorf("svg: malformed style declaration %q", decl)
			}
			if err := ls.apply(strings.TrimSpace(k), v); err != nil {
				return err
			}
		}
	}
	return nil
}

// parsePathLeaf captures a <path> element's geometry and presentation.
func parsePathLeaf(se xml.StartElement) (*pathLeaf, error) {
	style := newLeafStyle()
	var d string
	for _, attr := range se.Attr {
		if attr.Name.Local == "d" {
			d = attr.Value
			continue
		}
		if err := style.apply(attr.Name.Local, attr.Value); err != nil {
			return nil, err
		}
	}
	if d == "" {
		return nil, fmt.Errorf("svg: <path> without d attribute")
	}
	p, err := parsePathData(d)
	if err != nil {
		return nil, err
	}
	return &pathLeaf{
		path:    p,
		visible: style.visible,
		filled:  style.filled,
		opacity: style.opacity,
	}, nil
}

// parseCircleLeaf captures a <circle> element.
func parseCircleLeaf(se xml.StartElement) (*circleLeaf, error) {
	style := newLeafStyle()
	var cx, cy, r float64
	for _, attr := range se.Attr {
		var err error
		switch attr.Name.Local {
		case "cx":
			cx, err = strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
		case "cy":
			cy, err = strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
		case "r":
			r, err = strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
		default:
			err = style.apply(attr.Name.Local, attr.Value)
		}
		if err != nil {
			return nil, fmt.Errorf("svg: <circle> %s: %w", attr.Name.Local, err)
		}
	}
	if r < 0 {
		return nil, fmt.Errorf("svg: <circle> with negative radius %g", r)
	}
	return &circleLeaf{
		center:  iconc.Pt(cx, cy),
		radius:  r,
		visible: style.visible && r > 0,
		filled:  style.filled,
		opacity: style.opacity,
	}, nil
}

// parseLength parses a width/height value, tolerating a px unit suffix.
func parseLength(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(s, 64)
}

// parseOpacity parses an opacity value and clamps it to [0,1].
func parseOpacity(s string) (float64, error) {
	op, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("svg: bad opacity %q", s)
	}
	if op < 0 {
		op = 0
	}
	if op > 1 {
		op = 1
	}
	return op, nil
}
