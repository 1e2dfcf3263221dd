package emit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"iconc"
	"iconc/internal/scan"
)

// Source is one resolved icon handed to the emitter.
type Source struct {
	Key    scan.Key
	Size   float64
	Shapes []iconc.Shape
}

// entry pairs a source with its derived identifier.
type entry struct {
	Source
	ident string
}

// Table is the validated, deterministically ordered set of icons ready to
// be serialized.
type Table struct {
	entries []entry
}

// Build derives an identifier for every source, fails on any collision,
// and orders entries by variant, then category, then name. Ordering never
// depends on the order sources were produced in.
func Build(sources []Source) (*Table, error) {
	seen := make(map[string]scan.Key, len(sources))
	entries := make([]entry, 0, len(sources))
	for _, src := range sources {
		id := identifierFor(src.Key)
		if prev, ok := seen[id]; ok {
			return nil, &CollisionError{Ident: id, First: prev, Second: src.Key}
		}
		seen[id] = src.Key
		entries = append(entries, entry{Source: src, ident: id})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return a.Key.Compare(b.Key)
	})
	return &Table{entries: entries}, nil
}

// Len returns the number of icons in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Identifiers returns the derived identifiers in table order.
func (t *Table) Identifiers() []string {
	ids := make([]string, len(t.entries))
	for i, e := range t.entries {
		ids[i] = e.ident
	}
	return ids
}

// Icons returns the compiled icons in table order.
func (t *Table) Icons() []iconc.Icon {
	icons := make([]iconc.Icon, len(t.entries))
	for i, e := range t.entries {
		icons[i] = iconc.Icon{Name: e.ident, Size: e.Size, Shapes: e.Shapes}
	}
	return icons
}

// Render serializes the table as a generated Go source file declaring one
// iconc.Icon variable per icon, grouped under variant and category
// section comments. Given identical inputs the output is byte-identical.
func (t *Table) Render(pkg string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by iconc. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	fmt.Fprintf(&buf, "import \"iconc\"\n")

	variant, category := "", ""
	for _, e := range t.entries {
		if e.Key.Variant != variant {
			variant = e.Key.Variant
			category = ""
			fmt.Fprintf(&buf, "\n// Variant: %s\n", variant)
		}
		if e.Key.Category != category {
			category = e.Key.Category
			fmt.Fprintf(&buf, "\n// Category: %s\n", category)
		}
		buf.WriteByte('\n')
		renderIcon(&buf, e)
	}
	return buf.Bytes()
}

// WriteFile renders the table and writes it atomically: the content is
// fully buffered, written to a temporary file in the target directory,
// and renamed into place. No partial output is observable on failure.
func (t *Table) WriteFile(path, pkg string) error {
	content := t.Render(pkg)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".iconc-*.go.tmp")
	if err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("emit: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("emit: %w", err)
	}
	// CreateTemp defaults to 0600; generated source must stay readable.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("emit: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("emit: %w", err)
	}
	return nil
}

func renderIcon(buf *bytes.Buffer, e entry) {
	fmt.Fprintf(buf, "var %s = iconc.Icon{\n", e.ident)
	fmt.Fprintf(buf, "\tName:   %q,\n", e.ident)
	fmt.Fprintf(buf, "\tSize:   %s,\n", num(e.Size))
	fmt.Fprintf(buf, "\tShapes: []iconc.Shape{\n")
	for _, shape := range e.Shapes {
		renderShape(buf, shape)
	}
	fmt.Fprintf(buf, "\t},\n}\n")
}

func renderShape(buf *bytes.Buffer, s iconc.Shape) {
	if s.Circle != nil {
		fmt.Fprintf(buf, "\t\t{Opacity: %s, Circle: &iconc.Circle{Center: iconc.Pt(%s, %s), Radius: %s}},\n",
			num(s.Opacity), num(s.Circle.Center.X), num(s.Circle.Center.Y), num(s.Circle.Radius))
		return
	}
	fmt.Fprintf(buf, "\t\t{Opacity: %s, Elements: []iconc.PathElement{\n", num(s.Opacity))
	for _, el := range s.Elements {
		switch e := el.(type) {
		case iconc.MoveTo:
			fmt.Fprintf(buf, "\t\t\ticonc.MoveTo{Point: iconc.Pt(%s, %s)},\n",
				num(e.Point.X), num(e.Point.Y))
		case iconc.LineTo:
			fmt.Fprintf(buf, "\t\t\ticonc.LineTo{Point: iconc.Pt(%s, %s)},\n",
				num(e.Point.X), num(e.Point.Y))
		case iconc.QuadTo:
			fmt.Fprintf(buf, "\t\t\ticonc.QuadTo{Control: iconc.Pt(%s, %s), Point: iconc.Pt(%s, %s)},\n",
				num(e.Control.X), num(e.Control.Y), num(e.Point.X), num(e.Point.Y))
		case iconc.CubicTo:
			fmt.Fprintf(buf, "\t\t\ticonc.CubicTo{Control1: iconc.Pt(%s, %s), Control2: iconc.Pt(%s, %s), Point: iconc.Pt(%s, %s)},\n",
				num(e.Control1.X), num(e.Control1.Y), num(e.Control2.X), num(e.Control2.Y),
				num(e.Point.X), num(e.Point.Y))
		case iconc.Close:
			fmt.Fprintf(buf, "\t\t\ticonc.Close{},\n")
		}
	}
	fmt.Fprintf(buf, "\t\t}},\n")
}

// num formats a coordinate with the fixed two-decimal output precision.
// The truncation trades a sub-pixel geometric error for compact,
// diffable, reproducible output.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if s == "-0.00" {
		s = "0.00"
	}
	return s
}
