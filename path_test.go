package iconc

import "testing"

func TestPathBuild(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.CubicTo(10, 5, 5, 10, 0, 10)
	p.Close()

	els := p.Elements()
	if len(els) != 4 {
		t.Fatalf("got %d elements, want 4", len(els))
	}
	if _, ok := els[0].(MoveTo); !ok {
		t.Errorf("element 0 is %T, want MoveTo", els[0])
	}
	if _, ok := els[1].(LineTo); !ok {
		t.Errorf("element 1 is %T, want LineTo", els[1])
	}
	if _, ok := els[2].(CubicTo); !ok {
		t.Errorf("element 2 is %T, want CubicTo", els[2])
	}
	if _, ok := els[3].(Close); !ok {
		t.Errorf("element 3 is %T, want Close", els[3])
	}

	if got := p.CurrentPoint(); !pointsClose(got, Pt(0, 0)) {
		t.Errorf("CurrentPoint() after Close = %v, want start (0,0)", got)
	}
}

func TestPathTransformPreservesKindsAndOrder(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 0)
	p.QuadraticTo(2, 2, 3, 0)
	p.LineTo(4, 4)
	p.Close()

	flat := p.Transform(Translate(10, 0))

	els := flat.Elements()
	if len(els) != p.Len() {
		t.Fatalf("Transform changed element count: got %d, want %d", len(els), p.Len())
	}
	move, ok := els[0].(MoveTo)
	if !ok {
		t.Fatalf("element 0 is %T, want MoveTo", els[0])
	}
	if !pointsClose(move.Point, Pt(11, 0)) {
		t.Errorf("MoveTo point = %v, want (11,0)", move.Point)
	}
	quad, ok := els[1].(QuadTo)
	if !ok {
		t.Fatalf("element 1 is %T, want QuadTo", els[1])
	}
	if !pointsClose(quad.Control, Pt(12, 2)) || !pointsClose(quad.Point, Pt(13, 0)) {
		t.Errorf("QuadTo = %+v, want control (12,2) point (13,0)", quad)
	}

	// The receiver must be unchanged.
	if got := p.Elements()[0].(MoveTo).Point; !pointsClose(got, Pt(1, 0)) {
		t.Errorf("Transform mutated the receiver: MoveTo point = %v", got)
	}
}
