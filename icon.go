package iconc

// Circle is a filled circle primitive. Circles are kept exact rather than
// flattened to Bezier approximations.
type Circle struct {
	Center Point
	Radius float64
}

// Shape is one flattened fill: either a path outline or a circle, with all
// ancestor transforms already applied. Exactly one of Elements and Circle
// is set.
//
// Opacity is the product of every group opacity above the shape in the
// source document, in [0,1]. Consumers multiply it against the alpha of
// whatever color they fill with.
type Shape struct {
	Elements []PathElement
	Circle   *Circle
	Opacity  float64
}

// PathShape wraps path elements in a Shape with the given opacity.
func PathShape(els []PathElement, opacity float64) Shape {
	return Shape{Elements: els, Opacity: opacity}
}

// CircleShape wraps a circle in a Shape with the given opacity.
func CircleShape(c Circle, opacity float64) Shape {
	return Shape{Circle: &c, Opacity: opacity}
}

// Icon is one compiled icon: a stable identifier, the nominal size of the
// source document, and the flattened shapes in painter's order.
//
// To draw at a different size, scale every coordinate and radius by
// target/Size; Shapes never require any further transform lookup.
type Icon struct {
	Name   string
	Size   float64
	Shapes []Shape
}
