// Package iconc provides the geometry model shared by the iconc icon
// compiler and the static icon tables it generates.
//
// # Overview
//
// iconc is an offline asset compiler for SVG icon sets. The pipeline scans
// a source tree of vector icons, flattens each icon's scene graph into a
// list of filled shapes with resolved transforms and opacities, and emits
// a deterministic Go source file containing one [Icon] value per icon.
// Generated tables import this package for their value types and need no
// SVG parsing at runtime.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// All coordinates in an [Icon] are in the icon's local space, already
// transformed; consumers only scale uniformly by target/nominal size.
//
// # Rendering Contract
//
// Shapes are listed in painter's order: later shapes draw over earlier
// ones. Each shape carries an opacity multiplier in [0,1] that consumers
// multiply against their base color's alpha.
package iconc
