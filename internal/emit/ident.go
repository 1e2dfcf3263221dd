// Package emit derives stable identifiers for compiled icons and writes
// the generated Go source table.
package emit

import (
	"fmt"
	"strings"

	"iconc/internal/scan"
)

// Identifier converts an icon's human name into an upper-snake-case
// constant-style identifier: letters upper-cased, digits kept, any other
// run of characters collapsed to a single underscore. A digit-leading
// result gets a leading underscore ("3d_rotation" becomes
// "_3D_ROTATION"), since identifiers must not start with a digit. The
// rule is applied uniformly to every digit-leading name.
func Identifier(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 1)
	pendingSep := false
	for _, r := range name {
		var c byte
		switch {
		case r >= 'a' && r <= 'z':
			c = byte(r) - ('a' - 'A')
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			c = byte(r)
		default:
			if b.Len() > 0 {
				pendingSep = true
			}
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteByte(c)
	}
	id := b.String()
	if id == "" {
		return "_"
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "_" + id
	}
	return id
}

// identifierFor derives the table identifier for a key. Names are only
// unique per variant, so non-default variants carry a variant suffix.
func identifierFor(key scan.Key) string {
	if key.Variant == "normal" {
		return Identifier(key.Name)
	}
	return Identifier(key.Name + "_" + key.Variant)
}

// CollisionError reports two distinct icons normalizing to the same
// identifier. Emitting either one would silently shadow the other, so
// the build fails before any output is written.
type CollisionError struct {
	Ident  string
	First  scan.Key
	Second scan.Key
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("emit: identifier collision: %s and %s both produce %s",
		e.First, e.Second, e.Ident)
}
