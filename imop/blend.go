// Package imop implements the separable blend modes used for mixing a
// processed layer (e.g. an edge mask) with its backdrop frame.
// The image/draw core package implements only the source-over-destination
// and source operations; this package covers the multiply blend.
package imop

// Blend names a separable blend mode.
type Blend string

// The supported blend modes.
const (
	Normal   Blend = "normal"
	Multiply Blend = "multiply"
)

// apply combines a normalized backdrop channel cb with a source channel cs.
func (b Blend) apply(cb, cs float64) float64 {
	if b == Multiply {
		return cb * cs
	}
	return cs
}
