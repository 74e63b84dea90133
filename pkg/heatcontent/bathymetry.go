package heatcontent

import "fmt"

// Bathymetry is the hypsographic curve of the lake: cumulative surface area
// as a function of depth. Depth is non-decreasing from the surface, area is
// non-increasing with depth, and the area at depth 0 is the lake's surface
// area.
type Bathymetry struct {
	depths []float64
	areas  []float64
}

// NewBathymetry validates the (depth, area) pairs and returns the curve.
// The loading layer is expected to have validated its input already, but a
// malformed curve here would produce silently wrong integrals, so the
// contract is re-checked and violations are rejected loudly.
func NewBathymetry(depths, areas []float64) (*Bathymetry, error) {
	if len(depths) != len(areas) {
		return nil, fmt.Errorf("bathymetry: %d depths but %d areas", len(depths), len(areas))
	}
	if len(depths) < 2 {
		return nil, fmt.Errorf("bathymetry: need at least 2 points, got %d", len(depths))
	}
	if depths[0] != 0 {
		return nil, fmt.Errorf("bathymetry: first depth must be 0 (surface), got %g", depths[0])
	}
	for i := 1; i < len(depths); i++ {
		if depths[i] < depths[i-1] {
			return nil, fmt.Errorf("bathymetry: depth decreases at index %d (%g < %g)",
				i, depths[i], depths[i-1])
		}
		if areas[i] > areas[i-1] {
			return nil, fmt.Errorf("bathymetry: area increases with depth at index %d (%g > %g)",
				i, areas[i], areas[i-1])
		}
	}
	if areas[0] <= 0 {
		return nil, fmt.Errorf("bathymetry: surface area must be positive, got %g", areas[0])
	}

	b := &Bathymetry{
		depths: make([]float64, len(depths)),
		areas:  make([]float64, len(areas)),
	}
	copy(b.depths, depths)
	copy(b.areas, areas)
	return b, nil
}

// SurfaceArea returns the area at depth 0 in m², the normalizer for
// area-normalized heat content and the scale factor for residual power.
func (b *Bathymetry) SurfaceArea() float64 {
	return b.areas[0]
}

// MaxDepth returns the deepest point of the curve in m.
func (b *Bathymetry) MaxDepth() float64 {
	return b.depths[len(b.depths)-1]
}

// Depths returns the depth break points of the curve.
func (b *Bathymetry) Depths() []float64 {
	out := make([]float64, len(b.depths))
	copy(out, b.depths)
	return out
}

// Area returns the cumulative area at an arbitrary depth, linearly
// interpolated between the survey break points and clamped to the curve's
// depth range.
func (b *Bathymetry) Area(depth float64) float64 {
	if depth <= b.depths[0] {
		return b.areas[0]
	}
	if depth >= b.MaxDepth() {
		return b.areas[len(b.areas)-1]
	}
	for i := 1; i < len(b.depths); i++ {
		if depth <= b.depths[i] {
			span := b.depths[i] - b.depths[i-1]
			if span == 0 {
				return b.areas[i]
			}
			frac := (depth - b.depths[i-1]) / span
			return b.areas[i-1] + frac*(b.areas[i]-b.areas[i-1])
		}
	}
	return b.areas[len(b.areas)-1]
}
