package geometry

import "fmt"

// Box is an axis-aligned bounding region described by its low and high
// corners. The two corners must have the same dimensionality.
type Box struct {
	Low  []float64 `yaml:"low"`
	High []float64 `yaml:"high"`
}

// Dim returns the dimensionality of the box, or 0 if the corners disagree.
func (b Box) Dim() int {
	if len(b.Low) != len(b.High) {
		return 0
	}
	return len(b.Low)
}

// Contains reports whether p lies inside the box (boundary inclusive).
func (b Box) Contains(p []float64) bool {
	if len(p) != b.Dim() || b.Dim() == 0 {
		return false
	}
	for i := range p {
		if p[i] < b.Low[i] || p[i] > b.High[i] {
			return false
		}
	}
	return true
}

// String formats the box as [low] x [high].
func (b Box) String() string {
	return fmt.Sprintf("%v x %v", b.Low, b.High)
}
