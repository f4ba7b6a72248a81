package geometry

import "math"

// SignedDistance returns the signed distance (infinity norm) from p to the
// boundary of the box. Negative inside the box, positive outside, zero on
// the boundary. Used for target regions: a point has reached the target
// when its signed distance is non-positive.
func SignedDistance(p []float64, b Box) float64 {
	d := math.Inf(-1)
	for i := range p {
		d = math.Max(d, math.Max(b.Low[i]-p[i], p[i]-b.High[i]))
	}
	return d
}

// ObstacleSignedDistance returns the penetration depth of p into the box.
// Positive inside the obstacle, negative outside. A point violates an
// obstacle region when its value is positive.
func ObstacleSignedDistance(p []float64, b Box) float64 {
	d := math.Inf(1)
	for i := range p {
		d = math.Min(d, math.Min(p[i]-b.Low[i], b.High[i]-p[i]))
	}
	return d
}

// MinSignedDistance returns the smallest signed distance from p to any of
// the boxes. With multiple target regions, reaching any one of them counts.
func MinSignedDistance(p []float64, boxes []Box) float64 {
	d := math.Inf(1)
	for _, b := range boxes {
		d = math.Min(d, SignedDistance(p, b))
	}
	return d
}

// MaxObstacleSignedDistance returns the deepest penetration of p across
// the boxes, i.e. the worst obstacle violation.
func MaxObstacleSignedDistance(p []float64, boxes []Box) float64 {
	d := math.Inf(-1)
	for _, b := range boxes {
		d = math.Max(d, ObstacleSignedDistance(p, b))
	}
	return d
}

// HalfSizeBox builds a box centered at c with the given half-dimensions.
func HalfSizeBox(c, half []float64) Box {
	low := make([]float64, len(c))
	high := make([]float64, len(c))
	for i := range c {
		low[i] = c[i] - half[i]
		high[i] = c[i] + half[i]
	}
	return Box{Low: low, High: high}
}
