package touch

import "math"

// Point is a 2D surface coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Angle returns the angle of the line from a to b in radians.
func Angle(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// AngleDegrees returns the angle of the line from a to b in degrees.
func AngleDegrees(a, b Point) float64 {
	return Angle(a, b) * 180 / math.Pi
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
	}
}

// Velocity returns the speed of travel from a to b in pixels per
// millisecond. Returns 0 for non-positive durations.
func Velocity(a, b Point, durationMS float64) float64 {
	if durationMS <= 0 {
		return 0
	}
	return Distance(a, b) / durationMS
}
