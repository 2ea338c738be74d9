package tracker

import "math"

const inchToMeter = 0.0254

// Common display diagonals in inches.
const (
	Screen15_6 = 15.6
	Screen24   = 24
	Screen27   = 27
)

// VirtualScreen is the physical display the tracked space is mapped onto.
type VirtualScreen struct {
	SizeInch       float64
	RatioX, RatioY float64
}

// DefaultScreen is a 24 inch 16:9 display.
var DefaultScreen = VirtualScreen{SizeInch: Screen24, RatioX: 16, RatioY: 9}

// Diagonal returns the diagonal in meters.
func (v VirtualScreen) Diagonal() float64 {
	return v.SizeInch * inchToMeter
}

// Width returns the width in meters, or 0 for a degenerate ratio.
func (v VirtualScreen) Width() float64 {
	h := math.Hypot(v.RatioX, v.RatioY)
	if h == 0 {
		return 0
	}
	return v.Diagonal() * v.RatioX / h
}

// Height returns the height in meters, or 0 for a degenerate ratio.
func (v VirtualScreen) Height() float64 {
	h := math.Hypot(v.RatioX, v.RatioY)
	if h == 0 {
		return 0
	}
	return v.Diagonal() * v.RatioY / h
}
