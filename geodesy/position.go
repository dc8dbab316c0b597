package geodesy

import "math"

// GeodeticPosition is a point given by geodetic latitude and longitude in
// degrees and height above the ellipsoid in kilometres. Angles are not range
// checked.
type GeodeticPosition struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	HeightKm     float64
}

// EcefPosition is an Earth-Centered-Earth-Fixed vector in kilometres.
type EcefPosition struct {
	XKm, YKm, ZKm float64
}

// Norm returns the distance from the Earth's centre.
func (p EcefPosition) Norm() float64 {
	return math.Sqrt(p.XKm*p.XKm + p.YKm*p.YKm + p.ZKm*p.ZKm)
}

// Sub returns p - other.
func (p EcefPosition) Sub(other EcefPosition) EcefPosition {
	return EcefPosition{XKm: p.XKm - other.XKm, YKm: p.YKm - other.YKm, ZKm: p.ZKm - other.ZKm}
}

// DistanceTo returns the straight-line distance between two points.
func (p EcefPosition) DistanceTo(other EcefPosition) float64 {
	return p.Sub(other).Norm()
}
