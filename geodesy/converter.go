// Package geodesy converts geodetic positions to Earth-Centered-Earth-Fixed
// coordinates on a fixed reference ellipsoid.
package geodesy

import "math"

// Converter projects geodetic positions onto its ellipsoid. The zero value
// is not usable; construct one with NewConverter.
type Converter struct {
	ellipsoid Ellipsoid
}

// NewConverter returns a Converter bound to DefaultEllipsoid.
func NewConverter() Converter {
	return Converter{ellipsoid: DefaultEllipsoid()}
}

// Ellipsoid returns the ellipsoid the converter projects onto.
func (c Converter) Ellipsoid() Ellipsoid { return c.ellipsoid }

// ToECEF converts p to ECEF kilometres. Non-finite inputs yield non-finite
// outputs; nothing is clamped or rejected.
func (c Converter) ToECEF(p GeodeticPosition) EcefPosition {
	// Multiply before dividing; the order affects the last bit.
	lat := p.LatitudeDeg * math.Pi / 180.0
	lon := p.LongitudeDeg * math.Pi / 180.0

	cE := c.ellipsoid.PrimeVerticalRadius(lat)
	sE := c.ellipsoid.MeridionalTerm(lat)

	cosLat := math.Cos(lat)
	return EcefPosition{
		XKm: (cE + p.HeightKm) * cosLat * math.Cos(lon),
		YKm: (cE + p.HeightKm) * cosLat * math.Sin(lon),
		ZKm: (sE + p.HeightKm) * math.Sin(lat),
	}
}
