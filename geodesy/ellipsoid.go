package geodesy

import "math"

// Reference ellipsoid constants. They are fixed for this converter and are
// not user-configurable.
const (
	// EquatorialRadiusKm is the semi-major axis of the reference ellipsoid (kilometres).
	EquatorialRadiusKm = 6378.1363
	// Eccentricity is the first eccentricity of the reference ellipsoid (unitless).
	Eccentricity = 0.081819221456
)

// Ellipsoid describes the reference ellipsoid a Converter projects onto.
type Ellipsoid struct {
	radiusKm     float64
	eccentricity float64
}

// DefaultEllipsoid returns the WGS84-like ellipsoid built from
// EquatorialRadiusKm and Eccentricity.
func DefaultEllipsoid() Ellipsoid {
	return Ellipsoid{radiusKm: EquatorialRadiusKm, eccentricity: Eccentricity}
}

// EquatorialRadiusKm returns the semi-major axis in kilometres.
func (e Ellipsoid) EquatorialRadiusKm() float64 { return e.radiusKm }

// Eccentricity returns the first eccentricity.
func (e Ellipsoid) Eccentricity() float64 { return e.eccentricity }

// EccentricitySquared returns e².
func (e Ellipsoid) EccentricitySquared() float64 {
	return e.eccentricity * e.eccentricity
}

// Denominator returns sqrt(1 - e²·sin²(lat)). It is strictly positive for
// any real latitude while e < 1.
func (e Ellipsoid) Denominator(latRad float64) float64 {
	sinLat := math.Sin(latRad)
	return math.Sqrt(1.0 - e.EccentricitySquared()*(sinLat*sinLat))
}

// PrimeVerticalRadius returns the east-west radius of curvature C_E at the
// given geodetic latitude, in kilometres.
func (e Ellipsoid) PrimeVerticalRadius(latRad float64) float64 {
	return e.radiusKm / e.Denominator(latRad)
}

// MeridionalTerm returns S_E = R·(1 - e²) / denom, the scale applied to the
// z projection.
func (e Ellipsoid) MeridionalTerm(latRad float64) float64 {
	return e.radiusKm * (1.0 - e.EccentricitySquared()) / e.Denominator(latRad)
}
