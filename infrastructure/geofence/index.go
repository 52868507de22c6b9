package geofence

import "math"

const earthRadiusMeters = 6371000

type GeoPoint struct {
	Latitude       float64 `bson:"latitude" json:"latitude" validate:"min=-90,max=90"`
	Longitude      float64 `bson:"longitude" json:"longitude" validate:"min=-180,max=180"`
	AccuracyMeters float64 `bson:"accuracyMeters" json:"accuracyMeters" validate:"min=0"`
}

// Location is a circular allowed area around a site's coordinates.
// RadiusMeters must be positive.
type Location struct {
	Center       GeoPoint `bson:"center" json:"center"`
	RadiusMeters float64  `bson:"radiusMeters" json:"radiusMeters" validate:"gt=0"`
}

type Config struct {
	// DefaultRadiusMeters applies when a site has no radius configured.
	DefaultRadiusMeters float64 `koanf:"default_radius_meters"`

	// AccuracyGraceMeters is the device-reported GPS accuracy below which
	// the reading is trusted as-is. Above it, the reported accuracy is
	// subtracted from the allowed radius, so a poor fix shrinks the
	// acceptance circle rather than widening it.
	AccuracyGraceMeters float64 `koanf:"accuracy_grace_meters"`
}

func DefaultConfig() Config {
	return Config{
		DefaultRadiusMeters: 100,
		AccuracyGraceMeters: 10,
	}
}

// Distance returns the great-circle (haversine) distance between two points
// in meters.
func Distance(a GeoPoint, b GeoPoint) float64 {
	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	deltaLat := (b.Latitude - a.Latitude) * math.Pi / 180
	deltaLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(latA)*math.Cos(latB)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

// IsWithin reports whether point falls inside the location's geofence.
// When the device-reported accuracy exceeds cfg.AccuracyGraceMeters the
// effective radius is reduced by that accuracy, clamped at zero, so the
// worst possible true position is still inside the declared circle.
func IsWithin(point GeoPoint, location Location, cfg Config) bool {
	radius := location.RadiusMeters
	if radius <= 0 {
		radius = cfg.DefaultRadiusMeters
	}

	if point.AccuracyMeters > cfg.AccuracyGraceMeters {
		radius = math.Max(0, radius-point.AccuracyMeters)
	}

	return Distance(point, location.Center) <= radius
}
