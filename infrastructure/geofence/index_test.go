package geofence

import (
	"math"
	"testing"
)

func TestDistanceKnownPoints(t *testing.T) {
	// Lagos Marina to the National Theatre, roughly 4.0 km.
	marina := GeoPoint{Latitude: 6.4541, Longitude: 3.3947}
	theatre := GeoPoint{Latitude: 6.4767, Longitude: 3.3672}
	got := Distance(marina, theatre)
	if got < 3500 || got > 4500 {
		t.Errorf("expected roughly 4km, got %fm", got)
	}
}

func TestDistanceSamePoint(t *testing.T) {
	p := GeoPoint{Latitude: 6.5244, Longitude: 3.3792}
	if got := Distance(p, p); got != 0 {
		t.Errorf("expected 0 distance, got %f", got)
	}
}

func TestIsWithin(t *testing.T) {
	center := GeoPoint{Latitude: 6.5244, Longitude: 3.3792}
	site := Location{Center: center, RadiusMeters: 100}
	cfg := DefaultConfig()

	// about 90m north of center
	nearby := GeoPoint{Latitude: center.Latitude + 90.0/111320.0, Longitude: center.Longitude}
	// about 150m north of center
	outside := GeoPoint{Latitude: center.Latitude + 150.0/111320.0, Longitude: center.Longitude}

	cases := []struct {
		name  string
		point GeoPoint
		site  Location
		want  bool
	}{
		{"center is always within", center, site, true},
		{"inside the radius", nearby, site, true},
		{"outside the radius", outside, site, false},
		{"zero radius falls back to default", nearby, Location{Center: center}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsWithin(c.point, c.site, cfg); got != c.want {
				t.Errorf("IsWithin = %v, want %v", got, c.want)
			}
		})
	}
}

func TestIsWithinAccuracyShrinksRadius(t *testing.T) {
	center := GeoPoint{Latitude: 6.5244, Longitude: 3.3792}
	site := Location{Center: center, RadiusMeters: 100}
	cfg := DefaultConfig()

	// 50m from center, inside on a good fix
	point := GeoPoint{Latitude: center.Latitude + 50.0/111320.0, Longitude: center.Longitude}
	if !IsWithin(point, site, cfg) {
		t.Fatal("expected point inside radius with a good fix")
	}

	// a 60m accuracy shrinks the effective radius to 40m
	point.AccuracyMeters = 60
	if IsWithin(point, site, cfg) {
		t.Error("expected poor fix to shrink the acceptance circle")
	}

	// accuracy within grace is trusted as-is
	point.AccuracyMeters = cfg.AccuracyGraceMeters
	if !IsWithin(point, site, cfg) {
		t.Error("expected accuracy within grace to leave the radius untouched")
	}
}

func TestIsWithinRadiusClampedAtZero(t *testing.T) {
	center := GeoPoint{Latitude: 6.5244, Longitude: 3.3792}
	site := Location{Center: center, RadiusMeters: 50}
	// accuracy larger than the radius clamps it to zero, only an exact
	// center fix passes
	at := GeoPoint{Latitude: center.Latitude, Longitude: center.Longitude, AccuracyMeters: 500}
	if !IsWithin(at, site, DefaultConfig()) {
		t.Error("distance 0 should satisfy a zero radius")
	}
	off := GeoPoint{Latitude: center.Latitude + 1.0/111320.0, Longitude: center.Longitude, AccuracyMeters: 500}
	if IsWithin(off, site, DefaultConfig()) {
		t.Error("any offset should fail a zero effective radius")
	}
}

func TestDistanceAntimeridian(t *testing.T) {
	a := GeoPoint{Latitude: 0, Longitude: 179.9995}
	b := GeoPoint{Latitude: 0, Longitude: -179.9995}
	got := Distance(a, b)
	// the two points are about 111m apart across the antimeridian
	if math.Abs(got-111.32) > 20 {
		t.Errorf("expected roughly 111m across the antimeridian, got %f", got)
	}
}
