package biometric

import (
	"math"
	"testing"
)

func TestSimilarityIdenticalVectors(t *testing.T) {
	descriptor := []float64{0.12, -0.5, 0.33, 0.9}
	got := Similarity(descriptor, descriptor)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected identical descriptors to score 1.0, got %f", got)
	}
}

func TestSimilarityOppositeVectors(t *testing.T) {
	a := []float64{1, 0, 0}
	b := []float64{-1, 0, 0}
	got := Similarity(a, b)
	if math.Abs(got) > 1e-9 {
		t.Errorf("expected opposite descriptors to score 0.0, got %f", got)
	}
}

func TestSimilarityOrthogonalVectors(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}
	got := Similarity(a, b)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected orthogonal descriptors to score 0.5, got %f", got)
	}
}

func TestSimilarityScaleInvariant(t *testing.T) {
	a := []float64{0.2, 0.4, -0.1}
	b := []float64{0.4, 0.8, -0.2}
	got := Similarity(a, b)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected scaled copy to score 1.0, got %f", got)
	}
}

func TestSimilarityPanics(t *testing.T) {
	cases := []struct {
		name string
		a    []float64
		b    []float64
	}{
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}},
		{"empty descriptors", []float64{}, []float64{}},
		{"zero magnitude", []float64{0, 0}, []float64{1, 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %s", c.name)
				}
			}()
			Similarity(c.a, c.b)
		})
	}
}
