package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// Jakarta (-6.2, 106.816) to Bandung (-6.9175, 107.6191) ~ 115-120 km
	d := HaversineKm(-6.2, 106.816, -6.9175, 107.6191)
	if d < 100 || d > 140 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineOneDegreeOfLongitudeAtEquator(t *testing.T) {
	d := HaversineKm(0, 0, 0, 1)
	if math.Abs(d-111.19) > 0.5 {
		t.Fatalf("expected ~111.19 km, got %v", d)
	}
}

func TestHaversineSamePoint(t *testing.T) {
	points := [][2]float64{{0, 0}, {51.5074, -0.1278}, {-33.8688, 151.2093}, {90, 0}}
	for _, p := range points {
		if d := HaversineKm(p[0], p[1], p[0], p[1]); d != 0 {
			t.Fatalf("distance from %v to itself = %v, want 0", p, d)
		}
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := HaversineKm(40.7128, -74.0060, 34.0522, -118.2437)
	b := HaversineKm(34.0522, -118.2437, 40.7128, -74.0060)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %v and %v", a, b)
	}
}

func TestLocationKeyRoundsToSixDecimals(t *testing.T) {
	a := LocationKey("Cafe", 1.23456789, 2.0000001)
	b := LocationKey("Cafe", 1.2345679, 2.0)
	if a != b {
		t.Fatalf("expected equal keys, got %q and %q", a, b)
	}
	if a != "Cafe_1.234568_2.000000" {
		t.Fatalf("unexpected key %q", a)
	}
	if LocationKey("cafe", 1.2345679, 2.0) == a {
		t.Fatalf("key must be case-sensitive on name")
	}
}

func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.1, 0, false},
		{0, -180.5, false},
		{math.NaN(), 0, false},
	}
	for _, tt := range tests {
		if got := ValidCoordinates(tt.lat, tt.lon); got != tt.want {
			t.Errorf("ValidCoordinates(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
		}
	}
}
