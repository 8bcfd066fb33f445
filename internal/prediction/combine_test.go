package prediction

import "testing"

func TestCombineWeightedSum(t *testing.T) {
	// strength 0.62, match 0.50 -> 0.4*0.62 + 0.6*0.50 = 0.548
	if got := ToScale(Combine(0.62, 0.50)); got != 55 {
		t.Fatalf("expected probability 55, got %d", got)
	}
	// strength 0.66, match 0.75 -> 0.714
	if got := ToScale(Combine(0.66, 0.75)); got != 71 {
		t.Fatalf("expected probability 71, got %d", got)
	}
}

func TestCombineClampsFloor(t *testing.T) {
	if got := Combine(0, 0); got != probabilityFloor {
		t.Fatalf("expected floor %f, got %f", probabilityFloor, got)
	}
	if got := ToScale(Combine(0, 0)); got != 5 {
		t.Fatalf("expected public probability 5, got %d", got)
	}
}

func TestCombineClampsCeil(t *testing.T) {
	if got := Combine(1, 1); got != probabilityCeil {
		t.Fatalf("expected ceil %f, got %f", probabilityCeil, got)
	}
	if got := ToScale(Combine(1, 1)); got != 95 {
		t.Fatalf("expected public probability 95, got %d", got)
	}
}

func TestCombineMonotonicInBothInputs(t *testing.T) {
	base := Combine(0.5, 0.5)
	if Combine(0.6, 0.5) < base {
		t.Fatal("raising strength must not lower the probability")
	}
	if Combine(0.5, 0.6) < base {
		t.Fatal("raising match score must not lower the probability")
	}
}

func TestToScale(t *testing.T) {
	cases := map[float64]int{0: 0, 0.05: 5, 0.548: 55, 0.95: 95, 1: 100, 0.005: 1}
	for in, want := range cases {
		if got := ToScale(in); got != want {
			t.Fatalf("ToScale(%f): got %d, want %d", in, got, want)
		}
	}
}
