package game

import (
	"errors"
	"testing"
)

func mustScorer(t *testing.T, wrap bool) Scorer {
	t.Helper()
	s, err := NewScorer(DefaultZones(), wrap)
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	return s
}

func TestScoreZoneBoundaries(t *testing.T) {
	s := mustScorer(t, false)
	cases := []struct {
		target, guess float64
		want          Outcome
	}{
		{50, 50, Outcome{4, "BULLSEYE!", "#FFD700"}},
		{50, 52, Outcome{4, "BULLSEYE!", "#FFD700"}},
		{50, 52.01, Outcome{3, "CLOSE!", "#32CD32"}},
		{50, 44, Outcome{3, "CLOSE!", "#32CD32"}},
		{50, 56, Outcome{3, "CLOSE!", "#32CD32"}},
		{50, 43.5, Outcome{2, "GOOD!", "#FFA500"}},
		{50, 40, Outcome{2, "GOOD!", "#FFA500"}},
		{50, 60, Outcome{2, "GOOD!", "#FFA500"}},
		{50, 39, Outcome{0, "MISS!", "#FF6B6B"}},
		{50, 60.5, Outcome{0, "MISS!", "#FF6B6B"}},
	}
	for _, c := range cases {
		if got := s.Score(c.target, c.guess); got != c.want {
			t.Fatalf("Score(%v, %v) = %+v, want %+v", c.target, c.guess, got, c.want)
		}
	}
}

func TestScoreSymmetricAndMonotonic(t *testing.T) {
	s := mustScorer(t, false)
	for target := 20.0; target <= 80; target += 5 {
		prev := s.Points(target, target)
		for d := 0.0; d <= 20; d += 0.5 {
			lo, hi := s.Points(target, target-d), s.Points(target, target+d)
			if lo != hi {
				t.Fatalf("target %v distance %v: below=%d above=%d", target, d, lo, hi)
			}
			if hi > prev {
				t.Fatalf("target %v: points rose from %d to %d at distance %v", target, prev, hi, d)
			}
			prev = hi
		}
	}
}

func TestScoreWraparound(t *testing.T) {
	plain := mustScorer(t, false)
	wrap := mustScorer(t, true)

	if got := plain.Points(2, 99); got != 0 {
		t.Fatalf("plain Points(2, 99) = %d, want 0", got)
	}
	// 101 - 97 = 4 → close.
	if got := wrap.Points(2, 99); got != 3 {
		t.Fatalf("wrap Points(2, 99) = %d, want 3", got)
	}
	if got := wrap.Points(50, 50); got != 4 {
		t.Fatalf("wrap Points(50, 50) = %d, want 4", got)
	}
}

func TestScoreCustomZones(t *testing.T) {
	s, err := NewScorer(Zones{
		"wide":   {Radius: 30, Points: 1},
		"narrow": {Radius: 5, Points: 5},
	}, false)
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	if got := s.Points(50, 54); got != 5 {
		t.Fatalf("Points(50, 54) = %d, want 5", got)
	}
	if got := s.Points(50, 75); got != 1 {
		t.Fatalf("Points(50, 75) = %d, want 1", got)
	}
	// Point values outside 2..4 still get a label.
	if got := s.Score(50, 50).Label; got != "MISS!" {
		t.Fatalf("label for 5 points = %q, want MISS!", got)
	}
}

func TestNewScorerRejectsEmptyTable(t *testing.T) {
	if _, err := NewScorer(Zones{}, false); !errors.Is(err, ErrNoZones) {
		t.Fatalf("err = %v, want ErrNoZones", err)
	}
}

func TestClampPosition(t *testing.T) {
	cases := map[float64]float64{-5: 0, 0: 0, 42.5: 42.5, 100: 100, 130: 100}
	for in, want := range cases {
		if got := ClampPosition(in); got != want {
			t.Fatalf("ClampPosition(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestZonesOrdered(t *testing.T) {
	got := DefaultZones().Ordered()
	want := []string{"bullseye", "close", "good"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("zone %d = %q, want %q", i, got[i].Name, name)
		}
	}
}
