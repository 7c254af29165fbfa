package random

import "testing"

func TestDeriveIsStable(t *testing.T) {
	a := Derive("salt", "friday night")
	b := Derive("salt", "friday night")
	if a != b {
		t.Fatalf("Derive not deterministic: %d vs %d", a, b)
	}
	if Derive("other", "friday night") == a {
		t.Fatal("salt did not change the seed")
	}
	if Derive("salt", "saturday") == a {
		t.Fatal("phrase did not change the seed")
	}
}

func TestSourceWithPhraseRepeats(t *testing.T) {
	r1, err := Source("s", "phrase")
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	r2, _ := Source("s", "phrase")
	for i := 0; i < 20; i++ {
		if a, b := r1.Intn(1000), r2.Intn(1000); a != b {
			t.Fatalf("draw %d: %d != %d", i, a, b)
		}
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	if _, err := Source("s", ""); err != nil {
		t.Fatalf("Source without phrase: %v", err)
	}
}
