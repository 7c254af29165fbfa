package cards

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() < 3 {
		t.Fatalf("embedded catalog has %d cards, want at least 3", c.Len())
	}
	first, ok := c.ByID(1)
	if !ok || first.Left != "COLD" || first.Right != "HOT" {
		t.Fatalf("card 1 = %+v, %v; want COLD|HOT", first, ok)
	}
	for i, card := range c.All() {
		if card.ID != i+1 {
			t.Fatalf("card %d has id %d", i, card.ID)
		}
	}
}

func TestParse(t *testing.T) {
	src := `
# comment
 dark | light

sour|sweet
`
	c, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	all := c.All()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].Left != "DARK" || all[0].Right != "LIGHT" || all[1].ID != 2 {
		t.Fatalf("cards = %+v", all)
	}
	if _, ok := c.ByID(3); ok {
		t.Fatal("ByID(3) found a card")
	}
}

func TestParseRejectsMalformedLine(t *testing.T) {
	if _, err := Parse(strings.NewReader("ok|fine\nmissing-separator\n")); err == nil {
		t.Fatal("expected error for line without separator")
	}
	if _, err := Parse(strings.NewReader("left|\n")); err == nil {
		t.Fatal("expected error for empty right label")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(strings.NewReader("# nothing\n\n")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.txt")
	if err := os.WriteFile(path, []byte("north|south\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	c, _ := Parse(strings.NewReader("a|b\n"))
	all := c.All()
	all[0].Left = "CHANGED"
	if got, _ := c.ByID(1); got.Left != "A" {
		t.Fatalf("catalog mutated through All: %+v", got)
	}
}
