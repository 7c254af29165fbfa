// apps/go-server/internal/cards/cards.go
//
// Spectrum card catalog.
//
// Responsibilities:
//   - Load the catalog from a file (SPECTRUM_CARDS_FILE) or fall back to the
//     embedded default list in assets/cards.txt.
//   - Assign card ids 1..n in file order.
//   - Serve lookups for the dealer and the HTTP layer.
//
// File format:
//   One LEFT|RIGHT pair per line. Blank lines and lines starting with '#'
//   are skipped. Labels are trimmed and upper-cased.
//
// Initialization is run once (sync.Once); Load builds an independent
// Catalog for tests and tools.

package cards

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/spectrum/apps/go-server/assets"
	"github.com/robalobadob/spectrum/apps/go-server/internal/game"
)

// ErrEmpty is returned when a catalog source yields no cards.
var ErrEmpty = errors.New("cards: catalog is empty")

// Catalog is an ordered, immutable list of spectrum cards.
type Catalog struct {
	cards []game.SpectrumCard
	byID  map[int]game.SpectrumCard
}

var (
	initOnce   sync.Once
	catalog    *Catalog
	initialErr error
)

// Init loads the process-wide catalog exactly once. An empty path selects the
// embedded defaults.
func Init(path string) error {
	initOnce.Do(func() {
		catalog, initialErr = Load(path)
	})
	return initialErr
}

// Default returns the catalog loaded by Init, or nil before Init succeeds.
func Default() *Catalog {
	return catalog
}

// Load reads a catalog from path, or from the embedded list when path is "".
func Load(path string) (*Catalog, error) {
	if path == "" {
		lines, err := assets.CardLines()
		if err != nil {
			return nil, fmt.Errorf("read embedded cards: %w", err)
		}
		return fromLines(lines)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads LEFT|RIGHT lines from r.
func Parse(r io.Reader) (*Catalog, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		lines = append(lines, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return fromLines(lines)
}

func fromLines(lines []string) (*Catalog, error) {
	c := &Catalog{byID: make(map[int]game.SpectrumCard, len(lines))}
	for i, line := range lines {
		left, right, ok := strings.Cut(line, "|")
		left, right = normalize(left), normalize(right)
		if !ok || left == "" || right == "" {
			return nil, fmt.Errorf("cards: line %d: want LEFT|RIGHT, got %q", i+1, line)
		}
		card := game.SpectrumCard{ID: len(c.cards) + 1, Left: left, Right: right}
		c.cards = append(c.cards, card)
		c.byID[card.ID] = card
	}
	if len(c.cards) == 0 {
		return nil, ErrEmpty
	}
	return c, nil
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// All returns a copy of the cards in catalog order.
func (c *Catalog) All() []game.SpectrumCard {
	out := make([]game.SpectrumCard, len(c.cards))
	copy(out, c.cards)
	return out
}

// ByID looks up a card.
func (c *Catalog) ByID(id int) (game.SpectrumCard, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Len returns the number of cards.
func (c *Catalog) Len() int { return len(c.cards) }
