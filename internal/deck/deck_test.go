package deck

import (
	"math/rand"
	"strings"
	"testing"
)

func TestGenerateDeckShape(t *testing.T) {
	for _, pairs := range []int{10, 20, 30} {
		cards := Generate("avataaars", pairs, rand.New(rand.NewSource(1)))
		if len(cards) != 2*pairs {
			t.Fatalf("Generate(%d pairs) produced %d cards, want %d", pairs, len(cards), 2*pairs)
		}

		byPair := make(map[string]int)
		for _, c := range cards {
			if c.IsFlipped || c.IsMatched {
				t.Errorf("card %s not dealt face-down", c.ID)
			}
			byPair[c.PairID()]++
		}
		if len(byPair) != pairs {
			t.Errorf("deck has %d distinct pairs, want %d", len(byPair), pairs)
		}
		for id, n := range byPair {
			if n != 2 {
				t.Errorf("pair %q has %d cards, want 2", id, n)
			}
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a := Generate("numbers", 10, rand.New(rand.NewSource(42)))
	b := Generate("numbers", 10, rand.New(rand.NewSource(42)))
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same seed produced different decks at index %d: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestPairIDComposedIdentifiers(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"apple-1", "apple"},
		{"apple-2", "apple"},
		{"7-1", "7"},
		{"apple-banana-2", "apple-banana"},
		{"nodash", "nodash"},
	}
	for _, tt := range tests {
		c := Card{ID: tt.id}
		if got := c.PairID(); got != tt.want {
			t.Errorf("PairID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestIdentifiersUniquePastWordPool(t *testing.T) {
	n := len(words) + 20
	ids := Identifiers(n, "avataaars")
	if len(ids) != n {
		t.Fatalf("Identifiers returned %d ids, want %d", len(ids), n)
	}
	seen := make(map[string]bool, n)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate identifier %q", id)
		}
		seen[id] = true
	}
}

func TestWordPoolHasNoDuplicates(t *testing.T) {
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if seen[w] {
			t.Errorf("word pool contains %q twice", w)
		}
		seen[w] = true
	}
}

func TestContent(t *testing.T) {
	if got := Content(ThemeNumbers, "7"); got != "7" {
		t.Errorf("numeric content = %q, want 7", got)
	}

	got := Content("bottts", "apple")
	if !strings.HasPrefix(got, "https://api.dicebear.com/7.x/bottts/svg?seed=") {
		t.Errorf("avatar content = %q, want a DiceBear URL", got)
	}
	if !strings.HasSuffix(got, "seed=apple") {
		t.Errorf("avatar content %q does not carry the seed", got)
	}
}
