// Package deck builds shuffled decks of paired cards. A pair shares an
// identifier; the two cards carry ids "<identifier>-1" and "<identifier>-2".
package deck

import (
	"fmt"
	"math/rand"
	"net/url"
	"strconv"
)

// Card is a single face-down card on the board.
type Card struct {
	ID        string
	Content   string
	IsFlipped bool
	IsMatched bool
}

// PairID returns the identifier shared by both cards of a pair.
// The id format is "<identifier>-1" / "<identifier>-2".
func (c Card) PairID() string {
	for i := len(c.ID) - 1; i >= 0; i-- {
		if c.ID[i] == '-' {
			return c.ID[:i]
		}
	}
	return c.ID
}

// ThemeNumbers uses plain numeric identifiers rendered as-is.
const ThemeNumbers = "numbers"

// Word pool for non-numeric themes. Must stay free of duplicates:
// identifier uniqueness depends on it.
var words = []string{
	"apple", "banana", "cherry", "date", "elderberry", "fig", "grape",
	"honeydew", "kiwi", "lemon", "mango", "nectarine", "orange", "papaya",
	"quince", "raspberry", "strawberry", "tangerine", "ugli", "vanilla",
	"watermelon", "xigua", "yellow", "zucchini", "apricot", "blackberry",
	"cantaloupe", "dragonfruit", "feijoa", "gooseberry", "huckleberry",
	"icecream", "jujube", "kumquat", "lychee", "mulberry", "nashi", "olive",
	"peach", "rambutan", "soursop", "tamarind",
}

// Identifiers produces pairs unique identifiers for the given theme.
// Past the word pool it composes "wordA-wordB", which stays unique up to
// len(words)^2 pairs.
func Identifiers(pairs int, theme string) []string {
	ids := make([]string, 0, pairs)
	if theme == ThemeNumbers {
		for i := 1; i <= pairs; i++ {
			ids = append(ids, strconv.Itoa(i))
		}
		return ids
	}
	for i := 0; i < pairs; i++ {
		if i < len(words) {
			ids = append(ids, words[i])
			continue
		}
		first := words[i%len(words)]
		second := words[(i/len(words))%len(words)]
		ids = append(ids, first+"-"+second)
	}
	return ids
}

// Content resolves the display content for an identifier. Numeric theme
// cards show the identifier itself; every other theme maps to a DiceBear
// avatar reference seeded by the identifier.
func Content(theme, identifier string) string {
	if theme == ThemeNumbers {
		return identifier
	}
	return fmt.Sprintf("https://api.dicebear.com/7.x/%s/svg?seed=%s",
		theme, url.QueryEscape(identifier))
}

// Generate builds a full shuffled deck: two cards per identifier, all
// face-down and unmatched, Fisher-Yates shuffled with the provided rng.
func Generate(theme string, pairs int, rng *rand.Rand) []Card {
	ids := Identifiers(pairs, theme)
	cards := make([]Card, 0, 2*len(ids))
	for _, id := range ids {
		content := Content(theme, id)
		cards = append(cards,
			Card{ID: id + "-1", Content: content},
			Card{ID: id + "-2", Content: content},
		)
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return cards
}
