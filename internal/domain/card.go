package domain

import (
	"fmt"
	"math/rand"
	"sort"
)

// Suit is one of the four card suits.
type Suit string

const (
	SuitClub    Suit = "club"
	SuitDiamond Suit = "diamond"
	SuitHeart   Suit = "heart"
	SuitSpade   Suit = "spade"
)

// Value is a card face value.
type Value string

// Suits lists every suit in deck order.
var Suits = []Suit{SuitClub, SuitDiamond, SuitHeart, SuitSpade}

// Values lists every face value in deck order.
var Values = []Value{"A", "K", "Q", "J", "10", "9", "8", "7", "6", "5", "4", "3", "2"}

// strengthByValue indexes the game's strength order: 3 is weakest, 2 is the
// universal bomb. Face order is never used for comparisons.
var strengthByValue = func() map[Value]int {
	order := []Value{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}
	m := make(map[Value]int, len(order))
	for i, v := range order {
		m[v] = i
	}
	return m
}()

// Strength returns the index of v in the strength order. Unknown values rank
// below everything.
func Strength(v Value) int {
	s, ok := strengthByValue[v]
	if !ok {
		return -1
	}
	return s
}

// MaxStrength is the strength of the bomb value "2".
var MaxStrength = Strength("2")

// ValidValue reports whether v is part of the deck vocabulary.
func ValidValue(v Value) bool {
	_, ok := strengthByValue[v]
	return ok
}

// Card is a single playing card. A deck holds exactly one of each
// (suit, value) combination.
type Card struct {
	Suit  Suit  `json:"suit"`
	Value Value `json:"value"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %ss", c.Value, c.Suit)
}

// NewDeck returns the ordered 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, v := range Values {
		for _, s := range Suits {
			deck = append(deck, Card{Suit: s, Value: v})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of deck using the provided rng.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SortHand orders a hand by ascending strength, suits kept in deck order
// within a value so deals are stable for display and bot scanning.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		si, sj := Strength(cards[i].Value), Strength(cards[j].Value)
		if si != sj {
			return si < sj
		}
		return suitIndex(cards[i].Suit) < suitIndex(cards[j].Suit)
	})
}

func suitIndex(s Suit) int {
	for i, v := range Suits {
		if v == s {
			return i
		}
	}
	return len(Suits)
}
