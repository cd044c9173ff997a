package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card represents a single card as a bit position in a uint64.
// Layout: [13 spades][13 hearts][13 diamonds][13 clubs], so a card's
// bit offset is suit*13+rank. The representation makes suit and rank
// masks cheap to extract during evaluation.
type Card uint64

// Hand is a set of cards packed into the same uint64 layout.
type Hand uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const rankMask = 0x1FFF // 13 bits of ranks within one suit lane

// NewCard creates a card from rank and suit.
func NewCard(rank, suit uint8) Card {
	offset := suit*13 + rank
	return Card(1) << offset
}

// bitPosition returns which bit this card occupies (0-51), or 255 for
// the zero Card.
func (c Card) bitPosition() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Rank returns the rank of the card (0-12), or 255 for the zero Card.
func (c Card) Rank() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos % 13
}

// Suit returns the suit of the card (0-3), or 255 for the zero Card.
func (c Card) Suit() uint8 {
	pos := c.bitPosition()
	if pos == 255 {
		return 255
	}
	return pos / 13
}

// String returns the two-character representation (e.g. "As", "Kh").
func (c Card) String() string {
	ranks := "23456789TJQKA"
	suits := "cdhs"

	rank := c.Rank()
	suit := c.Suit()

	if rank > 12 || suit > 3 {
		return "??"
	}

	return string(ranks[rank]) + string(suits[suit])
}

// ParseCard parses a string like "As" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}

	var rank uint8
	switch s[0] {
	case '2':
		rank = Two
	case '3':
		rank = Three
	case '4':
		rank = Four
	case '5':
		rank = Five
	case '6':
		rank = Six
	case '7':
		rank = Seven
	case '8':
		rank = Eight
	case '9':
		rank = Nine
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	case 'A', 'a':
		rank = Ace
	default:
		return 0, fmt.Errorf("invalid rank: %c", s[0])
	}

	var suit uint8
	switch s[1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return 0, fmt.Errorf("invalid suit: %c", s[1])
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses a run of card strings like "AcKd7h" or "Ac Kd 7h"
// into a slice of cards.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid cards string: %q", s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is ParseCards that panics on error, for tests and
// fixed fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// NewHand creates a hand from multiple cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// HasCard checks if the hand contains a specific card.
func (h Hand) HasCard(c Card) bool {
	return (h & Hand(c)) != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// Cards unpacks the hand into individual cards, lowest bit first.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

// GetSuitMask returns the cards of a specific suit as a 13-bit rank mask.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	offset := suit * 13
	return uint16((h >> offset) & rankMask)
}

// GetRankMask returns a bitmask of which ranks are present.
func (h Hand) GetRankMask() uint16 {
	mask := uint16(0)
	for suit := uint8(0); suit < 4; suit++ {
		mask |= h.GetSuitMask(suit)
	}
	return mask
}

// String returns the concatenated card strings in ascending bit order.
func (h Hand) String() string {
	var sb strings.Builder
	for i, c := range h.Cards() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
