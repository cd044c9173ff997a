package poker

import (
	"math/rand"
	"testing"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()

	aceSpades := NewCard(Ace, Spades)
	if aceSpades.Rank() != Ace {
		t.Errorf("Expected rank Ace, got %d", aceSpades.Rank())
	}
	if aceSpades.Suit() != Spades {
		t.Errorf("Expected suit Spades, got %d", aceSpades.Suit())
	}
	if aceSpades.String() != "As" {
		t.Errorf("Expected 'As', got %s", aceSpades.String())
	}

	twoClubs := NewCard(Two, Clubs)
	if twoClubs.String() != "2c" {
		t.Errorf("Expected '2c', got %s", twoClubs.String())
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		wantCard Card
		wantErr  bool
	}{
		{"As", NewCard(Ace, Spades), false},
		{"2h", NewCard(Two, Hearts), false},
		{"Kd", NewCard(King, Diamonds), false},
		{"tc", NewCard(Ten, Clubs), false},
		{"Xx", 0, true},
		{"A", 0, true},
		{"Asd", 0, true},
	}

	for _, tc := range tests {
		card, err := ParseCard(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCard(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCard(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if card != tc.wantCard {
			t.Errorf("ParseCard(%q) = %v, want %v", tc.input, card, tc.wantCard)
		}
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	cards, err := ParseCards("AcKd 7h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[0].String() != "Ac" || cards[1].String() != "Kd" || cards[2].String() != "7h" {
		t.Errorf("unexpected cards: %v", cards)
	}

	if _, err := ParseCards("AcK"); err == nil {
		t.Error("expected error for odd-length string")
	}
}

func TestHandOperations(t *testing.T) {
	t.Parallel()

	h := NewHand(MustParseCards("AsKsQs")...)
	if h.CountCards() != 3 {
		t.Errorf("expected 3 cards, got %d", h.CountCards())
	}
	if !h.HasCard(NewCard(Ace, Spades)) {
		t.Error("hand should contain As")
	}
	if h.HasCard(NewCard(Ace, Hearts)) {
		t.Error("hand should not contain Ah")
	}

	h.AddCard(NewCard(Ace, Hearts))
	if h.CountCards() != 4 {
		t.Errorf("expected 4 cards after add, got %d", h.CountCards())
	}

	// Adding a duplicate is a no-op on a bitset
	h.AddCard(NewCard(Ace, Hearts))
	if h.CountCards() != 4 {
		t.Errorf("expected 4 cards after duplicate add, got %d", h.CountCards())
	}

	cards := h.Cards()
	if len(cards) != 4 {
		t.Errorf("Cards() should unpack 4 cards, got %d", len(cards))
	}
}

func TestSuitAndRankMasks(t *testing.T) {
	t.Parallel()

	h := NewHand(MustParseCards("AsKs2c2d")...)

	spades := h.GetSuitMask(Spades)
	if spades != (1<<Ace)|(1<<King) {
		t.Errorf("unexpected spade mask: %013b", spades)
	}

	ranks := h.GetRankMask()
	if ranks != (1<<Ace)|(1<<King)|(1<<Two) {
		t.Errorf("unexpected rank mask: %013b", ranks)
	}
}

func TestDeckDealsAllCards(t *testing.T) {
	t.Parallel()

	d := NewDeck(rand.New(rand.NewSource(42)))

	seen := Hand(0)
	for i := 0; i < 52; i++ {
		card := d.DealOne()
		if card == 0 {
			t.Fatalf("deck ran out at card %d", i)
		}
		if seen.HasCard(card) {
			t.Fatalf("duplicate card dealt: %s", card)
		}
		seen.AddCard(card)
	}

	if d.DealOne() != 0 {
		t.Error("empty deck should deal the zero card")
	}
	if seen.CountCards() != 52 {
		t.Errorf("expected 52 distinct cards, got %d", seen.CountCards())
	}
}

func TestDeckDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	d1 := NewDeck(rand.New(rand.NewSource(7)))
	d2 := NewDeck(rand.New(rand.NewSource(7)))

	for i := 0; i < 52; i++ {
		if c1, c2 := d1.DealOne(), d2.DealOne(); c1 != c2 {
			t.Fatalf("decks diverged at card %d: %s vs %s", i, c1, c2)
		}
	}
}
