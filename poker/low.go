package poker

import (
	"fmt"
	"strings"
)

// LowHand is a qualifying ace-to-five low: five pairwise-distinct ranks
// all eight or better, with the ace counting as 1. Ranks are stored in
// ascending order and the lexicographically smaller tuple is the
// stronger low.
type LowHand [5]uint8

func (l LowHand) String() string {
	names := [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8"}
	parts := make([]string, len(l))
	for i, v := range l {
		if int(v) < len(names) {
			parts[i] = names[v]
		} else {
			parts[i] = fmt.Sprintf("%d", v)
		}
	}
	return strings.Join(parts, "-")
}

// lowValue maps a card rank to its ace-to-five value (ace=1 .. eight=8),
// or 0 when the rank cannot be part of a qualifying low.
func lowValue(rank uint8) uint8 {
	switch {
	case rank == Ace:
		return 1
	case rank <= Eight:
		return rank + 2
	default:
		return 0
	}
}

// EvaluateAceToFiveLow finds the best qualifying low selecting any five
// cards from the hand. Returns false when no five distinct ranks eight
// or better exist.
func EvaluateAceToFiveLow(h Hand) (LowHand, bool) {
	mask := h.GetRankMask()

	var low LowHand
	n := 0
	// Ace first, then deuce through eight, so values come out ascending.
	for _, rank := range [...]uint8{Ace, Two, Three, Four, Five, Six, Seven, Eight} {
		if mask&(1<<rank) != 0 {
			if n < 5 {
				low[n] = lowValue(rank)
			}
			n++
		}
	}
	if n < 5 {
		return LowHand{}, false
	}
	return low, true
}

// EvaluateOmahaLow finds the best qualifying low using exactly two hole
// cards and exactly three board cards.
func EvaluateOmahaLow(hole, board Hand) (LowHand, bool) {
	holeCards := hole.Cards()
	boardCards := board.Cards()

	var best LowHand
	found := false

	for i := 0; i < len(holeCards); i++ {
		for j := i + 1; j < len(holeCards); j++ {
			for a := 0; a < len(boardCards); a++ {
				for b := a + 1; b < len(boardCards); b++ {
					for c := b + 1; c < len(boardCards); c++ {
						low, ok := qualifyFive([5]Card{
							holeCards[i], holeCards[j],
							boardCards[a], boardCards[b], boardCards[c],
						})
						if !ok {
							continue
						}
						if !found || CompareLows(low, best) > 0 {
							best = low
							found = true
						}
					}
				}
			}
		}
	}

	return best, found
}

// qualifyFive checks a concrete 5-card selection: all ranks must map to
// distinct low values eight or better.
func qualifyFive(cards [5]Card) (LowHand, bool) {
	var low LowHand
	seen := uint16(0)
	for i, c := range cards {
		v := lowValue(c.Rank())
		if v == 0 || seen&(1<<v) != 0 {
			return LowHand{}, false
		}
		seen |= 1 << v
		low[i] = v
	}

	// Insertion sort ascending; five elements at most.
	for i := 1; i < len(low); i++ {
		v := low[i]
		j := i - 1
		for j >= 0 && low[j] > v {
			low[j+1] = low[j]
			j--
		}
		low[j+1] = v
	}
	return low, true
}

// CompareLows compares two qualifying lows and returns 1 if a is the
// stronger (smaller) low, -1 if b is, 0 for a tie.
func CompareLows(a, b LowHand) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}
