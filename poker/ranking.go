package poker

import (
	"math/bits"
	"sort"
)

// Category enumerates the hand categories from weakest to strongest.
// RoyalFlush is the ace-high straight flush.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Ranking is the showdown result for one player: the best five cards,
// the category they form, and a comparable strength score.
type Ranking struct {
	Category Category
	Name     string
	BestFive []Card // exactly five cards whenever five or more were available
	Kickers  []Card // cards outside the best five, descending by rank
	Strength int    // higher is stronger; 0 for degraded partial rankings
}

// NewRanking evaluates the best 5-card hand from hole plus board cards.
// With fewer than five cards total it degrades to a direct pair/trips
// detection instead of invoking the solver, so partial mid-hand queries
// never fail.
func NewRanking(hole, board Hand) Ranking {
	all := hole | board
	if all.CountCards() < 5 {
		return partialRanking(all)
	}

	rank, five := EvaluateBest(all)
	return rankingFrom(rank, five, all)
}

// NewOmahaRanking evaluates an Omaha hand: exactly two hole cards and
// exactly three board cards must be used. Degrades like NewRanking when
// there are not yet enough cards to form a legal combination.
func NewOmahaRanking(hole, board Hand) Ranking {
	if hole.CountCards() < 2 || board.CountCards() < 3 {
		return partialRanking(hole | board)
	}

	rank, five := EvaluateOmaha(hole, board)
	return rankingFrom(rank, five, hole|board)
}

func rankingFrom(rank HandRank, five, all Hand) Ranking {
	return Ranking{
		Category: rank.Category(),
		Name:     rank.Category().String(),
		BestFive: cardsDescending(five),
		Kickers:  cardsDescending(all &^ five),
		Strength: rank.Strength(),
	}
}

// partialRanking handles hands with fewer than five cards by counting
// rank multiplicities directly. The result carries no solver score;
// CompareRankings falls back to card-by-card comparison for it.
func partialRanking(h Hand) Ranking {
	var suitMasks [4]uint16
	for suit := uint8(0); suit < 4; suit++ {
		suitMasks[suit] = h.GetSuitMask(suit)
	}
	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]

	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	category := HighCard
	switch {
	case quadsMask != 0:
		category = FourOfAKind
	case tripsMask != 0:
		category = ThreeOfAKind
	case bits.OnesCount16(pairsMask) >= 2:
		category = TwoPair
	case pairsMask != 0:
		category = Pair
	}

	return Ranking{
		Category: category,
		Name:     category.String(),
		BestFive: cardsDescending(h),
		Kickers:  nil,
		Strength: 0,
	}
}

// CompareRankings resolves a showdown between two evaluated hands and
// returns 1 if a wins, -1 if b wins, 0 for a tie. When either side is a
// degraded partial ranking the solver score cannot be trusted, so the
// hands are compared card by card on their highest unique ranks.
func CompareRankings(a, b Ranking) int {
	if len(a.BestFive) < 5 || len(b.BestFive) < 5 {
		return compareHighRanks(a.BestFive, b.BestFive)
	}

	switch {
	case a.Strength > b.Strength:
		return 1
	case a.Strength < b.Strength:
		return -1
	default:
		return 0
	}
}

func compareHighRanks(a, b []Card) int {
	ar := uniqueRanksDescending(a)
	br := uniqueRanksDescending(b)

	n := len(ar)
	if len(br) < n {
		n = len(br)
	}
	for i := 0; i < n; i++ {
		if ar[i] != br[i] {
			if ar[i] > br[i] {
				return 1
			}
			return -1
		}
	}
	if len(ar) != len(br) {
		if len(ar) > len(br) {
			return 1
		}
		return -1
	}
	return 0
}

func uniqueRanksDescending(cards []Card) []uint8 {
	seen := uint16(0)
	ranks := make([]uint8, 0, len(cards))
	for _, c := range cards {
		r := c.Rank()
		if r > 12 || seen&(1<<r) != 0 {
			continue
		}
		seen |= 1 << r
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
	return ranks
}

func cardsDescending(h Hand) []Card {
	cards := h.Cards()
	sort.Slice(cards, func(i, j int) bool { return cards[i].Rank() > cards[j].Rank() })
	return cards
}
