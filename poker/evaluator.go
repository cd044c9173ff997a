package poker

import (
	"math/bits"
)

// HandRank represents the strength of a poker hand. Lower values are stronger.
// Every distinct 5-card hand class maps to exactly one of the 7462 ranks.
type HandRank uint16

const (
	straightFlushCount = 10
	fourOfAKindCount   = 13 * 12
	fullHouseCount     = 13 * 12
	flushCount         = 1277
	straightCount      = 10
	threeOfAKindCount  = 13 * 66
	twoPairCount       = 78 * 11
	onePairCount       = 13 * 220
	highCardCount      = 1277
)

const (
	baseStraightFlush = 0
	baseFourOfAKind   = baseStraightFlush + straightFlushCount
	baseFullHouse     = baseFourOfAKind + fourOfAKindCount
	baseFlush         = baseFullHouse + fullHouseCount
	baseStraight      = baseFlush + flushCount
	baseThreeOfAKind  = baseStraight + straightCount
	baseTwoPair       = baseThreeOfAKind + threeOfAKindCount
	baseOnePair       = baseTwoPair + twoPairCount
	baseHighCard      = baseOnePair + onePairCount

	rankCount = baseHighCard + highCardCount // 7462
)

// boundaries mark the exclusive upper bound for each category in ascending strength order.
var categoryBoundaries = [...]HandRank{
	HandRank(baseFourOfAKind),
	HandRank(baseFullHouse),
	HandRank(baseFlush),
	HandRank(baseStraight),
	HandRank(baseThreeOfAKind),
	HandRank(baseTwoPair),
	HandRank(baseOnePair),
	HandRank(baseHighCard),
	HandRank(rankCount),
}

// Category returns the hand category. The ace-high straight flush is
// reported as RoyalFlush.
func (hr HandRank) Category() Category {
	switch {
	case hr == 0:
		return RoyalFlush
	case hr < categoryBoundaries[0]:
		return StraightFlush
	case hr < categoryBoundaries[1]:
		return FourOfAKind
	case hr < categoryBoundaries[2]:
		return FullHouse
	case hr < categoryBoundaries[3]:
		return Flush
	case hr < categoryBoundaries[4]:
		return Straight
	case hr < categoryBoundaries[5]:
		return ThreeOfAKind
	case hr < categoryBoundaries[6]:
		return TwoPair
	case hr < categoryBoundaries[7]:
		return Pair
	default:
		return HighCard
	}
}

// Strength returns a comparable score where higher is stronger.
// Always at least 1 for a valid rank, so 0 can mean "no score".
func (hr HandRank) Strength() int {
	return rankCount - int(hr)
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	return hr.Category().String()
}

// Evaluate5 is the canonical evaluator: it ranks exactly five cards.
// Behavior is undefined for hands of any other size.
func Evaluate5(hand Hand) HandRank {
	return evaluateUnchecked(hand)
}

// Evaluate ranks the best 5-card hand contained in a 5, 6 or 7 card
// hand. Returns the weakest possible rank for undersized hands; callers
// with partial hands should use the ranking layer instead.
func Evaluate(hand Hand) HandRank {
	if hand.CountCards() < 5 {
		return HandRank(rankCount - 1)
	}
	return evaluateUnchecked(hand)
}

func evaluateUnchecked(hand Hand) HandRank {
	var suitMasks [4]uint16
	var rankMask uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask := hand.GetSuitMask(suit)
		suitMasks[suit] = mask
		rankMask |= mask
	}

	return rankFromMasks(suitMasks, rankMask)
}

// EvaluateBest ranks the best 5-card hand from 5 or more cards and also
// returns which five cards form it. The rank matches Evaluate; the card
// identification enumerates 5-card subsets of the canonical evaluator.
func EvaluateBest(hand Hand) (HandRank, Hand) {
	n := hand.CountCards()
	if n < 5 {
		return HandRank(rankCount - 1), hand
	}
	if n == 5 {
		return evaluateUnchecked(hand), hand
	}

	cards := hand.Cards()
	best := HandRank(rankCount)
	var bestFive Hand

	var idx [5]int
	for i := range idx {
		idx[i] = i
	}
	for {
		five := NewHand(cards[idx[0]], cards[idx[1]], cards[idx[2]], cards[idx[3]], cards[idx[4]])
		if rank := evaluateUnchecked(five); rank < best {
			best = rank
			bestFive = five
		}

		// Advance the combination indices.
		i := 4
		for i >= 0 && idx[i] == n-5+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < 5; j++ {
			idx[j] = idx[j-1] + 1
		}
	}

	return best, bestFive
}

// EvaluateOmaha ranks the best hand using exactly two hole cards and
// exactly three board cards, per Omaha rules. At most C(4,2)*C(5,3)=60
// combinations for a full board. Returns the winning five cards.
func EvaluateOmaha(hole, board Hand) (HandRank, Hand) {
	holeCards := hole.Cards()
	boardCards := board.Cards()

	best := HandRank(rankCount)
	var bestFive Hand

	for i := 0; i < len(holeCards); i++ {
		for j := i + 1; j < len(holeCards); j++ {
			holePair := NewHand(holeCards[i], holeCards[j])
			for a := 0; a < len(boardCards); a++ {
				for b := a + 1; b < len(boardCards); b++ {
					for c := b + 1; c < len(boardCards); c++ {
						five := holePair | NewHand(boardCards[a], boardCards[b], boardCards[c])
						if rank := evaluateUnchecked(five); rank < best {
							best = rank
							bestFive = five
						}
					}
				}
			}
		}
	}

	return best, bestFive
}

func rankFromMasks(suitMasks [4]uint16, rankMask uint16) HandRank {
	// Check for flush first (most restrictive) - check ALL suits for best flush
	bestStrength := HandRank(rankCount) // sentinel larger than any strength
	flushFound := false
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) >= 5 {
			if straightRank := straightHighMask(suitMask); straightRank > 0 {
				idxAsc := straightIndex(straightRank)
				detail := uint16(straightFlushCount-1) - idxAsc
				strength := HandRank(baseStraightFlush + detail)
				if strength < bestStrength {
					return strength
				}
			} else {
				topCards := findOrderedKickers(suitMask, nil, 5)
				mask := maskFromRanks(topCards)
				idxAsc := comboIndex13of5[mask]
				idxAdj := adjustFiveCardIndex(idxAsc)
				detail := uint16(flushCount-1) - idxAdj
				strength := HandRank(baseFlush + detail)
				if strength < bestStrength {
					bestStrength = strength
					flushFound = true
				}
			}
		}
	}
	if flushFound {
		return bestStrength
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]

	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quad := highestRank(quadsMask); quad >= 0 {
		quadRank := uint8(quad)
		kicker := findKicker(rankMask, []uint8{quadRank})
		kickerOrd := uint16(rankOrdinalAsc(kicker, []uint8{quadRank}))
		idxAsc := uint16(quadRank)*12 + kickerOrd
		detail := uint16(fourOfAKindCount-1) - idxAsc
		return HandRank(baseFourOfAKind + detail)
	}

	if tripRank := highestRank(tripsMask); tripRank >= 0 {
		trip := uint8(tripRank)
		pairCandidates := pairsMask | (tripsMask &^ (1 << tripRank))
		if pairRank := highestRank(pairCandidates); pairRank >= 0 {
			pair := uint8(pairRank)
			pairOrd := uint16(rankOrdinalAsc(pair, []uint8{trip}))
			idxAsc := uint16(trip)*12 + pairOrd
			detail := uint16(fullHouseCount-1) - idxAsc
			return HandRank(baseFullHouse + detail)
		}
	}

	if straightRank := straightHighMask(rankMask); straightRank > 0 {
		idxAsc := straightIndex(straightRank)
		detail := uint16(straightCount-1) - idxAsc
		return HandRank(baseStraight + detail)
	}

	if tripRank := highestRank(tripsMask); tripRank >= 0 {
		trip := uint8(tripRank)
		kickers := findOrderedKickers(rankMask, []uint8{trip}, 2)
		mask := maskFromOrdinals(kickers, []uint8{trip})
		idxAsc := uint16(trip)*66 + comboIndex12of2[mask]
		detail := uint16(threeOfAKindCount-1) - idxAsc
		return HandRank(baseThreeOfAKind + detail)
	}

	if pair1 := highestRank(pairsMask); pair1 >= 0 {
		highPair := uint8(pair1)
		if pair2 := highestRank(pairsMask &^ (1 << pair1)); pair2 >= 0 {
			lowPair := uint8(pair2)
			if lowPair > highPair {
				highPair, lowPair = lowPair, highPair
			}
			pairMask := (1 << lowPair) | (1 << highPair)
			pairIdxAsc := comboIndex13of2[pairMask]
			kicker := findKicker(rankMask, []uint8{highPair, lowPair})
			kickerOrd := uint16(rankOrdinalAsc(kicker, []uint8{highPair, lowPair}))
			idxAsc := pairIdxAsc*11 + kickerOrd
			detail := uint16(twoPairCount-1) - idxAsc
			return HandRank(baseTwoPair + detail)
		}
		kickers := findOrderedKickers(rankMask, []uint8{highPair}, 3)
		mask := maskFromOrdinals(kickers, []uint8{highPair})
		idxAsc := uint16(highPair)*220 + comboIndex12of3[mask]
		detail := uint16(onePairCount-1) - idxAsc
		return HandRank(baseOnePair + detail)
	}

	kickers := findOrderedKickers(rankMask, nil, 5)
	mask := maskFromRanks(kickers)
	idxAsc := comboIndex13of5[mask]
	idxAdj := adjustFiveCardIndex(idxAsc)
	detail := uint16(highCardCount-1) - idxAdj
	return HandRank(baseHighCard + detail)
}

// highestRank returns the highest rank present in the bitmask (or -1 when empty).
func highestRank(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

// findKicker finds the highest kicker excluding used ranks.
func findKicker(mask uint16, used []uint8) uint8 {
	available := mask &^ ranksMask(used)
	if available == 0 {
		return 0
	}
	return uint8(bits.Len16(available) - 1)
}

// findOrderedKickers finds the top n kickers in descending order, excluding used ranks
func findOrderedKickers(mask uint16, used []uint8, n int) []uint8 {
	available := mask &^ ranksMask(used)
	kickers := make([]uint8, 0, n)
	for len(kickers) < n {
		if available == 0 {
			kickers = append(kickers, 0)
			continue
		}
		top := uint8(bits.Len16(available) - 1)
		kickers = append(kickers, top)
		available &^= 1 << top
	}
	return kickers
}

func ranksMask(ranks []uint8) uint16 {
	var mask uint16
	for _, r := range ranks {
		mask |= 1 << r
	}
	return mask
}

// The combo tables index rank subsets in colexicographic order, so a
// larger index always means the stronger kicker set: the highest rank
// dominates, then the next, as hands are actually compared.
var comboIndex13of5 = func() [1 << 13]uint16 {
	var table [1 << 13]uint16
	var idx uint16
	for e := 4; e <= 12; e++ {
		for d := 3; d < e; d++ {
			for c := 2; c < d; c++ {
				for b := 1; b < c; b++ {
					for a := 0; a < b; a++ {
						mask := (1 << a) | (1 << b) | (1 << c) | (1 << d) | (1 << e)
						table[mask] = idx
						idx++
					}
				}
			}
		}
	}
	return table
}()

var comboIndex13of2 = func() [1 << 13]uint16 {
	var table [1 << 13]uint16
	var idx uint16
	for b := 1; b <= 12; b++ {
		for a := 0; a < b; a++ {
			mask := (1 << a) | (1 << b)
			table[mask] = idx
			idx++
		}
	}
	return table
}()

var comboIndex12of2 = func() [1 << 12]uint16 {
	var table [1 << 12]uint16
	var idx uint16
	for b := 1; b <= 11; b++ {
		for a := 0; a < b; a++ {
			mask := (1 << a) | (1 << b)
			table[mask] = idx
			idx++
		}
	}
	return table
}()

var comboIndex12of3 = func() [1 << 12]uint16 {
	var table [1 << 12]uint16
	var idx uint16
	for c := 2; c <= 11; c++ {
		for b := 1; b < c; b++ {
			for a := 0; a < b; a++ {
				mask := (1 << a) | (1 << b) | (1 << c)
				table[mask] = idx
				idx++
			}
		}
	}
	return table
}()

var straightComboIndices = func() [10]uint16 {
	var arr [10]uint16
	idx := 0
	// Wheel (A-5)
	wheelMask := (1 << 0) | (1 << 1) | (1 << 2) | (1 << 3) | (1 << 12)
	arr[idx] = comboIndex13of5[wheelMask]
	idx++
	for high := 4; high <= 12; high++ {
		mask := uint16(0)
		for r := high - 4; r <= high; r++ {
			mask |= 1 << r
		}
		arr[idx] = comboIndex13of5[mask]
		idx++
	}
	sortSmallUint16(arr[:])
	return arr
}()

func straightIndex(high uint8) uint16 {
	if high == 3 { // wheel
		return 0
	}
	return uint16(high - 3)
}

func rankOrdinalAsc(rank uint8, excludes []uint8) uint8 {
	var offset uint8
	for _, ex := range excludes {
		if ex < rank {
			offset++
		}
	}
	return rank - offset
}

func maskFromRanks(ranks []uint8) uint16 {
	var mask uint16
	for _, r := range ranks {
		mask |= 1 << r
	}
	return mask
}

func maskFromOrdinals(ranks []uint8, excludes []uint8) uint16 {
	var mask uint16
	for _, r := range ranks {
		ord := rankOrdinalAsc(r, excludes)
		mask |= 1 << ord
	}
	return mask
}

func sortSmallUint16(vals []uint16) {
	for i := 1; i < len(vals); i++ {
		v := vals[i]
		j := i - 1
		for j >= 0 && vals[j] > v {
			vals[j+1] = vals[j]
			j--
		}
		vals[j+1] = v
	}
}

func adjustFiveCardIndex(idx uint16) uint16 {
	var adjust uint16
	for _, s := range straightComboIndices {
		if idx > s {
			adjust++
		} else {
			break
		}
	}
	return idx - adjust
}

// straightHighMask returns the high-card rank of the best straight present in the mask (0 if none).
// The mask uses rank bits 0-12 for deuce through ace.
func straightHighMask(mask uint16) uint8 {
	const wheelMask = 0x100F // Ace + 2-3-4-5
	mask &= 0x1FFF

	// Bitwise cascade identifies consecutive sequences in one pass. The
	// wheel only counts when no higher straight is present.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		low := uint8(bits.Len16(seq) - 1)
		return low + 4
	}

	if mask&wheelMask == wheelMask {
		return 3
	}
	return 0
}

// CompareRanks compares two ranks and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareRanks(a, b HandRank) int {
	if a < b {
		return 1
	} else if a > b {
		return -1
	}
	return 0
}
