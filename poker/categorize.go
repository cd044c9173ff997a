package poker

// HoleCardCategory represents the preflop strength category of hole cards
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// CategorizeHoleCards provides a simple preflop hand categorization.
// Categories: Premium (JJ+, AK), Strong (TT, AQ/AJ), Medium (77+, suited
// broadway), Weak (small pairs, suited connectors), Trash (everything else).
func CategorizeHoleCards(card1, card2 Card) HoleCardCategory {
	r1 := card1.Rank()
	r2 := card2.Rank()

	if r1 > 12 || r2 > 12 {
		return CategoryUnknown
	}

	// Work in the conventional 2-14 scale
	rank1 := rankToValue(r1)
	rank2 := rankToValue(r2)
	suited := card1.Suit() == card2.Suit()

	small, big := rank1, rank2
	if small > big {
		small, big = big, small
	}

	isPair := small == big
	if isPair && small >= 11 { // JJ, QQ, KK, AA
		return CategoryPremium
	}
	if small == 13 && big == 14 { // AK
		return CategoryPremium
	}

	if isPair && small == 10 { // TT
		return CategoryStrong
	}
	if big == 14 && (small == 12 || small == 11) { // AQ, AJ
		return CategoryStrong
	}

	if isPair && small >= 7 && small <= 9 { // 77, 88, 99
		return CategoryMedium
	}
	if suited && small >= 10 && big >= 10 { // Suited broadway
		return CategoryMedium
	}

	if isPair && small >= 2 && small <= 6 { // 22-66
		return CategoryWeak
	}
	if suited && absDiff(small, big) <= 2 { // Suited connectors
		return CategoryWeak
	}

	return CategoryTrash
}

// rankToValue converts the 0-12 rank system to 2-14 for categorization
func rankToValue(rank uint8) int {
	if rank == Ace {
		return 14
	}
	return int(rank) + 2
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
