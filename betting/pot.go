package betting

import (
	"sort"
)

// SidePot is one layer of the pot. Eligibility is restricted to
// non-folded players whose contribution reached the pot's bet level.
type SidePot struct {
	Amount   int
	Level    int // contribution level this pot caps at
	Eligible []string
}

// Winner accumulates a player's showdown payout. Strength carries the
// hand score used to pick the winning subset per pot; zero means no
// score, in which case every eligible winner splits.
type Winner struct {
	PlayerID  string
	WinAmount int
	Strength  int
}

// CalculateSidePots builds the ordered side pots from the final
// per-player contributions. Pots are emitted in ascending level order
// and their amounts always sum to the total contributed, folded players
// included.
func CalculateSidePots(players []*Player) []SidePot {
	// Everyone else folded: one pot, sole survivor takes all.
	var last *Player
	remaining := 0
	total := 0
	for _, p := range players {
		total += p.Bet
		if !p.Folded {
			remaining++
			last = p
		}
	}
	if remaining == 1 {
		if total == 0 {
			return nil
		}
		return []SidePot{{
			Amount:   total,
			Level:    last.Bet,
			Eligible: []string{last.ID},
		}}
	}

	// Distinct contribution levels, ascending, over everyone who put
	// chips in (folded players still contribute to the layers below
	// their fold point).
	seen := make(map[int]bool)
	levels := make([]int, 0, len(players))
	for _, p := range players {
		if p.Bet > 0 && !seen[p.Bet] {
			seen[p.Bet] = true
			levels = append(levels, p.Bet)
		}
	}
	sort.Ints(levels)

	pots := make([]SidePot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		pot := SidePot{Level: level}

		for _, p := range players {
			contribution := p.Bet
			if contribution > level {
				contribution = level
			}
			if contribution > prev {
				pot.Amount += contribution - prev
			}
			if !p.Folded && p.Bet >= level {
				pot.Eligible = append(pot.Eligible, p.ID)
			}
		}

		pots = append(pots, pot)
		prev = level
	}

	return pots
}

// DistributePots splits each pot among its eligible winners, mutating
// the winners' WinAmount fields. When any eligible winner carries a
// strength score only the maximal-strength subset splits that pot. The
// split is integer floor division with the remainder handed out one
// chip at a time in input order, so every pot is exactly exhausted.
//
// A layer can end up with no eligible winner when its sole contributor
// open-folds after overbetting. Its chips roll into the nearest lower
// layer that has one (or the nearest higher, for a bottom layer) so no
// chip is ever stranded.
func DistributePots(pots []SidePot, winners []*Winner) {
	eligibles := make([][]*Winner, len(pots))
	amounts := make([]int, len(pots))
	for i, pot := range pots {
		eligibles[i] = eligibleWinners(pot, winners)
		amounts[i] = pot.Amount
	}

	for i := len(pots) - 1; i >= 0; i-- {
		if len(eligibles[i]) > 0 || amounts[i] == 0 {
			continue
		}
		target := -1
		for j := i - 1; j >= 0; j-- {
			if len(eligibles[j]) > 0 {
				target = j
				break
			}
		}
		if target == -1 {
			for j := i + 1; j < len(pots); j++ {
				if len(eligibles[j]) > 0 {
					target = j
					break
				}
			}
		}
		if target >= 0 {
			amounts[target] += amounts[i]
			amounts[i] = 0
		}
	}

	for i := range pots {
		eligible := eligibles[i]
		if len(eligible) == 0 || amounts[i] == 0 {
			continue
		}

		best := 0
		for _, w := range eligible {
			if w.Strength > best {
				best = w.Strength
			}
		}
		if best > 0 {
			strongest := make([]*Winner, 0, len(eligible))
			for _, w := range eligible {
				if w.Strength == best {
					strongest = append(strongest, w)
				}
			}
			eligible = strongest
		}

		share := amounts[i] / len(eligible)
		remainder := amounts[i] % len(eligible)
		for j, w := range eligible {
			w.WinAmount += share
			if j < remainder {
				w.WinAmount++
			}
		}
	}
}

func eligibleWinners(pot SidePot, winners []*Winner) []*Winner {
	eligible := make([]*Winner, 0, len(winners))
	for _, w := range winners {
		for _, id := range pot.Eligible {
			if w.PlayerID == id {
				eligible = append(eligible, w)
				break
			}
		}
	}
	return eligible
}

// PotTotal sums the side pot amounts.
func PotTotal(pots []SidePot) int {
	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	return total
}
