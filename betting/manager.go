package betting

import (
	"fmt"
)

// Manager processes wagering actions for a single hand. It owns blind
// posting and per-action legality; turn order, street transitions and
// showdown orchestration belong to the caller.
//
// Illegal actions are surfaced as errors and never auto-corrected: they
// indicate a caller bug or rule violation, not a transient condition.
type Manager struct {
	SmallBlind int
	BigBlind   int

	// PotLimit caps bets and raises via the pot-limit calculator.
	PotLimit bool

	// DealerBlinds assigns ring-game blinds relative to the dealer seat
	// instead of the fixed seat 1/seat 2 fallback. Heads-up blinds are
	// always dealer-relative (the dealer posts the small blind).
	DealerBlinds bool
}

// PotContext carries the table state the pot-limit calculator needs.
// Pass nil in no-limit games.
type PotContext struct {
	Pot     int // chips already collected into the pot
	Players []*Player
}

// Fixed small/big blind seats for ring games when dealer-relative
// assignment is not enabled.
const (
	fallbackSmallBlindSeat = 1
	fallbackBigBlindSeat   = 2
)

// PostBlinds deducts the small and big blind from the designated players
// and returns the chips moved plus the opening table bet. Short stacks
// post what they have and go all-in.
func (m *Manager) PostBlinds(players []*Player, dealer int) (BlindResult, error) {
	if len(players) < 2 {
		return BlindResult{}, fmt.Errorf("cannot post blinds with %d players", len(players))
	}

	var sb, bb *Player

	if len(players) == 2 {
		// Heads-up: the dealer posts the small blind
		sb = findBySeat(players, dealer)
		if sb == nil {
			return BlindResult{}, fmt.Errorf("small blind player not found at dealer seat %d", dealer)
		}
		for _, p := range players {
			if p != sb {
				bb = p
			}
		}
	} else if m.DealerBlinds {
		order := seatOrder(players, dealer)
		if order == nil {
			return BlindResult{}, fmt.Errorf("dealer not found at seat %d", dealer)
		}
		sb, bb = order[0], order[1]
	} else {
		sb = findBySeat(players, fallbackSmallBlindSeat)
		bb = findBySeat(players, fallbackBigBlindSeat)
	}

	if sb == nil {
		return BlindResult{}, fmt.Errorf("small blind player not found")
	}
	if bb == nil {
		return BlindResult{}, fmt.Errorf("big blind player not found")
	}

	delta := m.PlaceBet(sb, m.SmallBlind)
	delta += m.PlaceBet(bb, m.BigBlind)

	return BlindResult{PotDelta: delta, TableBet: m.BigBlind}, nil
}

// seatOrder returns the players after the dealer seat in cyclic seat
// order, or nil when no player occupies the dealer seat.
func seatOrder(players []*Player, dealer int) []*Player {
	sorted := make([]*Player, len(players))
	copy(sorted, players)
	for i := 1; i < len(sorted); i++ {
		p := sorted[i]
		j := i - 1
		for j >= 0 && sorted[j].Seat > p.Seat {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = p
	}

	start := -1
	for i, p := range sorted {
		if p.Seat == dealer {
			start = i
			break
		}
	}
	if start == -1 {
		return nil
	}

	order := make([]*Player, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		order = append(order, sorted[(start+i)%len(sorted)])
	}
	return order
}

// PlaceBet moves a player's round total to newTotal, clamped to their
// all-in ceiling. Only the delta between the new and previous total is
// deducted from the stack. Returns the chips moved.
func (m *Manager) PlaceBet(p *Player, newTotal int) int {
	ceiling := p.Bet + p.Stack
	if newTotal > ceiling {
		newTotal = ceiling
	}
	if newTotal <= p.Bet {
		return 0 // round totals never decrease
	}

	delta := newTotal - p.Bet
	p.Stack -= delta
	p.Bet = newTotal
	if p.Stack == 0 {
		p.AllIn = true
	}
	return delta
}

// ProcessAction applies one action against the current table scalars and
// returns the pot delta plus the updated table bet and minimum raise.
// The player record is mutated in place. Pass the pot context in
// pot-limit games so bet and raise ceilings can be computed.
func (m *Manager) ProcessAction(p *Player, act Action, tableBet, minRaise int, pot *PotContext) (ActionResult, error) {
	res := ActionResult{TableBet: tableBet, MinRaise: minRaise}

	switch act.Type {
	case Bet:
		if tableBet > 0 {
			return res, fmt.Errorf("cannot bet into a live bet of %d, use raise instead", tableBet)
		}

		ceiling := p.Bet + p.Stack
		desired := act.Amount
		if m.PotLimit && pot != nil {
			if limit := MaxBet(pot.Pot, tableBet, pot.Players); desired > limit.MaxBet {
				desired = limit.MaxBet
			}
		}
		if desired > ceiling {
			desired = ceiling
		}
		// A short all-in may open below the big blind; anything else may not.
		if desired < m.BigBlind && desired != ceiling {
			return res, fmt.Errorf("bet of %d is below the big blind %d", desired, m.BigBlind)
		}

		res.PotDelta = m.PlaceBet(p, desired)
		res.TableBet = desired
		if m.PotLimit {
			res.MinRaise = desired
		} else {
			res.MinRaise = max(m.BigBlind, desired)
		}

	case Call:
		toCall := tableBet - p.Bet
		if toCall > p.Stack {
			toCall = p.Stack
		}
		if toCall < 0 {
			toCall = 0
		}
		p.Stack -= toCall
		p.Bet += toCall
		if p.Stack == 0 {
			p.AllIn = true
		}
		res.PotDelta = toCall

	case Raise:
		if act.Amount <= tableBet {
			return res, fmt.Errorf("raise to %d must exceed the current bet of %d", act.Amount, tableBet)
		}

		ceiling := p.Bet + p.Stack
		desired := act.Amount
		if desired > ceiling {
			desired = ceiling
		}
		if m.PotLimit && pot != nil {
			if limit := MaxBet(pot.Pot, tableBet, pot.Players); desired > limit.MaxBet {
				desired = limit.MaxBet
			}
		}

		raiseAmount := desired - tableBet
		if raiseAmount < minRaise && desired != ceiling {
			return res, fmt.Errorf("raise too small, minimum raise is to %d", tableBet+minRaise)
		}

		res.PotDelta = m.PlaceBet(p, desired)
		if desired > tableBet {
			res.TableBet = desired
		}
		// A short all-in raise leaves the minimum raise unchanged so the
		// larger threshold still binds later players.
		if raiseAmount >= minRaise {
			res.MinRaise = raiseAmount
		}

	case Check:
		if tableBet > p.Bet {
			return res, fmt.Errorf("cannot check, must call %d", tableBet-p.Bet)
		}

	case Fold:
		p.Folded = true

	default:
		return res, fmt.Errorf("unknown action type %d", act.Type)
	}

	p.HasActed = true
	return res, nil
}

// Limits reports the legal bet window for a player without mutating
// anything. MinRaise is the minimum legal raise-to total.
func (m *Manager) Limits(p *Player, tableBet, minRaise int) Limits {
	return Limits{
		MinBet:   m.BigBlind,
		MinRaise: tableBet + minRaise,
		MaxBet:   p.Bet + p.Stack,
	}
}

// ValidActions returns the action types the player may legally take
// against the current table state. Read-only helper for actors and UIs.
func (m *Manager) ValidActions(p *Player, tableBet, minRaise int) []ActionType {
	if !p.CanAct() {
		return nil
	}

	actions := []ActionType{Fold}
	toCall := tableBet - p.Bet

	if toCall <= 0 {
		actions = append(actions, Check)
		if tableBet == 0 && p.Stack > 0 {
			actions = append(actions, Bet)
		}
	} else if p.Stack > 0 {
		actions = append(actions, Call)
	}

	if tableBet > 0 && p.Bet+p.Stack > tableBet {
		actions = append(actions, Raise)
	}

	return actions
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
