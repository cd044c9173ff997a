package betting

// PotLimitResult reports the pot-limit ceiling for the acting player.
// MaxBet is the cap on the player's new total bet for this action.
type PotLimitResult struct {
	PendingCalls int
	MaxBet       int
}

// MaxBet computes the maximum legal total bet under pot-limit rules.
//
// With no live bet the first bet is capped at the current pot size. With
// a live bet, the maximum raise equals the pot after notionally calling
// every outstanding bet: pending calls are summed over all non-folded,
// non-all-in players (the actor's own call included), and the cap is
// tableBet + currentPot + pendingCalls.
func MaxBet(currentPot, tableBet int, players []*Player) PotLimitResult {
	if tableBet <= 0 {
		return PotLimitResult{MaxBet: currentPot}
	}

	pendingCalls := 0
	for _, p := range players {
		if !p.CanAct() {
			continue
		}
		if owed := tableBet - p.Bet; owed > 0 {
			pendingCalls += owed
		}
	}

	maxRaise := currentPot + pendingCalls
	return PotLimitResult{
		PendingCalls: pendingCalls,
		MaxBet:       tableBet + maxRaise,
	}
}
