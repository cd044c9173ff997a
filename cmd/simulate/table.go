package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/cardroom/wagering/betting"
	"github.com/cardroom/wagering/poker"
)

// TableStats aggregates results over all hands at one table.
type TableStats struct {
	Hands       int
	PotVolume   int // total chips that passed through pots
	MaxPot      int
	Showdowns   int
	Uncontested int // hands that ended with a single player left
	LowsAwarded int // pots where a qualifying low took half
}

type table struct {
	cfg     TableConfig
	mgr     *betting.Manager
	rng     *rand.Rand
	deck    *poker.Deck
	logger  *log.Logger
	players []*betting.Player
	holes   map[string]poker.Hand
	stats   TableStats
}

func runTable(logger *log.Logger, cfg TableConfig, seed int64) (TableStats, error) {
	rng := rand.New(rand.NewSource(seed))

	players := make([]*betting.Player, cfg.Players)
	for i := range players {
		players[i] = &betting.Player{
			ID:   fmt.Sprintf("%s-p%d", cfg.Name, i+1),
			Seat: i,
		}
	}

	t := &table{
		cfg: cfg,
		mgr: &betting.Manager{
			SmallBlind:   cfg.SmallBlind,
			BigBlind:     cfg.BigBlind,
			PotLimit:     cfg.PotLimit,
			DealerBlinds: true,
		},
		rng:     rng,
		deck:    poker.NewDeck(rng),
		logger:  logger,
		players: players,
	}

	for h := 0; h < cfg.Hands; h++ {
		if err := t.playHand(h % cfg.Players); err != nil {
			return t.stats, fmt.Errorf("hand %d: %w", h+1, err)
		}
	}

	return t.stats, nil
}

func (t *table) playHand(dealer int) error {
	for _, p := range t.players {
		p.Stack = t.cfg.Stack
		p.Bet = 0
		p.Folded = false
		p.AllIn = false
		p.HasActed = false
	}
	t.deck.Shuffle()

	holeSize := 2
	if t.cfg.Variant != "holdem" {
		holeSize = 4
	}
	t.holes = make(map[string]poker.Hand, len(t.players))
	for _, p := range t.players {
		t.holes[p.ID] = t.deck.DealHand(holeSize)
	}

	blinds, err := t.mgr.PostBlinds(t.players, dealer)
	if err != nil {
		return err
	}
	pot := blinds.PotDelta
	tableBet, minRaise := blinds.TableBet, t.mgr.BigBlind

	// Bets are per street; contributions accumulate across streets for
	// side pot layering at showdown.
	contrib := make(map[string]int, len(t.players))

	var board poker.Hand
	for street, n := range []int{0, 3, 1, 1} {
		if street > 0 {
			for _, p := range t.players {
				contrib[p.ID] += p.Bet
				p.Bet = 0
			}
			tableBet, minRaise = 0, t.mgr.BigBlind
		}
		if n > 0 {
			board |= t.deck.DealHand(n)
		}

		order := t.actingOrder(dealer, street == 0)
		tableBet, minRaise, pot = t.bettingRound(order, tableBet, minRaise, pot)

		if t.activeCount() == 1 {
			break
		}
	}
	for _, p := range t.players {
		contrib[p.ID] += p.Bet
		p.Bet = 0
	}

	t.stats.Hands++
	t.stats.PotVolume += pot
	if pot > t.stats.MaxPot {
		t.stats.MaxPot = pot
	}

	if t.activeCount() == 1 {
		t.stats.Uncontested++
		for _, p := range t.players {
			if !p.Folded {
				p.Stack += pot
			}
		}
		return t.checkConservation()
	}

	for _, p := range t.players {
		p.Bet = contrib[p.ID]
	}
	pots := betting.CalculateSidePots(t.players)
	if total := betting.PotTotal(pots); total != pot {
		return fmt.Errorf("side pots hold %d chips, expected %d", total, pot)
	}

	payout := t.showdown(pots, board)
	paid := 0
	for _, p := range t.players {
		p.Bet = 0
		p.Stack += payout[p.ID]
		paid += payout[p.ID]
	}
	if paid != pot {
		return fmt.Errorf("paid out %d chips from a %d chip pot", paid, pot)
	}
	t.stats.Showdowns++

	return t.checkConservation()
}

// bettingRound runs one street of action and returns the updated table
// scalars plus the pot. Action continues until every player who can act
// has matched the table bet.
func (t *table) bettingRound(order []*betting.Player, tableBet, minRaise, pot int) (int, int, int) {
	for _, p := range t.players {
		p.HasActed = false
	}

	i := 0
	for guard := 0; guard < 50*len(order); guard++ {
		if t.roundComplete(tableBet) {
			break
		}

		p := order[i%len(order)]
		i++
		if !p.CanAct() || (p.HasActed && p.Bet == tableBet) {
			continue
		}

		act := t.decide(p, tableBet, minRaise, pot)
		res, err := t.mgr.ProcessAction(p, act, tableBet, minRaise, t.potContext(pot))
		if err != nil {
			t.logger.Debug("action rejected", "player", p.ID, "action", act.Type, "err", err)
			res, err = t.mgr.ProcessAction(p, betting.Action{Type: betting.Call, PlayerID: p.ID}, tableBet, minRaise, nil)
			if err != nil {
				res, _ = t.mgr.ProcessAction(p, betting.Action{Type: betting.Fold, PlayerID: p.ID}, tableBet, minRaise, nil)
			}
		}

		pot += res.PotDelta
		tableBet = res.TableBet
		minRaise = res.MinRaise
	}

	return tableBet, minRaise, pot
}

func (t *table) roundComplete(tableBet int) bool {
	if t.activeCount() <= 1 {
		return true
	}
	for _, p := range t.players {
		if !p.CanAct() {
			continue
		}
		if !p.HasActed || p.Bet != tableBet {
			return false
		}
	}
	return true
}

func (t *table) activeCount() int {
	n := 0
	for _, p := range t.players {
		if !p.Folded {
			n++
		}
	}
	return n
}

func (t *table) potContext(pot int) *betting.PotContext {
	if !t.mgr.PotLimit {
		return nil
	}
	return &betting.PotContext{Pot: pot, Players: t.players}
}

// actingOrder returns all players in acting order for a street. Preflop
// the player after the big blind opens; postflop the small blind does.
// Heads-up the dealer posts the small blind and opens preflop.
func (t *table) actingOrder(dealer int, preflop bool) []*betting.Player {
	n := len(t.players)
	off := 1
	if preflop {
		off = 3
		if n == 2 {
			off = 0
		}
	}

	order := make([]*betting.Player, n)
	for i := range order {
		order[i] = t.players[(dealer+off+i)%n]
	}
	return order
}

// decide picks an action from a simple category-driven policy. Amounts
// may exceed what is legal; the manager clamps them.
func (t *table) decide(p *betting.Player, tableBet, minRaise, pot int) betting.Action {
	actions := t.mgr.ValidActions(p, tableBet, minRaise)
	cat := t.holeCategory(p)
	toCall := tableBet - p.Bet
	bb := t.mgr.BigBlind

	if contains(actions, betting.Check) {
		if contains(actions, betting.Bet) && aggressive(cat) && t.rng.Intn(3) == 0 {
			return betting.Action{Type: betting.Bet, PlayerID: p.ID, Amount: 3 * bb}
		}
		return betting.Action{Type: betting.Check, PlayerID: p.ID}
	}

	switch cat {
	case poker.CategoryPremium:
		if contains(actions, betting.Raise) && t.rng.Intn(3) == 0 {
			return betting.Action{Type: betting.Raise, PlayerID: p.ID, Amount: tableBet + minRaise}
		}
		if contains(actions, betting.Call) {
			return betting.Action{Type: betting.Call, PlayerID: p.ID}
		}
	case poker.CategoryStrong:
		if contains(actions, betting.Call) {
			return betting.Action{Type: betting.Call, PlayerID: p.ID}
		}
	case poker.CategoryMedium:
		if toCall <= 4*bb && contains(actions, betting.Call) {
			return betting.Action{Type: betting.Call, PlayerID: p.ID}
		}
	case poker.CategoryWeak:
		if toCall <= bb && contains(actions, betting.Call) {
			return betting.Action{Type: betting.Call, PlayerID: p.ID}
		}
	}

	return betting.Action{Type: betting.Fold, PlayerID: p.ID}
}

// holeCategory rates the hole cards. Omaha hands take the best rating
// over every two-card combination.
func (t *table) holeCategory(p *betting.Player) poker.HoleCardCategory {
	cards := t.holes[p.ID].Cards()
	if len(cards) == 2 {
		return poker.CategorizeHoleCards(cards[0], cards[1])
	}

	best := poker.CategoryTrash
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			cat := poker.CategorizeHoleCards(cards[i], cards[j])
			if categoryWeight(cat) > categoryWeight(best) {
				best = cat
			}
		}
	}
	return best
}

func categoryWeight(cat poker.HoleCardCategory) int {
	switch cat {
	case poker.CategoryPremium:
		return 4
	case poker.CategoryStrong:
		return 3
	case poker.CategoryMedium:
		return 2
	case poker.CategoryWeak:
		return 1
	default:
		return 0
	}
}

func aggressive(cat poker.HoleCardCategory) bool {
	return cat == poker.CategoryPremium || cat == poker.CategoryStrong
}

func contains(actions []betting.ActionType, a betting.ActionType) bool {
	for _, t := range actions {
		if t == a {
			return true
		}
	}
	return false
}

// showdown resolves each pot and returns the payout per player.
func (t *table) showdown(pots []betting.SidePot, board poker.Hand) map[string]int {
	payout := make(map[string]int, len(t.players))

	if t.cfg.Variant == "omaha-hilo" {
		t.showdownHiLo(pots, board, payout)
		return payout
	}

	winners := make([]*betting.Winner, 0, len(t.players))
	for _, p := range t.players {
		if p.Folded {
			continue
		}
		var r poker.Ranking
		if t.cfg.Variant == "omaha" {
			r = poker.NewOmahaRanking(t.holes[p.ID], board)
		} else {
			r = poker.NewRanking(t.holes[p.ID], board)
		}
		winners = append(winners, &betting.Winner{PlayerID: p.ID, Strength: r.Strength})
	}

	betting.DistributePots(pots, winners)
	for _, w := range winners {
		payout[w.PlayerID] += w.WinAmount
	}
	return payout
}

// showdownHiLo splits each pot between the best high hand and the best
// qualifying eight-or-better low. The high side takes the odd chip; with
// no qualifying low the high hand scoops.
func (t *table) showdownHiLo(pots []betting.SidePot, board poker.Hand, payout map[string]int) {
	strengths := make(map[string]int)
	lows := make(map[string]poker.LowHand)
	for _, p := range t.players {
		if p.Folded {
			continue
		}
		r := poker.NewOmahaRanking(t.holes[p.ID], board)
		strengths[p.ID] = r.Strength
		if low, ok := poker.EvaluateOmahaLow(t.holes[p.ID], board); ok {
			lows[p.ID] = low
		}
	}

	for _, pot := range pots {
		highIDs := bestHigh(pot.Eligible, strengths)
		lowIDs := bestLow(pot.Eligible, lows)

		if len(lowIDs) == 0 {
			payShare(pot.Amount, highIDs, payout)
			continue
		}

		lowHalf := pot.Amount / 2
		payShare(pot.Amount-lowHalf, highIDs, payout)
		payShare(lowHalf, lowIDs, payout)
		t.stats.LowsAwarded++
	}
}

func bestHigh(eligible []string, strengths map[string]int) []string {
	best := -1
	var ids []string
	for _, id := range eligible {
		s, ok := strengths[id]
		if !ok {
			continue
		}
		switch {
		case s > best:
			best = s
			ids = []string{id}
		case s == best:
			ids = append(ids, id)
		}
	}
	return ids
}

func bestLow(eligible []string, lows map[string]poker.LowHand) []string {
	var best poker.LowHand
	var ids []string
	for _, id := range eligible {
		low, ok := lows[id]
		if !ok {
			continue
		}
		if len(ids) == 0 || poker.CompareLows(low, best) > 0 {
			best = low
			ids = []string{id}
		} else if poker.CompareLows(low, best) == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// payShare splits amount evenly, odd chips to the earliest players.
func payShare(amount int, ids []string, payout map[string]int) {
	if len(ids) == 0 || amount == 0 {
		return
	}
	share := amount / len(ids)
	rem := amount % len(ids)
	for i, id := range ids {
		payout[id] += share
		if i < rem {
			payout[id]++
		}
	}
}

func (t *table) checkConservation() error {
	total := 0
	for _, p := range t.players {
		total += p.Stack + p.Bet
	}
	if want := len(t.players) * t.cfg.Stack; total != want {
		return fmt.Errorf("chip conservation broken: have %d, want %d", total, want)
	}
	return nil
}
