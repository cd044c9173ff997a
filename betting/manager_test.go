package betting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *Manager {
	return &Manager{SmallBlind: 5, BigBlind: 10}
}

// chipTotal sums every chip still owned by the players. Bet chips have
// already left the stack, so the pot is their sum, never an addend.
func chipTotal(players []*Player) int {
	total := 0
	for _, p := range players {
		total += p.Stack + p.Bet
	}
	return total
}

func TestPostBlindsHeadsUp(t *testing.T) {
	t.Parallel()

	m := newManager()
	players := []*Player{
		{ID: "a", Seat: 0, Stack: 100},
		{ID: "b", Seat: 1, Stack: 100},
	}

	// Heads-up the dealer posts the small blind
	res, err := m.PostBlinds(players, 0)
	require.NoError(t, err)

	assert.Equal(t, 15, res.PotDelta)
	assert.Equal(t, 10, res.TableBet)
	assert.Equal(t, 5, players[0].Bet)
	assert.Equal(t, 95, players[0].Stack)
	assert.Equal(t, 10, players[1].Bet)
	assert.Equal(t, 90, players[1].Stack)
}

func TestPostBlindsRingFixedSeats(t *testing.T) {
	t.Parallel()

	m := newManager()
	players := []*Player{
		{ID: "dealer", Seat: 0, Stack: 100},
		{ID: "sb", Seat: 1, Stack: 100},
		{ID: "bb", Seat: 2, Stack: 100},
		{ID: "utg", Seat: 3, Stack: 100},
	}

	res, err := m.PostBlinds(players, 0)
	require.NoError(t, err)

	assert.Equal(t, 15, res.PotDelta)
	assert.Equal(t, 5, players[1].Bet)
	assert.Equal(t, 10, players[2].Bet)
	assert.Equal(t, 0, players[0].Bet)
	assert.Equal(t, 0, players[3].Bet)
}

func TestPostBlindsDealerRelative(t *testing.T) {
	t.Parallel()

	m := newManager()
	m.DealerBlinds = true
	players := []*Player{
		{ID: "a", Seat: 0, Stack: 100},
		{ID: "b", Seat: 1, Stack: 100},
		{ID: "c", Seat: 2, Stack: 100},
	}

	// Dealer on the last seat wraps around to seats 0 and 1
	res, err := m.PostBlinds(players, 2)
	require.NoError(t, err)

	assert.Equal(t, 15, res.PotDelta)
	assert.Equal(t, 5, players[0].Bet)
	assert.Equal(t, 10, players[1].Bet)
	assert.Equal(t, 0, players[2].Bet)
}

func TestPostBlindsMissingSeat(t *testing.T) {
	t.Parallel()

	m := newManager()
	players := []*Player{
		{ID: "a", Seat: 0, Stack: 100},
		{ID: "b", Seat: 3, Stack: 100},
		{ID: "c", Seat: 4, Stack: 100},
	}

	_, err := m.PostBlinds(players, 0)
	require.Error(t, err)
}

func TestPostBlindsShortStackGoesAllIn(t *testing.T) {
	t.Parallel()

	m := newManager()
	players := []*Player{
		{ID: "a", Seat: 0, Stack: 100},
		{ID: "sb", Seat: 1, Stack: 100},
		{ID: "bb", Seat: 2, Stack: 4},
	}

	res, err := m.PostBlinds(players, 0)
	require.NoError(t, err)

	assert.Equal(t, 9, res.PotDelta)
	assert.Equal(t, 10, res.TableBet, "table bet is the full big blind even when posted short")
	assert.Equal(t, 4, players[2].Bet)
	assert.True(t, players[2].AllIn)
}

func TestPlaceBetClampsToAllInCeiling(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 80, Bet: 20}

	delta := m.PlaceBet(p, 500)

	assert.Equal(t, 80, delta)
	assert.Equal(t, 100, p.Bet)
	assert.Equal(t, 0, p.Stack)
	assert.True(t, p.AllIn)
}

func TestPlaceBetDeductsOnlyDelta(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 90, Bet: 10}

	delta := m.PlaceBet(p, 40)

	assert.Equal(t, 30, delta)
	assert.Equal(t, 40, p.Bet)
	assert.Equal(t, 60, p.Stack)
	assert.False(t, p.AllIn)
}

func TestChipConservationAcrossActions(t *testing.T) {
	t.Parallel()

	m := newManager()
	players := []*Player{
		{ID: "a", Seat: 0, Stack: 1000},
		{ID: "b", Seat: 1, Stack: 1000},
		{ID: "c", Seat: 2, Stack: 1000},
	}

	pot := 0
	tableBet, minRaise := 0, m.BigBlind

	res, err := m.ProcessAction(players[0], Action{Type: Bet, PlayerID: "a", Amount: 100}, tableBet, minRaise, nil)
	require.NoError(t, err)
	pot += res.PotDelta
	tableBet, minRaise = res.TableBet, res.MinRaise

	res, err = m.ProcessAction(players[1], Action{Type: Call, PlayerID: "b"}, tableBet, minRaise, nil)
	require.NoError(t, err)
	pot += res.PotDelta

	res, err = m.ProcessAction(players[2], Action{Type: Fold, PlayerID: "c"}, tableBet, minRaise, nil)
	require.NoError(t, err)
	pot += res.PotDelta

	assert.Equal(t, 200, pot)
	assert.Equal(t, 900, players[0].Stack)
	assert.Equal(t, 900, players[1].Stack)
	assert.Equal(t, 1000, players[2].Stack)
	assert.Equal(t, 3000, chipTotal(players))
	assert.Equal(t, pot, players[0].Bet+players[1].Bet+players[2].Bet, "the pot is exactly the live bets")
}

func TestShortAllInRaiseKeepsMinRaise(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 30, Bet: 100}

	res, err := m.ProcessAction(p, Action{Type: Raise, PlayerID: "a", Amount: 130}, 100, 50, nil)
	require.NoError(t, err)

	assert.Equal(t, 30, res.PotDelta)
	assert.Equal(t, 130, res.TableBet)
	assert.Equal(t, 50, res.MinRaise, "short all-in raise must not lower the raise threshold")
	assert.True(t, p.AllIn)
	assert.True(t, p.HasActed)
}

func TestFullRaiseUpdatesMinRaise(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 500, Bet: 0}

	res, err := m.ProcessAction(p, Action{Type: Raise, PlayerID: "a", Amount: 250}, 100, 50, nil)
	require.NoError(t, err)

	assert.Equal(t, 250, res.TableBet)
	assert.Equal(t, 150, res.MinRaise)
	assert.Equal(t, 250, res.PotDelta)
}

func TestRaiseTooSmallRejected(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 500, Bet: 0}

	_, err := m.ProcessAction(p, Action{Type: Raise, PlayerID: "a", Amount: 120}, 100, 50, nil)
	require.Error(t, err)
	assert.False(t, p.HasActed, "rejected actions leave the player unmarked")
	assert.Equal(t, 500, p.Stack)
}

func TestRaiseMustExceedTableBet(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 500, Bet: 0}

	_, err := m.ProcessAction(p, Action{Type: Raise, PlayerID: "a", Amount: 100}, 100, 50, nil)
	require.Error(t, err)
}

func TestBetIntoLiveBetRejected(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 500}

	_, err := m.ProcessAction(p, Action{Type: Bet, PlayerID: "a", Amount: 50}, 20, 10, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "raise")
}

func TestBetBelowBigBlindRejected(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 500}

	_, err := m.ProcessAction(p, Action{Type: Bet, PlayerID: "a", Amount: 5}, 0, 10, nil)
	require.Error(t, err)
}

func TestShortAllInOpenBelowBigBlindAccepted(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 7}

	res, err := m.ProcessAction(p, Action{Type: Bet, PlayerID: "a", Amount: 7}, 0, 10, nil)
	require.NoError(t, err)

	assert.Equal(t, 7, res.PotDelta)
	assert.Equal(t, 7, res.TableBet)
	assert.True(t, p.AllIn)
}

func TestBetUpdatesMinRaise(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 500}

	res, err := m.ProcessAction(p, Action{Type: Bet, PlayerID: "a", Amount: 60}, 0, 10, nil)
	require.NoError(t, err)

	assert.Equal(t, 60, res.MinRaise, "no-limit min raise tracks the bet size")
}

func TestCallShortStackGoesAllIn(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 40}

	res, err := m.ProcessAction(p, Action{Type: Call, PlayerID: "a"}, 100, 50, nil)
	require.NoError(t, err)

	assert.Equal(t, 40, res.PotDelta)
	assert.Equal(t, 40, p.Bet)
	assert.True(t, p.AllIn)
	assert.Equal(t, 100, res.TableBet, "a short call never lowers the table bet")
}

func TestCheckFacingBetRejected(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 500, Bet: 10}

	_, err := m.ProcessAction(p, Action{Type: Check, PlayerID: "a"}, 30, 10, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call 20")
}

func TestCheckBehindAccepted(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 500, Bet: 30}

	res, err := m.ProcessAction(p, Action{Type: Check, PlayerID: "a"}, 30, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.PotDelta)
	assert.True(t, p.HasActed)
}

func TestFoldHasNoMonetaryEffect(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 500, Bet: 20}

	res, err := m.ProcessAction(p, Action{Type: Fold, PlayerID: "a"}, 100, 50, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, res.PotDelta)
	assert.True(t, p.Folded)
	assert.Equal(t, 500, p.Stack)
	assert.Equal(t, 20, p.Bet)
}

func TestPotLimitBetCappedAtPot(t *testing.T) {
	t.Parallel()

	m := &Manager{SmallBlind: 5, BigBlind: 10, PotLimit: true}
	p := &Player{ID: "a", Stack: 1000}
	pot := &PotContext{Pot: 100, Players: []*Player{p}}

	res, err := m.ProcessAction(p, Action{Type: Bet, PlayerID: "a", Amount: 500}, 0, 10, pot)
	require.NoError(t, err)

	assert.Equal(t, 100, res.TableBet)
	assert.Equal(t, 100, res.MinRaise, "pot-limit min raise tracks the capped bet")
}

func TestPotLimitRaiseCapped(t *testing.T) {
	t.Parallel()

	m := &Manager{SmallBlind: 5, BigBlind: 10, PotLimit: true}
	actor := &Player{ID: "a", Stack: 2000, Bet: 20}
	players := []*Player{
		actor,
		{ID: "b", Stack: 900, Bet: 100},
		{ID: "c", Stack: 900, Bet: 100},
	}
	pot := &PotContext{Pot: 300, Players: players}

	res, err := m.ProcessAction(actor, Action{Type: Raise, PlayerID: "a", Amount: 1000}, 100, 50, pot)
	require.NoError(t, err)

	assert.Equal(t, 480, res.TableBet)
	assert.Equal(t, 380, res.MinRaise)
	assert.Equal(t, 460, res.PotDelta)
}

func TestLimits(t *testing.T) {
	t.Parallel()

	m := newManager()
	p := &Player{ID: "a", Stack: 450, Bet: 50}

	limits := m.Limits(p, 100, 60)

	assert.Equal(t, 10, limits.MinBet)
	assert.Equal(t, 160, limits.MinRaise)
	assert.Equal(t, 500, limits.MaxBet)
}

func TestValidActions(t *testing.T) {
	t.Parallel()

	m := newManager()

	tests := []struct {
		name     string
		player   *Player
		tableBet int
		expect   []ActionType
	}{
		{
			name:   "no live bet",
			player: &Player{ID: "a", Stack: 100},
			expect: []ActionType{Fold, Check, Bet},
		},
		{
			name:     "facing a bet with chips to raise",
			player:   &Player{ID: "a", Stack: 100},
			tableBet: 30,
			expect:   []ActionType{Fold, Call, Raise},
		},
		{
			name:     "facing a bet covering the whole stack",
			player:   &Player{ID: "a", Stack: 25},
			tableBet: 30,
			expect:   []ActionType{Fold, Call},
		},
		{
			name:     "big blind option",
			player:   &Player{ID: "a", Stack: 90, Bet: 10},
			tableBet: 10,
			expect:   []ActionType{Fold, Check, Raise},
		},
		{
			name:   "folded player has no actions",
			player: &Player{ID: "a", Stack: 100, Folded: true},
			expect: nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := m.ValidActions(tc.player, tc.tableBet, m.BigBlind)
			assert.Equal(t, tc.expect, got)
		})
	}
}
