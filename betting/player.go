// Package betting implements the wagering engine for a poker hand: blind
// posting, per-action legality and state transitions under no-limit and
// pot-limit rules, and side-pot construction and distribution at showdown.
//
// The engine is synchronous and single-threaded. Player records are owned
// by one external game-flow controller per hand; the engine mutates them
// in place and assumes the controller serializes all actions for a hand.
package betting

// Player is the wagering state of one seat for the current hand. Stack
// holds uncommitted chips; Bet is the total committed this betting round
// (not an increment). The sum Stack+Bet plus the collected pot is
// invariant across any action sequence within a hand.
type Player struct {
	ID       string
	Seat     int // seat index, used for blind assignment
	Stack    int
	Bet      int
	Folded   bool
	AllIn    bool
	HasActed bool // set by every processed action; callers use it to detect end of round
}

// CanAct returns true if the player can still take actions this round.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}

// findBySeat returns the player occupying the given seat, or nil.
func findBySeat(players []*Player, seat int) *Player {
	for _, p := range players {
		if p.Seat == seat {
			return p
		}
	}
	return nil
}
