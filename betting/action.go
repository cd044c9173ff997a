package betting

// ActionType identifies a player action
type ActionType int

const (
	Bet ActionType = iota
	Call
	Raise
	Check
	Fold
)

func (a ActionType) String() string {
	return [...]string{"bet", "call", "raise", "check", "fold"}[a]
}

// Action is one player's move for the current turn. Amount is the total
// target bet for bet and raise, not a delta on top of what the player
// already has in.
type Action struct {
	Type     ActionType
	PlayerID string
	Amount   int
}

// ActionResult reports the effect of a processed action: how many chips
// moved into the pot and the updated table scalars the controller must
// carry into the next turn.
type ActionResult struct {
	PotDelta int
	TableBet int
	MinRaise int
}

// BlindResult reports the effect of posting blinds.
type BlindResult struct {
	PotDelta int
	TableBet int
}

// Limits describes the legal bet window for a player facing the current
// table state. MinRaise is the minimum legal raise-to total.
type Limits struct {
	MinBet   int
	MinRaise int
	MaxBet   int
}
