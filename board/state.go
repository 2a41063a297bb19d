package board

// State classifies a position for the side to move. Checkmate and check states are
// named after the side whose king is attacked.
type State uint8

const (
	StateUnknown State = iota
	StateRunning
	StateCheckWhite
	StateCheckBlack
	StateCheckmateWhite
	StateCheckmateBlack
	StateStalemate
	// no capture or pawn move in the last 100 plies
	StateFiftyMoveViolated
	// neither side can force mate with the remaining pieces
	StateInsufficientMaterial
)

var stateNames = [...]string{
	StateUnknown:              "StateUnknown",
	StateRunning:              "StateRunning",
	StateCheckWhite:           "StateCheckWhite",
	StateCheckBlack:           "StateCheckBlack",
	StateCheckmateWhite:       "StateCheckmateWhite",
	StateCheckmateBlack:       "StateCheckmateBlack",
	StateStalemate:            "StateStalemate",
	StateFiftyMoveViolated:    "StateFiftyMoveViolated",
	StateInsufficientMaterial: "StateInsufficientMaterial",
}

// IsRunning reports whether the side to move still has a legal move to play.
func (s State) IsRunning() bool {
	return s == StateRunning || s.IsCheck()
}

func (s State) IsCheck() bool {
	return s == StateCheckWhite || s == StateCheckBlack
}

func (s State) IsCheckmate() bool {
	return s == StateCheckmateWhite || s == StateCheckmateBlack
}

func (s State) IsDraw() bool {
	return s == StateStalemate || s == StateFiftyMoveViolated || s == StateInsufficientMaterial
}

// Result returns the game result in PGN notation, "*" while the game goes on.
func (s State) Result() string {
	switch {
	case s == StateCheckmateWhite:
		return "0-1"
	case s == StateCheckmateBlack:
		return "1-0"
	case s.IsDraw():
		return "1/2-1/2"
	default:
		return "*"
	}
}

func (s State) String() string {
	if int(s) >= len(stateNames) {
		return ""
	}
	return stateNames[s]
}
