package board

type Side uint8

const (
	SideWhite Side = iota
	SideBlack
	SideUnknown
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	return s ^ 1
}

// Forward returns the square offset of a single pawn push.
func (s Side) Forward() int8 {
	if s == SideWhite {
		return 8
	}
	return -8
}
