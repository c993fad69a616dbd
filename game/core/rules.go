package core

type Move struct {
	From Position
	To   Position
}

type MoveKind int

const (
	Illegal MoveKind = iota
	Simple
	Capture
)

func (k MoveKind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Capture:
		return "capture"
	}
	return "illegal"
}

type Reason int

const (
	ReasonOK Reason = iota
	ReasonOutOfBounds
	ReasonOccupied
	ReasonNotYourPiece
	ReasonWrongDirection
	ReasonNoJump
	ReasonBadGeometry
)

// Err maps a reason to its sentinel error; ReasonOK maps to nil.
func (r Reason) Err() error {
	switch r {
	case ReasonOutOfBounds:
		return ErrOutOfBounds
	case ReasonOccupied:
		return ErrOccupied
	case ReasonNotYourPiece:
		return ErrNotYourPiece
	case ReasonWrongDirection:
		return ErrWrongDirection
	case ReasonNoJump:
		return ErrNoJump
	case ReasonBadGeometry:
		return ErrBadGeometry
	}
	return nil
}

func (r Reason) String() string {
	if err := r.Err(); err != nil {
		return err.Error()
	}
	return "ok"
}

// Outcome is the result of classifying a move. Captured is only meaningful
// when Kind is Capture.
type Outcome struct {
	Kind     MoveKind
	Reason   Reason
	Captured Position
}

func (o Outcome) Legal() bool {
	return o.Kind != Illegal
}

func illegal(r Reason) Outcome {
	return Outcome{Kind: Illegal, Reason: r}
}

// classify decides a single move for the player to move. It reads the board
// and never writes it.
func classify(b *Board, toMove Player, m Move) Outcome {
	if !m.From.InBounds() || !m.To.InBounds() {
		return illegal(ReasonOutOfBounds)
	}
	if !b.At(m.To).Empty() {
		return illegal(ReasonOccupied)
	}
	piece, ok := b.At(m.From).Piece()
	if !ok || piece.Owner != toMove {
		return illegal(ReasonNotYourPiece)
	}

	dx := m.To.X - m.From.X
	dy := m.To.Y - m.From.Y
	if piece.Kind == Normal && dy*piece.Owner.forward() <= 0 {
		return illegal(ReasonWrongDirection)
	}

	switch {
	case abs(dx) == 1 && abs(dy) == 1:
		return Outcome{Kind: Simple}
	case abs(dx) == 2 && abs(dy) == 2:
		mid := Position{X: m.From.X + dx/2, Y: m.From.Y + dy/2}
		if b.At(mid).Owner() == toMove.Opponent() {
			return Outcome{Kind: Capture, Captured: mid}
		}
		return illegal(ReasonNoJump)
	}
	return illegal(ReasonBadGeometry)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
