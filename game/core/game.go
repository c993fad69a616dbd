package core

type Status int

const (
	InProgress Status = iota
	Over
)

func (s Status) String() string {
	if s == Over {
		return "over"
	}
	return "in_progress"
}

// Game is the rules engine for a single game. It is not safe for concurrent
// use; callers sharing a Game must hold one lock around every call.
type Game struct {
	board         Board
	currentPlayer Player
}

func New() *Game {
	return &Game{
		board:         StartingBoard(),
		currentPlayer: PlayerA,
	}
}

// NewFromBoard starts a game from an arbitrary position with toMove to play.
func NewFromBoard(b Board, toMove Player) *Game {
	if toMove != PlayerB {
		toMove = PlayerA
	}
	return &Game{board: b, currentPlayer: toMove}
}

// Board returns a copy of the current position.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) At(p Position) Square {
	return g.board.At(p)
}

func (g *Game) CurrentPlayer() Player {
	return g.currentPlayer
}

func (g *Game) Classify(m Move) Outcome {
	return classify(&g.board, g.currentPlayer, m)
}

func (g *Game) IsValidMove(startX, startY, endX, endY int) bool {
	return g.Classify(newMove(startX, startY, endX, endY)).Legal()
}

func (g *Game) MovePiece(startX, startY, endX, endY int) bool {
	return g.Move(newMove(startX, startY, endX, endY)) == nil
}

// Move applies m or returns the reason it is illegal, wrapping
// ErrInvalidMove. A rejected move leaves the game untouched.
func (g *Game) Move(m Move) error {
	out := g.Classify(m)
	if !out.Legal() {
		return out.Reason.Err()
	}
	g.apply(m, out)
	return nil
}

func (g *Game) apply(m Move, out Outcome) {
	if out.Kind == Capture {
		g.board.set(out.Captured, Square{})
	}

	sq := g.board.At(m.From)
	g.board.set(m.From, Square{})
	if sq.piece.Owner.promotionRow() == m.To.Y {
		sq.piece.Kind = King
	}
	g.board.set(m.To, sq)

	g.currentPlayer = g.currentPlayer.Opponent()
}

// IsGameOver reports whether the player to move has no legal step or jump.
func (g *Game) IsGameOver() bool {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if g.board[y][x].Owner() != g.currentPlayer {
				continue
			}
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					if g.IsValidMove(x, y, x+dx, y+dy) {
						return false
					}
				}
			}
		}
	}
	return true
}

func (g *Game) Status() Status {
	if g.IsGameOver() {
		return Over
	}
	return InProgress
}

// LegalMoves lists the legal destinations of the piece at from, ordered by
// destination row then column.
func (g *Game) LegalMoves(from Position) []Move {
	var moves []Move
	if g.board.At(from).Owner() != g.currentPlayer {
		return moves
	}
	for y := from.Y - 2; y <= from.Y+2; y++ {
		for x := from.X - 2; x <= from.X+2; x++ {
			m := Move{From: from, To: Position{X: x, Y: y}}
			if g.Classify(m).Legal() {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// Count returns how many normal pieces and kings p has on the board.
func (g *Game) Count(p Player) (normal, kings int) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			piece, ok := g.board[y][x].Piece()
			if !ok || piece.Owner != p {
				continue
			}
			if piece.Kind == King {
				kings++
			} else {
				normal++
			}
		}
	}
	return normal, kings
}

func newMove(startX, startY, endX, endY int) Move {
	return Move{
		From: Position{X: startX, Y: startY},
		To:   Position{X: endX, Y: endY},
	}
}
