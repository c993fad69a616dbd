package network

import (
	"encoding/json"

	"checkers/game/core"
)

type Message struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content,omitempty"`
}

// inbound is what clients send; Content is decoded per Type.
type inbound struct {
	Type    string          `json:"type" validate:"required,oneof=move state moves"`
	Content json.RawMessage `json:"content"`
}

// Coord is a square as sent by clients. Range checking is the engine's job.
type Coord struct {
	X *int `json:"x" form:"x" binding:"required" validate:"required"`
	Y *int `json:"y" form:"y" binding:"required" validate:"required"`
}

func (c Coord) Position() core.Position {
	return core.Position{X: *c.X, Y: *c.Y}
}

type MoveRequest struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
}

func (m MoveRequest) Move() core.Move {
	return core.Move{From: m.From.Position(), To: m.To.Position()}
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func pointOf(p core.Position) Point {
	return Point{X: p.X, Y: p.Y}
}

type PieceCount struct {
	Normal int `json:"normal"`
	Kings  int `json:"kings"`
}

// Cell codes: 0 empty, 1 A, 2 B, 3 A king, 4 B king.
const (
	CellEmpty = iota
	CellA
	CellB
	CellKingA
	CellKingB
)

type GameState struct {
	ID            string                `json:"id"`
	Board         [8][8]int             `json:"board"`
	CurrentPlayer string                `json:"currentPlayer"`
	YourColor     string                `json:"yourColor,omitempty"`
	Status        string                `json:"status"`
	Winner        string                `json:"winner,omitempty"`
	Pieces        map[string]PieceCount `json:"pieces"`
}

type LegalMoves struct {
	From Point   `json:"from"`
	To   []Point `json:"to"`
}

func cellOf(sq core.Square) int {
	p, ok := sq.Piece()
	if !ok {
		return CellEmpty
	}
	c := CellA
	if p.Owner == core.PlayerB {
		c = CellB
	}
	if p.Kind == core.King {
		c += 2
	}
	return c
}

// newGameState renders g for the player sitting in seat you (None for REST
// callers).
func newGameState(id string, g *core.Game, you core.Player) GameState {
	st := GameState{
		ID:            id,
		CurrentPlayer: g.CurrentPlayer().String(),
		Status:        g.Status().String(),
		Pieces:        make(map[string]PieceCount, 2),
	}
	if you != core.None {
		st.YourColor = you.String()
	}

	b := g.Board()
	for y := range b {
		for x := range b[y] {
			st.Board[y][x] = cellOf(b[y][x])
		}
	}

	for _, p := range []core.Player{core.PlayerA, core.PlayerB} {
		normal, kings := g.Count(p)
		st.Pieces[p.String()] = PieceCount{Normal: normal, Kings: kings}
	}

	// The engine only reports that the side to move is stuck; the other
	// side is taken as the winner.
	if st.Status == core.Over.String() {
		st.Winner = g.CurrentPlayer().Opponent().String()
	}
	return st
}

func newLegalMoves(from core.Position, moves []core.Move) LegalMoves {
	lm := LegalMoves{From: pointOf(from), To: make([]Point, 0, len(moves))}
	for _, m := range moves {
		lm.To = append(lm.To, pointOf(m.To))
	}
	return lm
}
