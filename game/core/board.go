package core

import (
	"fmt"
	"strings"
)

const BoardSize = 8

type Player int

const (
	None Player = iota
	PlayerA
	PlayerB
)

func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return None
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	}
	return "none"
}

// promotionRow is the row a piece of p must reach to be promoted.
func (p Player) promotionRow() int {
	if p == PlayerA {
		return 0
	}
	return BoardSize - 1
}

// forward is the sign of dy for a normal piece of p.
func (p Player) forward() int {
	if p == PlayerA {
		return -1
	}
	return 1
}

type PieceKind int

const (
	Normal PieceKind = iota
	King
)

func (k PieceKind) String() string {
	if k == King {
		return "king"
	}
	return "normal"
}

type Piece struct {
	Owner Player
	Kind  PieceKind
}

// Square is either empty or holds exactly one piece.
type Square struct {
	piece    Piece
	occupied bool
}

func Occupied(p Piece) Square {
	return Square{piece: p, occupied: true}
}

func (s Square) Empty() bool {
	return !s.occupied
}

func (s Square) Piece() (Piece, bool) {
	return s.piece, s.occupied
}

// Owner reports None for an empty square.
func (s Square) Owner() Player {
	if !s.occupied {
		return None
	}
	return s.piece.Owner
}

type Position struct {
	X, Y int
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Board is a value type: copies never share squares.
type Board [BoardSize][BoardSize]Square

func StartingBoard() Board {
	var b Board
	for y := 0; y < BoardSize; y++ {
		for x := y % 2; x < BoardSize; x += 2 {
			switch {
			case y < 3:
				b[y][x] = Occupied(Piece{Owner: PlayerB})
			case y >= BoardSize-3:
				b[y][x] = Occupied(Piece{Owner: PlayerA})
			}
		}
	}
	return b
}

func (b *Board) At(p Position) Square {
	if !p.InBounds() {
		return Square{}
	}
	return b[p.Y][p.X]
}

func (b *Board) set(p Position, s Square) {
	b[p.Y][p.X] = s
}

func (b Board) String() string {
	var sb strings.Builder
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			sb.WriteByte(squareRune(b[y][x]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func squareRune(s Square) byte {
	p, ok := s.Piece()
	if !ok {
		return '.'
	}
	c := byte('a')
	if p.Owner == PlayerB {
		c = 'b'
	}
	if p.Kind == King {
		c -= 'a' - 'A'
	}
	return c
}

// ParseBoard reads the format written by Board.String. Blank lines and
// surrounding whitespace are ignored; any other character is an error.
func ParseBoard(s string) (Board, error) {
	var b Board
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) != BoardSize {
		return b, fmt.Errorf("parse board: want %d rows, got %d", BoardSize, len(rows))
	}
	for y, row := range rows {
		if len(row) != BoardSize {
			return b, fmt.Errorf("parse board: row %d has %d columns", y, len(row))
		}
		for x := 0; x < BoardSize; x++ {
			switch row[x] {
			case '.':
			case 'a':
				b[y][x] = Occupied(Piece{Owner: PlayerA})
			case 'b':
				b[y][x] = Occupied(Piece{Owner: PlayerB})
			case 'A':
				b[y][x] = Occupied(Piece{Owner: PlayerA, Kind: King})
			case 'B':
				b[y][x] = Occupied(Piece{Owner: PlayerB, Kind: King})
			default:
				return b, fmt.Errorf("parse board: unexpected %q at %v", row[x], Position{x, y})
			}
		}
	}
	return b, nil
}
