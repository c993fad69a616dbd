package core

import (
	"errors"
	"fmt"
)

var ErrInvalidMove = errors.New("invalid move")

var (
	ErrOutOfBounds    = fmt.Errorf("%w: square off the board", ErrInvalidMove)
	ErrOccupied       = fmt.Errorf("%w: destination occupied", ErrInvalidMove)
	ErrNotYourPiece   = fmt.Errorf("%w: no piece of the player to move", ErrInvalidMove)
	ErrWrongDirection = fmt.Errorf("%w: normal pieces only move forward", ErrInvalidMove)
	ErrNoJump         = fmt.Errorf("%w: no opponent piece to jump", ErrInvalidMove)
	ErrBadGeometry    = fmt.Errorf("%w: not a diagonal step or jump", ErrInvalidMove)
)
