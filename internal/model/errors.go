package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState means the position cannot be evaluated, e.g. the side
	// to move has no king. Only a reset recovers from it.
	ErrInvalidState = errors.New("invalid game state")

	ErrInvalidSquare      = errors.New("square out of range")
	ErrIllegalMove        = errors.New("illegal move")
	ErrPromotionPending   = errors.New("promotion pending")
	ErrNoPromotionPending = errors.New("no promotion pending")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
	ErrGameOver           = errors.New("game is over")
)

// MoveError attaches the attempted squares to one of the sentinel errors.
type MoveError struct {
	Err  error
	From Position
	To   Position
}

func (e *MoveError) Error() string {
	if e.To != NoPosition {
		return fmt.Sprintf("move %v-%v: %v", e.From, e.To, e.Err)
	}
	return fmt.Sprintf("square %v: %v", e.From, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

func moveError(err error, from, to Position) error {
	return &MoveError{Err: err, From: from, To: to}
}
