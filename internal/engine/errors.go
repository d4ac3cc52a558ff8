package engine

import "errors"

// Protocol violations are rejected synchronously and never mutate state.
var (
	ErrNotYourTurn   = errors.New("not your turn")
	ErrCardNotInHand = errors.New("card not in hand")
	ErrIllegalMove   = errors.New("illegal move")
	ErrGameNotActive = errors.New("game not active")
)
