package apperror

import "errors"

var (
	ErrInvalidAction    = errors.New("invalid action")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidBoard     = errors.New("invalid board")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidMark      = errors.New("invalid player mark")
	ErrPositionNotFound = errors.New("position not found")
)
