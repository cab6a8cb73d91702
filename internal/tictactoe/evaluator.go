package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const (
	UtilityXWins = 1
	UtilityDraw  = 0
	UtilityOWins = -1
)

// Utility returns X's payoff for a finished board.
func Utility(board entity.Board) (int, error) {
	if !board.IsTerminal() {
		return 0, fmt.Errorf("%w: utility of unfinished board %s", apperror.ErrInvalidState, board)
	}

	switch winner, _ := board.Winner(); winner {
	case entity.X:
		return UtilityXWins, nil
	case entity.O:
		return UtilityOWins, nil
	default:
		return UtilityDraw, nil
	}
}
