package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	WinnerX   = "X"
	WinnerO   = "O"
	WinnerTie = "-"
)

// Game is a match between a human and the engine.
type Game struct {
	ID        string `json:"id"`
	Board     Board  `json:"board"`
	HumanMark Player `json:"human_mark"`
	Status    string `json:"status"`
	Winner    string `json:"winner"`
}

func NewGame(id string, humanMark Player) *Game {
	return &Game{
		ID:        id,
		Board:     Initial(),
		HumanMark: humanMark,
		Status:    StatusOngoing,
	}
}

func (that *Game) EngineMark() Player {
	return that.HumanMark.Opponent()
}

// Turn returns the mark to move, or Empty once the game is over.
func (that *Game) Turn() Player {
	if that.IsFinished() {
		return Empty
	}
	return that.Board.CurrentPlayer()
}

func (that *Game) IsEngineTurn() bool {
	return that.Turn() == that.EngineMark()
}

func (that *Game) MakeTurn(mark Player, action Action) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Board.CurrentPlayer() != mark {
		return apperror.ErrNotYourTurn
	}

	next, err := that.Board.Apply(action)
	if err != nil {
		return fmt.Errorf("failed to apply %s: %w", action, err)
	}

	that.Board = next
	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	if winner, ok := that.Board.Winner(); ok {
		that.Winner = winner.String()
		that.Status = StatusFinished
		return
	}

	if that.Board.IsFull() {
		that.Winner = WinnerTie
		that.Status = StatusFinished
		return
	}

	that.Winner = ""
	that.Status = StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: unknown game status %q", apperror.ErrInvalidState, that.Status)
	}
}
