package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
)

var ErrNotBotTurn = errors.New("it's not the bot's turn")

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Action, error)
}

type bestMover interface {
	BestMove(ctx context.Context, board entity.Board) (repository.SolvedPosition, error)
}

type botService struct {
	solver bestMover
}

func NewBotService(solver bestMover) BotService {
	return &botService{
		solver: solver,
	}
}

// MakeTurn plays the engine's optimal move on game and returns it.
func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (entity.Action, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return entity.Action{}, err
	}

	if !game.IsEngineTurn() {
		return entity.Action{}, ErrNotBotTurn
	}

	solved, err := that.solver.BestMove(ctx, game.Board)
	if err != nil {
		return entity.Action{}, fmt.Errorf("bot failed to find a move: %w", err)
	}

	if err = game.MakeTurn(game.EngineMark(), solved.Action); err != nil {
		return entity.Action{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return solved.Action, nil
}
