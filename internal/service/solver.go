package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type SolverService interface {
	Analyze(ctx context.Context, board entity.Board) (*entity.Analysis, error)
	BestMove(ctx context.Context, board entity.Board) (repository.SolvedPosition, error)
}

type positionRepo interface {
	Save(ctx context.Context, board entity.Board, position repository.SolvedPosition) error
	Get(ctx context.Context, board entity.Board) (repository.SolvedPosition, error)
}

type solverService struct {
	logger       *slog.Logger
	positionRepo positionRepo
}

func NewSolverService(logger *slog.Logger, positionRepo positionRepo) SolverService {
	return &solverService{
		logger:       logger.With("component", "solver"),
		positionRepo: positionRepo,
	}
}

// Analyze always runs a fresh search so that per-action scores and node counts are reported.
func (that *solverService) Analyze(ctx context.Context, board entity.Board) (*entity.Analysis, error) {
	analysis := &entity.Analysis{
		Board:         board,
		CurrentPlayer: board.CurrentPlayer(),
		LegalActions:  board.LegalActions(),
		Terminal:      board.IsTerminal(),
	}

	if winner, ok := board.Winner(); ok {
		analysis.Winner = winner
	}

	if analysis.Terminal {
		utility, err := tictactoe.Utility(board)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate board: %w", err)
		}
		analysis.Utility = &utility

		return analysis, nil
	}

	var search tictactoe.Search
	scores, err := search.Evaluate(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate board: %w", err)
	}

	best := tictactoe.Best(board.CurrentPlayer(), scores)
	analysis.BestAction = &best.Action
	analysis.Value = &best.Value
	analysis.Scores = scores
	analysis.Nodes = search.Nodes

	that.remember(ctx, board, repository.SolvedPosition{Action: best.Action, Value: best.Value})

	return analysis, nil
}

func (that *solverService) BestMove(ctx context.Context, board entity.Board) (repository.SolvedPosition, error) {
	log := that.logger.With("method", "BestMove", "board", board.String())

	if board.IsTerminal() {
		return repository.SolvedPosition{}, fmt.Errorf("%w: board %s is finished", apperror.ErrInvalidState, board)
	}

	cached, err := that.positionRepo.Get(ctx, board)
	if err == nil {
		log.Debug("position served from cache")
		return cached, nil
	}

	if !errors.Is(err, apperror.ErrPositionNotFound) {
		log.Warn("failed to read position cache", "error", err)
	}

	var search tictactoe.Search
	scores, err := search.Evaluate(ctx, board)
	if err != nil {
		return repository.SolvedPosition{}, fmt.Errorf("failed to search board: %w", err)
	}

	best := tictactoe.Best(board.CurrentPlayer(), scores)
	solved := repository.SolvedPosition{Action: best.Action, Value: best.Value}
	that.remember(ctx, board, solved)

	log.Debug("position solved", "action", best.Action.String(), "value", best.Value, "nodes", search.Nodes)

	return solved, nil
}

// remember stores a solved position. The cache only saves work, so failures are logged and dropped.
func (that *solverService) remember(ctx context.Context, board entity.Board, solved repository.SolvedPosition) {
	if err := that.positionRepo.Save(ctx, board, solved); err != nil {
		that.logger.Warn("failed to cache position", "board", board.String(), "error", err)
	}
}
