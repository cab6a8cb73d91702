package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

func mustParse(t *testing.T, raw string) entity.Board {
	t.Helper()

	board, err := entity.ParseBoard(raw)
	require.NoError(t, err)

	return board
}

func TestSolverService_BestMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns cached position without searching", func(t *testing.T) {
		// Given: a cache that already knows the board
		repo := &mockPositionRepo{}
		solver := NewSolverService(discardLogger(), repo)
		board := mustParse(t, "XX..O....")
		cached := repository.SolvedPosition{Action: entity.Action{Row: 0, Col: 2}, Value: 0}

		repo.On("Get", mock.Anything, board).Return(cached, nil).Once()

		// When: the best move is requested
		solved, err := solver.BestMove(ctx, board)

		// Then: the cached verdict comes back and nothing is saved
		require.NoError(t, err)
		assert.Equal(t, cached, solved)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Solves and caches on miss", func(t *testing.T) {
		// Given: an empty cache
		repo := &mockPositionRepo{}
		solver := NewSolverService(discardLogger(), repo)
		board := mustParse(t, "XX..O....")
		expected := repository.SolvedPosition{Action: entity.Action{Row: 0, Col: 2}, Value: tictactoe.UtilityDraw}

		repo.On("Get", mock.Anything, board).Return(repository.SolvedPosition{}, apperror.ErrPositionNotFound).Once()
		repo.On("Save", mock.Anything, board, expected).Return(nil).Once()

		// When: the best move is requested
		solved, err := solver.BestMove(ctx, board)

		// Then: O blocks and the verdict is stored
		require.NoError(t, err)
		assert.Equal(t, expected, solved)
		repo.AssertExpectations(t)
	})

	t.Run("Cache failures do not fail the search", func(t *testing.T) {
		// Given: a cache that is down
		repo := &mockPositionRepo{}
		solver := NewSolverService(discardLogger(), repo)
		board := mustParse(t, "XO.XO....")

		repo.On("Get", mock.Anything, board).Return(repository.SolvedPosition{}, errRedisDown).Once()
		repo.On("Save", mock.Anything, board, mock.Anything).Return(errRedisDown).Once()

		// When: the best move is requested
		solved, err := solver.BestMove(ctx, board)

		// Then: X still takes the winning square
		require.NoError(t, err)
		assert.Equal(t, entity.Action{Row: 2, Col: 0}, solved.Action)
		assert.Equal(t, tictactoe.UtilityXWins, solved.Value)
	})

	t.Run("Error on finished board", func(t *testing.T) {
		repo := &mockPositionRepo{}
		solver := NewSolverService(discardLogger(), repo)

		_, err := solver.BestMove(ctx, mustParse(t, "XXXOO...."))

		require.ErrorIs(t, err, apperror.ErrInvalidState)
		repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Cancelled context stops the search", func(t *testing.T) {
		repo := &mockPositionRepo{}
		solver := NewSolverService(discardLogger(), repo)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		repo.On("Get", mock.Anything, entity.Initial()).Return(repository.SolvedPosition{}, apperror.ErrPositionNotFound).Once()

		_, err := solver.BestMove(cancelled, entity.Initial())

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSolverService_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("Finished board reports utility only", func(t *testing.T) {
		// Given: a board O has won
		repo := &mockPositionRepo{}
		solver := NewSolverService(discardLogger(), repo)

		// When: it is analysed
		analysis, err := solver.Analyze(ctx, mustParse(t, "XXOXO.O.."))

		// Then: the winner and utility are filled and no move is suggested
		require.NoError(t, err)
		assert.True(t, analysis.Terminal)
		assert.Equal(t, entity.O, analysis.Winner)
		require.NotNil(t, analysis.Utility)
		assert.Equal(t, tictactoe.UtilityOWins, *analysis.Utility)
		assert.Nil(t, analysis.BestAction)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Ongoing board reports best action and scores", func(t *testing.T) {
		// Given: O must block the top row
		repo := &mockPositionRepo{}
		solver := NewSolverService(discardLogger(), repo)
		board := mustParse(t, "XX..O....")

		repo.On("Save", mock.Anything, board, mock.Anything).Return(nil).Once()

		// When: it is analysed
		analysis, err := solver.Analyze(ctx, board)

		// Then: the block is recommended and every legal action is scored
		require.NoError(t, err)
		assert.False(t, analysis.Terminal)
		assert.Equal(t, entity.O, analysis.CurrentPlayer)
		require.NotNil(t, analysis.BestAction)
		assert.Equal(t, entity.Action{Row: 0, Col: 2}, *analysis.BestAction)
		require.NotNil(t, analysis.Value)
		assert.Equal(t, tictactoe.UtilityDraw, *analysis.Value)
		assert.Len(t, analysis.Scores, len(analysis.LegalActions))
		assert.Positive(t, analysis.Nodes)
		repo.AssertExpectations(t)
	})
}
