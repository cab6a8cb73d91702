package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockPositionRepo struct {
	mock.Mock
}

func (that *mockPositionRepo) Save(ctx context.Context, board entity.Board, position repository.SolvedPosition) error {
	args := that.Called(ctx, board, position)
	return args.Error(0)
}

func (that *mockPositionRepo) Get(ctx context.Context, board entity.Board) (repository.SolvedPosition, error) {
	args := that.Called(ctx, board)
	return args.Get(0).(repository.SolvedPosition), args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockBestMover struct {
	mock.Mock
}

func (that *mockBestMover) BestMove(ctx context.Context, board entity.Board) (repository.SolvedPosition, error) {
	args := that.Called(ctx, board)
	return args.Get(0).(repository.SolvedPosition), args.Error(1)
}
