package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

type GameUseCase interface {
	NewGame(ctx context.Context, humanMark entity.Player) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, action entity.Action) (*entity.Game, error)
}

type gameService interface {
	CreateGame(ctx context.Context, humanMark entity.Player) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
}

type botService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Action, error)
}

type gameUseCase struct {
	logger      *slog.Logger
	gameService gameService
	botService  botService
}

func NewGameUseCase(logger *slog.Logger, gameService gameService, botService botService) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "game"),
		gameService: gameService,
		botService:  botService,
	}
}

// NewGame creates a game. When the human plays O the engine opens straight away.
func (that *gameUseCase) NewGame(ctx context.Context, humanMark entity.Player) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx, humanMark)
	if err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	if !game.IsEngineTurn() {
		return game, nil
	}

	if err = that.engineReply(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn plays the human's move and, if the game goes on, the engine's answer.
func (that *gameUseCase) MakeTurn(ctx context.Context, id string, action entity.Action) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	game, err := that.gameService.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if err = game.MakeTurn(game.HumanMark, action); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	log.Debug("human moved", "action", action.String(), "board", game.Board.String())

	if game.IsFinished() {
		if err = that.gameService.UpdateGame(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to update game: %w", err)
		}

		log.Info("game finished", "winner", game.Winner)

		return game, nil
	}

	if err = that.engineReply(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *gameUseCase) engineReply(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "engineReply", "gameID", game.ID)

	action, err := that.botService.MakeTurn(ctx, game)
	if err != nil {
		return fmt.Errorf("engine failed to make turn: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	log.Debug("engine moved", "action", action.String(), "board", game.Board.String())

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return nil
}
