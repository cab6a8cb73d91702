package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

const positionKeyPrefix = "position:"

// SolvedPosition is the engine's verdict for one board.
type SolvedPosition struct {
	Action entity.Action `json:"action"`
	Value  int           `json:"value"`
}

type PositionRepository interface {
	Save(ctx context.Context, board entity.Board, position SolvedPosition) error
	Get(ctx context.Context, board entity.Board) (SolvedPosition, error)
}

type dbPosition struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPositionRepository caches solved boards under "position:<board>".
func NewPositionRepository(client *redis.Client, ttl time.Duration) PositionRepository {
	return &dbPosition{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbPosition) Save(ctx context.Context, board entity.Board, position SolvedPosition) error {
	positionJSON, err := json.Marshal(position)
	if err != nil {
		return fmt.Errorf("could not marshal position: %w", err)
	}

	if err = that.client.Set(ctx, positionKeyPrefix+board.String(), positionJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set position: %w", err)
	}

	return nil
}

func (that *dbPosition) Get(ctx context.Context, board entity.Board) (SolvedPosition, error) {
	response, err := that.client.Get(ctx, positionKeyPrefix+board.String()).Result()
	if errors.Is(err, redis.Nil) {
		return SolvedPosition{}, apperror.ErrPositionNotFound
	}

	if err != nil {
		return SolvedPosition{}, fmt.Errorf("failed to get position: %w", err)
	}

	var position SolvedPosition
	if err = json.Unmarshal([]byte(response), &position); err != nil {
		return SolvedPosition{}, fmt.Errorf("failed to unmarshal position: %w", err)
	}

	return position, nil
}
