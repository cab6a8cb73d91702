package tictactoe

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// Search runs an exhaustive minimax over the game tree below a board.
// The zero value is ready to use. A Search must not be shared between goroutines.
type Search struct {
	// Nodes counts boards visited since the Search was created.
	Nodes int
}

// OptimalAction returns the best move for the player to move on board.
func OptimalAction(board entity.Board) (entity.Action, error) {
	var search Search
	return search.OptimalAction(context.Background(), board)
}

// OptimalActionContext is OptimalAction with cancellation checked at every node.
func OptimalActionContext(ctx context.Context, board entity.Board) (entity.Action, error) {
	var search Search
	return search.OptimalAction(ctx, board)
}

// Value returns the minimax value of board from X's point of view.
func Value(board entity.Board) int {
	var search Search
	// a background context never cancels and utility is only taken at terminal nodes
	value, _ := search.Value(context.Background(), board)
	return value
}

func ValueContext(ctx context.Context, board entity.Board) (int, error) {
	var search Search
	return search.Value(ctx, board)
}

// Evaluate scores every legal action on a non-terminal board, in row-major order.
func Evaluate(board entity.Board) ([]entity.ScoredAction, error) {
	var search Search
	return search.Evaluate(context.Background(), board)
}

func (that *Search) OptimalAction(ctx context.Context, board entity.Board) (entity.Action, error) {
	scores, err := that.Evaluate(ctx, board)
	if err != nil {
		return entity.Action{}, err
	}

	return Best(board.CurrentPlayer(), scores).Action, nil
}

// Best picks the maximum for X and the minimum for O. Ties keep the earliest entry.
// scores must not be empty.
func Best(player entity.Player, scores []entity.ScoredAction) entity.ScoredAction {
	best := scores[0]
	for _, scored := range scores[1:] {
		if better(player, scored.Value, best.Value) {
			best = scored
		}
	}
	return best
}

func (that *Search) Evaluate(ctx context.Context, board entity.Board) ([]entity.ScoredAction, error) {
	if board.IsTerminal() {
		return nil, fmt.Errorf("%w: no move on finished board %s", apperror.ErrInvalidState, board)
	}

	actions := board.LegalActions()
	scores := make([]entity.ScoredAction, 0, len(actions))
	for _, action := range actions {
		next, err := board.Apply(action)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", action, err)
		}

		value, err := that.Value(ctx, next)
		if err != nil {
			return nil, err
		}

		scores = append(scores, entity.ScoredAction{Action: action, Value: value})
	}

	return scores, nil
}

func (that *Search) Value(ctx context.Context, board entity.Board) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("search interrupted: %w", err)
	}

	that.Nodes++

	if board.IsTerminal() {
		return Utility(board)
	}

	player := board.CurrentPlayer()
	best, first := 0, true
	for _, action := range board.LegalActions() {
		next, err := board.Apply(action)
		if err != nil {
			return 0, fmt.Errorf("failed to apply %s: %w", action, err)
		}

		value, err := that.Value(ctx, next)
		if err != nil {
			return 0, err
		}

		if first || better(player, value, best) {
			best, first = value, false
		}
	}

	return best, nil
}

// better reports whether candidate strictly improves on best for player.
// Ties keep the earlier action.
func better(player entity.Player, candidate, best int) bool {
	if player == entity.X {
		return candidate > best
	}
	return candidate < best
}
