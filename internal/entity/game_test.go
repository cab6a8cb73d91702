package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a game is created for a human playing O
	game := NewGame("123", O)

	// Then: the game starts ongoing on the empty board with the engine to move
	expected := &Game{
		ID:        "123",
		Board:     Initial(),
		HumanMark: O,
		Status:    StatusOngoing,
	}

	require.Equal(t, expected, game)
	assert.Equal(t, X, game.EngineMark())
	assert.True(t, game.IsEngineTurn())
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful Turn", func(t *testing.T) {
		// Given: a new game
		game := NewGame("123", X)

		// When: X plays the centre
		err := game.MakeTurn(X, Action{Row: 1, Col: 1})
		require.NoError(t, err)

		// Then: the board reflects the move and O is to move
		assert.Equal(t, "....X....", game.Board.String())
		assert.Equal(t, O, game.Turn())
		assert.True(t, game.IsOngoing())
	})

	t.Run("Error on Playing Out of Turn", func(t *testing.T) {
		// Given: a new game where it's X's turn
		game := NewGame("123", X)

		// When: O tries to move
		err := game.MakeTurn(O, Action{Row: 0, Col: 0})

		// Then: ErrNotYourTurn is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, Initial(), game.Board)
	})

	t.Run("Error on Cell Already Occupied", func(t *testing.T) {
		// Given: a game where X owns the corner
		game := NewGame("123", X)
		require.NoError(t, game.MakeTurn(X, Action{Row: 0, Col: 0}))

		// When: O plays the same corner
		err := game.MakeTurn(O, Action{Row: 0, Col: 0})

		// Then: ErrInvalidAction is returned
		require.ErrorIs(t, err, apperror.ErrInvalidAction)
		assert.Equal(t, "X........", game.Board.String())
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		// Given: X is one move from completing the top row
		game := NewGame("123", X)
		game.Board = mustParse(t, "XX.OO....")

		// When: X completes the row
		err := game.MakeTurn(X, Action{Row: 0, Col: 2})
		require.NoError(t, err)

		// Then: the game is finished with X as the winner
		assert.True(t, game.IsFinished())
		assert.Equal(t, WinnerX, game.Winner)
		assert.Equal(t, Empty, game.Turn())
	})

	t.Run("Last square draws", func(t *testing.T) {
		// Given: one empty square left with no line available
		game := NewGame("123", X)
		game.Board = mustParse(t, "XOXXOOOX.")

		// When: X fills it
		err := game.MakeTurn(X, Action{Row: 2, Col: 2})
		require.NoError(t, err)

		// Then: the game is a tie
		assert.True(t, game.IsFinished())
		assert.Equal(t, WinnerTie, game.Winner)
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: a finished game
		game := &Game{Board: mustParse(t, "XXXOO...."), Status: StatusFinished, Winner: WinnerX}

		// When: O tries to move
		err := game.MakeTurn(O, Action{Row: 2, Col: 2})

		// Then: ErrGameFinished is returned
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.ErrorIs(t, err, apperror.ErrInvalidState)
		assert.Contains(t, err.Error(), "unknown game status")
	})
}

func TestGame_JSON(t *testing.T) {
	// Given: a game in progress
	game := NewGame("abc", O)
	game.Board = mustParse(t, "X...O....")

	// When: it is encoded and decoded
	raw, err := json.Marshal(game)
	require.NoError(t, err)

	var decoded Game
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Then: the board travels in its textual form
	assert.Contains(t, string(raw), `"board":"X...O...."`)
	assert.Contains(t, string(raw), `"human_mark":"O"`)
	assert.Equal(t, *game, decoded)
}
