package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const (
	Size      = 3
	CellCount = Size * Size
)

// Cell is the content of a single square.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// Player is the mark of the side to move. It is always derived from a board.
type Player = Cell

// winLines lists the 8 winning lines: rows, then columns, then diagonals.
var winLines = [8][3]Action{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

func (that Cell) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "."
	}
}

// Opponent returns the other player, or Empty when the cell is not a player mark.
func (that Cell) Opponent() Player {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Action addresses one square of the board.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func ActionFromIndex(cell int) Action {
	return Action{Row: cell / Size, Col: cell % Size}
}

// Index returns the row-major cell index in [0, 8].
func (that Action) Index() int {
	return that.Row*Size + that.Col
}

func (that Action) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Action) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is a 3x3 grid stored row-major. It is a value type: copies share nothing.
type Board [Size][Size]Cell

// Initial returns the empty starting board.
func Initial() Board {
	return Board{}
}

func (that Board) At(action Action) Cell {
	return that[action.Row][action.Col]
}

func (that Board) occupied() int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell != Empty {
				count++
			}
		}
	}
	return count
}

// CurrentPlayer returns X on an even number of occupied cells and O on an odd one.
func (that Board) CurrentPlayer() Player {
	if that.occupied()%2 == 1 {
		return O
	}
	return X
}

// LegalActions returns every empty square in row-major order.
func (that Board) LegalActions() []Action {
	actions := make([]Action, 0, CellCount)
	for i, row := range that {
		for j, cell := range row {
			if cell == Empty {
				actions = append(actions, Action{Row: i, Col: j})
			}
		}
	}
	return actions
}

// OccupiedActions returns every square already played, in row-major order.
func (that Board) OccupiedActions() []Action {
	actions := make([]Action, 0, CellCount)
	for i, row := range that {
		for j, cell := range row {
			if cell != Empty {
				actions = append(actions, Action{Row: i, Col: j})
			}
		}
	}
	return actions
}

// Apply places the current player's mark at action and returns the new board.
// The receiver is never modified.
func (that Board) Apply(action Action) (Board, error) {
	if !action.InBounds() {
		return that, fmt.Errorf("%w: %s is out of bounds", apperror.ErrInvalidAction, action)
	}

	if that.At(action) != Empty {
		return that, fmt.Errorf("%w: %s is already occupied", apperror.ErrInvalidAction, action)
	}

	next := that
	next[action.Row][action.Col] = that.CurrentPlayer()

	return next, nil
}

// Winner returns the player owning the first complete line, if any.
func (that Board) Winner() (Player, bool) {
	for _, line := range winLines {
		a, b, c := that.At(line[0]), that.At(line[1]), that.At(line[2])
		if a != Empty && a == b && b == c {
			return a, true
		}
	}
	return Empty, false
}

func (that Board) IsFull() bool {
	return that.occupied() == CellCount
}

// IsTerminal reports whether somebody has won or the board is full.
func (that Board) IsTerminal() bool {
	if _, ok := that.Winner(); ok {
		return true
	}
	return that.IsFull()
}

// String renders the board as 9 characters from {'X','O','.'} in row-major order.
func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(CellCount)
	for _, row := range that {
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
	}
	return sb.String()
}

// ParseBoard reads the textual form produced by Board.String. '-' and '_' are
// accepted as empty squares and marks are case-insensitive.
func ParseBoard(raw string) (Board, error) {
	var board Board

	if len(raw) != CellCount {
		return board, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidBoard, CellCount, len(raw))
	}

	var xCount, oCount int
	for i := 0; i < CellCount; i++ {
		var cell Cell
		switch raw[i] {
		case '.', '-', '_':
			cell = Empty
		case 'X', 'x':
			cell = X
			xCount++
		case 'O', 'o':
			cell = O
			oCount++
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q at %d", apperror.ErrInvalidBoard, raw[i], i)
		}
		board[i/Size][i%Size] = cell
	}

	if diff := xCount - oCount; diff != 0 && diff != 1 {
		return Board{}, fmt.Errorf("%w: %d X against %d O", apperror.ErrInvalidBoard, xCount, oCount)
	}

	if board.hasLine(X) && board.hasLine(O) {
		return Board{}, fmt.Errorf("%w: both players have a line", apperror.ErrInvalidBoard)
	}

	return board, nil
}

func (that Board) hasLine(player Player) bool {
	for _, line := range winLines {
		if that.At(line[0]) == player && that.At(line[1]) == player && that.At(line[2]) == player {
			return true
		}
	}
	return false
}

func (that Board) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Board) UnmarshalText(text []byte) error {
	board, err := ParseBoard(string(text))
	if err != nil {
		return err
	}
	*that = board
	return nil
}

// ParseMark reads a player mark. Only "X" and "O" are accepted.
func ParseMark(raw string) (Player, error) {
	switch strings.ToUpper(raw) {
	case "X":
		return X, nil
	case "O":
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, raw)
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	if that == Empty {
		return []byte{}, nil
	}
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*that = Empty
		return nil
	}
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}
	*that = mark
	return nil
}
