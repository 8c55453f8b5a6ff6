package domain

// Board is a height x width grid. Row 0 is the top row, pieces settle
// towards row height-1.
type Board struct {
	cells  [][]PlayerID
	height int
	width  int
}

func NewBoard(height, width int) *Board {
	cells := make([][]PlayerID, height)
	for i := range cells {
		cells[i] = make([]PlayerID, width)
	}
	return &Board{cells: cells, height: height, width: width}
}

func (b *Board) Height() int { return b.height }
func (b *Board) Width() int  { return b.width }

func (b *Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.height && column >= 0 && column < b.width
}

func (b *Board) ValidColumn(column int) bool {
	return column >= 0 && column < b.width
}

// At returns the occupant of a cell. The caller keeps row and column in bounds.
func (b *Board) At(row, column int) PlayerID {
	return b.cells[row][column]
}

// FindDropRow scans the column from the bottom up and returns the first
// empty row, or false when the column is full.
func (b *Board) FindDropRow(column int) (int, bool) {
	for row := b.height - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			return row, true
		}
	}
	return -1, false
}

// Place writes the piece without checking; FindDropRow resolves the cell.
func (b *Board) Place(row, column int, player PlayerID) {
	b.cells[row][column] = player
}

func (b *Board) IsFull() bool {
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// Occupied counts the pieces on the board
func (b *Board) Occupied() int {
	count := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell != Empty {
				count++
			}
		}
	}
	return count
}

// Snapshot returns a deep copy as plain ints, which is what goes over the wire.
func (b *Board) Snapshot() [][]int {
	out := make([][]int, b.height)
	for i := range b.cells {
		out[i] = make([]int, b.width)
		for j := range b.cells[i] {
			out[i][j] = int(b.cells[i][j])
		}
	}
	return out
}

// ValidMoves lists the columns that still have room
func (b *Board) ValidMoves() []int {
	moves := []int{}
	for col := 0; col < b.width; col++ {
		if b.cells[0][col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}
