package domain

// Cell is a single (row, column) coordinate.
type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Line is four contiguous cells in one direction.
type Line [ToWin]Cell

// horizontal, vertical, diagonal down-right, diagonal down-left
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// CheckWin walks every cell of the board and tries the four lines anchored
// there. It only ever looks for the given player: the mover is the only one
// whose last move can have completed a line.
func CheckWin(board *Board, player PlayerID) (Line, bool) {
	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			for _, d := range directions {
				line, ok := lineAt(board, y, x, d[0], d[1], player)
				if ok {
					return line, true
				}
			}
		}
	}
	return Line{}, false
}

func lineAt(board *Board, y, x, dy, dx int, player PlayerID) (Line, bool) {
	var line Line
	for i := 0; i < ToWin; i++ {
		r, c := y+i*dy, x+i*dx
		if !board.InBounds(r, c) || board.At(r, c) != player {
			return Line{}, false
		}
		line[i] = Cell{Row: r, Column: c}
	}
	return line, true
}
