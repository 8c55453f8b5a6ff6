package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	DefaultHeight = 6
	DefaultWidth  = 7
	ToWin         = 4

	// Upper bounds on requested board sizes
	MaxHeight = 64
	MaxWidth  = 64
)

// Player is a seat at the board plus the colour the render layer paints it with.
type Player struct {
	ID    PlayerID `json:"id"`
	Color string   `json:"color"`
}

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusTied       GameStatus = "tied"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn     Error = "invalid column"
	ErrInvalidDimensions Error = "invalid board dimensions"
	ErrInvalidPlayer     Error = "invalid player"
	ErrGameNotFound      Error = "game not found"
)

func Opponent(p PlayerID) PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}
