package domain

// Message types sent to the render layer
const (
	MessageGameState = "game_state"
	MessageError     = "error"
)

// Message types accepted from the render layer
const (
	MessageSelectColumn = "select_column"
	MessageGetState     = "get_state"
)

type ClientMessage struct {
	Type   string `json:"type"`
	Column int    `json:"column"`
}

// GameState is a point-in-time copy of a game, safe to hand to another goroutine.
type GameState struct {
	GameID        string     `json:"gameId"`
	Height        int        `json:"height"`
	Width         int        `json:"width"`
	Players       [2]Player  `json:"players"`
	CurrentPlayer PlayerID   `json:"currentPlayer"`
	Status        GameStatus `json:"status"`
	Winner        PlayerID   `json:"winner,omitempty"`
	MoveCount     int        `json:"moveCount"`
	Board         [][]int    `json:"board"`
	// Columns a move can still land in; empty once the game is over.
	ValidColumns []int `json:"validColumns"`
}

// ServerMessage carries either an engine event (Type is one of the
// EventType values) or a game_state / error frame.
type ServerMessage struct {
	Type    string     `json:"type"`
	GameID  string     `json:"gameId,omitempty"`
	Row     int        `json:"row"`
	Column  int        `json:"column"`
	Player  PlayerID   `json:"player,omitempty"`
	Line    []Cell     `json:"line,omitempty"`
	State   *GameState `json:"state,omitempty"`
	Message string     `json:"message,omitempty"`
}

func (g *Game) State(gameID string) GameState {
	validColumns := []int{}
	if !g.IsFinished() {
		validColumns = g.board.ValidMoves()
	}
	return GameState{
		GameID:        gameID,
		Height:        g.board.Height(),
		Width:         g.board.Width(),
		Players:       g.players,
		CurrentPlayer: g.current,
		Status:        g.status,
		Winner:        g.winner,
		MoveCount:     g.moveCount,
		Board:         g.board.Snapshot(),
		ValidColumns:  validColumns,
	}
}

// EventMessage wraps an engine event for the wire.
func EventMessage(gameID string, ev Event) ServerMessage {
	return ServerMessage{
		Type:   string(ev.Type),
		GameID: gameID,
		Row:    ev.Row,
		Column: ev.Column,
		Player: ev.Player,
		Line:   ev.Line,
	}
}

func StateMessage(state GameState) ServerMessage {
	return ServerMessage{Type: MessageGameState, GameID: state.GameID, Row: -1, Column: -1, State: &state}
}

func ErrorMessage(gameID, message string) ServerMessage {
	return ServerMessage{Type: MessageError, GameID: gameID, Row: -1, Column: -1, Message: message}
}
