package domain

type Game struct {
	board     *Board
	players   [2]Player
	current   PlayerID
	status    GameStatus
	winner    PlayerID
	moveCount int
}

// NewGame starts a game on an empty height x width board with player 1 to move.
// Dimensions must lie in [1, MaxHeight] and [1, MaxWidth].
func NewGame(p1, p2 Player, height, width int) (*Game, error) {
	if height <= 0 || width <= 0 || height > MaxHeight || width > MaxWidth {
		return nil, ErrInvalidDimensions
	}
	if p1.ID != Player1 || p2.ID != Player2 {
		return nil, ErrInvalidPlayer
	}

	return &Game{
		board:   NewBoard(height, width),
		players: [2]Player{p1, p2},
		current: Player1,
		status:  StatusInProgress,
		winner:  Empty,
	}, nil
}

// PlayMove drops the active player's piece into column.
//
// A column outside the board is a caller error. A full column, or any move
// once the game is over, is ignored: the result has OutcomeIgnored, no
// events, and nothing changes. Win is checked before tie, so a move that
// both fills the board and completes a line is a win.
func (g *Game) PlayMove(column int) (MoveResult, error) {
	if !g.board.ValidColumn(column) {
		return ignored(column), ErrInvalidColumn
	}

	if g.IsFinished() {
		return ignored(column), nil
	}

	row, ok := g.board.FindDropRow(column)
	if !ok {
		return ignored(column), nil
	}

	player := g.current
	g.board.Place(row, column, player)
	g.moveCount++

	result := MoveResult{
		Row:    row,
		Column: column,
		Player: player,
		Events: []Event{{Type: EventPiecePlaced, Row: row, Column: column, Player: player}},
	}

	if line, won := CheckWin(g.board, player); won {
		g.status = StatusWon
		g.winner = player
		result.Outcome = OutcomeWon
		result.Events = append(result.Events, Event{Type: EventGameWon, Row: -1, Column: -1, Player: player, Line: line[:]})
		return result, nil
	}

	if g.board.IsFull() {
		g.status = StatusTied
		result.Outcome = OutcomeTied
		result.Events = append(result.Events, Event{Type: EventGameTied, Row: -1, Column: -1})
		return result, nil
	}

	g.current = Opponent(player)
	result.Outcome = OutcomeContinue
	return result, nil
}

func (g *Game) IsFinished() bool {
	return g.status == StatusWon || g.status == StatusTied
}

func (g *Game) Status() GameStatus      { return g.status }
func (g *Game) Winner() PlayerID        { return g.winner }
func (g *Game) CurrentPlayer() PlayerID { return g.current }
func (g *Game) MoveCount() int          { return g.moveCount }
func (g *Game) Board() *Board           { return g.board }
func (g *Game) Players() [2]Player      { return g.players }

// Player returns the seat for id.
func (g *Game) Player(id PlayerID) (Player, bool) {
	switch id {
	case Player1:
		return g.players[0], true
	case Player2:
		return g.players[1], true
	}
	return Player{}, false
}
