package domain

type EventType string

const (
	EventPiecePlaced EventType = "piece_placed"
	EventGameWon     EventType = "game_won"
	EventGameTied    EventType = "game_tied"
)

// Event is what the render layer reacts to. Row and Column are only
// meaningful for piece_placed, Line only for game_won.
type Event struct {
	Type   EventType `json:"type"`
	Row    int       `json:"row"`
	Column int       `json:"column"`
	Player PlayerID  `json:"player,omitempty"`
	Line   []Cell    `json:"line,omitempty"`
}

type Outcome string

const (
	OutcomeIgnored  Outcome = "ignored"
	OutcomeContinue Outcome = "continue"
	OutcomeWon      Outcome = "won"
	OutcomeTied     Outcome = "tied"
)

// MoveResult describes what a single column selection did. An ignored
// move carries no events.
type MoveResult struct {
	Outcome Outcome  `json:"outcome"`
	Row     int      `json:"row"`
	Column  int      `json:"column"`
	Player  PlayerID `json:"player,omitempty"`
	Events  []Event  `json:"events"`
}

func ignored(column int) MoveResult {
	return MoveResult{Outcome: OutcomeIgnored, Row: -1, Column: column, Events: []Event{}}
}
