package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/pkg/uid"
)

// Publisher delivers messages to whoever renders a game.
type Publisher interface {
	Publish(ctx context.Context, gameID string, message domain.ServerMessage) error
}

// Settings are the defaults used when a game is created without overrides.
type Settings struct {
	Height       int
	Width        int
	Player1Color string
	Player2Color string
}

// NewGameOptions overrides Settings for a single game. Zero values fall back.
type NewGameOptions struct {
	Height       int    `json:"height"`
	Width        int    `json:"width"`
	Player1Color string `json:"player1Color"`
	Player2Color string `json:"player2Color"`
}

type GameSession struct {
	GameID       string
	Game         *domain.Game
	CreatedAt    time.Time
	LastActivity time.Time
	FinishedAt   time.Time
	mu           sync.Mutex
	publisher    Publisher
}

// SessionManager manages live games
type SessionManager struct {
	Session   map[string]*GameSession // gameID → GameSession
	mu        sync.RWMutex
	settings  Settings
	publisher Publisher
}

func NewSessionManager(settings Settings, publishers ...Publisher) *SessionManager {
	return &SessionManager{
		Session:   make(map[string]*GameSession),
		settings:  settings,
		publisher: MultiPublisher(publishers),
	}
}

func (sm *SessionManager) CreateSession(opts NewGameOptions) (*GameSession, error) {
	height, width := sm.settings.Height, sm.settings.Width
	if opts.Height != 0 {
		height = opts.Height
	}
	if opts.Width != 0 {
		width = opts.Width
	}
	p1 := domain.Player{ID: domain.Player1, Color: firstNonEmpty(opts.Player1Color, sm.settings.Player1Color)}
	p2 := domain.Player{ID: domain.Player2, Color: firstNonEmpty(opts.Player2Color, sm.settings.Player2Color)}

	g, err := domain.NewGame(p1, p2, height, width)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	now := time.Now()
	session := &GameSession{
		GameID:       uid.GenerateGameID(),
		Game:         g,
		CreatedAt:    now,
		LastActivity: now,
		publisher:    sm.publisher,
	}

	sm.mu.Lock()
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created game %s (%dx%d, %s vs %s)", session.GameID, height, width, p1.Color, p2.Color)
	return session, nil
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.Session[gameID]; !exists {
		return domain.ErrGameNotFound
	}

	log.Printf("[SESSION] Removing game %s", gameID)
	delete(sm.Session, gameID)
	return nil
}

// PlayMove routes a column selection to the game it belongs to.
func (sm *SessionManager) PlayMove(ctx context.Context, gameID string, column int) (domain.MoveResult, domain.GameState, error) {
	session, exists := sm.GetSessionByGameID(gameID)
	if !exists {
		return domain.MoveResult{}, domain.GameState{}, domain.ErrGameNotFound
	}
	return session.HandleMove(ctx, column)
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// CleanupOldSessions drops finished games idle for longer than idle and
// unfinished games idle for longer than abandonAfter. It returns the IDs it removed.
func (sm *SessionManager) CleanupOldSessions(idle, abandonAfter time.Duration) []string {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	removed := []string{}

	for gameID, session := range sm.Session {
		finished, lastActivity := session.activity()

		limit := abandonAfter
		if finished {
			limit = idle
		}
		if now.Sub(lastActivity) > limit {
			log.Printf("[SESSION] Evicting game %s (finished=%t, age %s, idle %s)",
				gameID, finished, now.Sub(session.CreatedAt).Round(time.Second), now.Sub(lastActivity).Round(time.Second))
			delete(sm.Session, gameID)
			removed = append(removed, gameID)
		}
	}

	if len(removed) > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d stale games", len(removed))
	}
	return removed
}

func (gs *GameSession) activity() (bool, time.Time) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Game.IsFinished(), gs.LastActivity
}

// State returns a copy of the game that is safe to serialise.
func (gs *GameSession) State() domain.GameState {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Game.State(gs.GameID)
}

// HandleMove applies one column selection. Moves on the same game are
// serialised by the session lock, and the resulting events are published
// before the lock is released so subscribers see them in move order.
func (gs *GameSession) HandleMove(ctx context.Context, column int) (domain.MoveResult, domain.GameState, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	result, err := gs.Game.PlayMove(column)
	if err != nil {
		return result, gs.Game.State(gs.GameID), err
	}

	if result.Outcome == domain.OutcomeIgnored {
		return result, gs.Game.State(gs.GameID), nil
	}

	gs.LastActivity = time.Now()

	switch result.Outcome {
	case domain.OutcomeWon:
		gs.FinishedAt = gs.LastActivity
		winner, _ := gs.Game.Player(result.Player)
		log.Printf("[GAME] Game %s won by player %d (%s) after %d moves", gs.GameID, winner.ID, winner.Color, gs.Game.MoveCount())
	case domain.OutcomeTied:
		gs.FinishedAt = gs.LastActivity
		log.Printf("[GAME] Game %s tied after %d moves", gs.GameID, gs.Game.MoveCount())
	}

	for _, ev := range result.Events {
		msg := domain.EventMessage(gs.GameID, ev)
		if err := gs.publisher.Publish(ctx, gs.GameID, msg); err != nil {
			log.Printf("[GAME] Error publishing %s for game %s: %v", ev.Type, gs.GameID, err)
		}
	}

	return result, gs.Game.State(gs.GameID), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
