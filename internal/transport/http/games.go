package http

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/iamasit07/connect4-engine/pkg/auth"
	"github.com/iamasit07/connect4-engine/pkg/httputil"
)

type GameHandler struct {
	SessionManager *game.SessionManager
	Signer         *auth.Signer
	CookieMaxAge   int
	SecureCookies  bool
}

func NewGameHandler(sm *game.SessionManager, signer *auth.Signer, cookieMaxAge int, secureCookies bool) *GameHandler {
	return &GameHandler{
		SessionManager: sm,
		Signer:         signer,
		CookieMaxAge:   cookieMaxAge,
		SecureCookies:  secureCookies,
	}
}

type createGameResponse struct {
	Token string `json:"token"`
	domain.GameState
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	domain.MoveResult
	State domain.GameState `json:"state"`
}

// CreateGame starts a new game and hands back the token that controls it
func (h *GameHandler) CreateGame(c *gin.Context) {
	var opts game.NewGameOptions
	// An empty body, chunked or not, means no overrides.
	if err := c.ShouldBindJSON(&opts); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, err := h.SessionManager.CreateSession(opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Signer.GenerateGameToken(session.GameID)
	if err != nil {
		log.Printf("[HTTP] Failed to sign token for game %s: %v", session.GameID, err)
		h.SessionManager.RemoveSession(session.GameID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create game"})
		return
	}

	httputil.SetGameCookie(c.Writer, token, h.CookieMaxAge, h.SecureCookies)
	c.JSON(http.StatusCreated, createGameResponse{Token: token, GameState: session.State()})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	session, exists := h.SessionManager.GetSessionByGameID(c.Param("id"))
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrGameNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, session.State())
}

// PlayMove is the select_column input. Ignored moves (full column, game
// already over) still answer 200 with outcome "ignored".
func (h *GameHandler) PlayMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	result, state, err := h.SessionManager.PlayMove(c.Request.Context(), c.Param("id"), *req.Column)
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, domain.ErrInvalidColumn):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("[HTTP] Move on game %s failed: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "move failed"})
		return
	}

	c.JSON(http.StatusOK, moveResponse{MoveResult: result, State: state})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
