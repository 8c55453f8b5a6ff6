package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateIsDetached(t *testing.T) {
	g, err := NewGame(red, yellow, DefaultHeight, DefaultWidth)
	require.NoError(t, err)
	_, err = g.PlayMove(2)
	require.NoError(t, err)

	state := g.State("abc")
	assert.Equal(t, "abc", state.GameID)
	assert.Equal(t, Player2, state.CurrentPlayer)
	assert.Equal(t, 1, state.MoveCount)
	assert.Equal(t, 1, state.Board[5][2])

	state.Board[5][2] = 2
	assert.Equal(t, Player1, g.Board().At(5, 2))
}

func TestStateValidColumns(t *testing.T) {
	g, err := NewGame(red, yellow, DefaultHeight, DefaultWidth)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, g.State("g").ValidColumns)

	for _, col := range []int{3, 3, 3, 3, 3, 3} {
		_, err := g.PlayMove(col)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{0, 1, 2, 4, 5, 6}, g.State("g").ValidColumns)

	for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		_, err := g.PlayMove(col)
		require.NoError(t, err)
	}
	require.True(t, g.IsFinished())

	state := g.State("g")
	assert.Empty(t, state.ValidColumns)
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"validColumns":[]`)
}

func TestEventMessageJSON(t *testing.T) {
	msg := EventMessage("g1", Event{Type: EventPiecePlaced, Row: 5, Column: 0, Player: Player1})

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"piece_placed","gameId":"g1","row":5,"column":0,"player":1}`, string(raw))
}
