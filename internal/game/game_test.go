package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeededIsDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	assert.Equal(t, a.hands, b.hands)
}

func TestNewStartsAtTurnOneWithFullHands(t *testing.T) {
	g := NewSeeded(1)

	assert.Equal(t, 1, g.Turn())
	assert.Equal(t, [2]int{handSize, handSize}, g.HandSizes())

	for _, hand := range g.hands {
		for _, card := range hand {
			assert.Contains(t, runeSet, card.Rune)
			assert.GreaterOrEqual(t, card.Power, 1)
			assert.LessOrEqual(t, card.Power, 9)
		}
	}
}

func TestApplyPlacesCardAndAdvancesTurn(t *testing.T) {
	g := NewSeeded(7)
	played := g.hands[0][2]

	require.NoError(t, g.Apply(1, 2, 1, 3))

	assert.Equal(t, 2, g.Turn())
	assert.Equal(t, [2]int{4, 5}, g.HandSizes())
	assert.True(t, g.occupied[1][3])
	assert.Equal(t, []PlacedCard{{Card: played, Seat: 1, Row: 1, Col: 3}}, g.placed)
}

func TestApplyRejectsInvalidMoves(t *testing.T) {
	cases := []struct {
		name                      string
		seat, cardIndex, row, col int
	}{
		{"seat zero", 0, 0, 0, 0},
		{"seat three", 3, 0, 0, 0},
		{"negative card index", 1, -1, 0, 0},
		{"card index beyond hand", 1, handSize, 0, 0},
		{"row below board", 1, 0, -1, 0},
		{"row beyond board", 1, 0, BoardSize, 0},
		{"col beyond board", 1, 0, 0, BoardSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewSeeded(9)
			err := g.Apply(tc.seat, tc.cardIndex, tc.row, tc.col)
			require.Error(t, err)

			// Jogada inválida não mexe em nada.
			assert.Equal(t, 1, g.Turn())
			assert.Equal(t, [2]int{handSize, handSize}, g.HandSizes())
			assert.Empty(t, g.placed)
		})
	}
}

func TestApplyRejectsOccupiedCell(t *testing.T) {
	g := NewSeeded(3)
	require.NoError(t, g.Apply(1, 0, 2, 2))

	err := g.Apply(2, 0, 2, 2)
	require.Error(t, err)

	assert.Equal(t, 2, g.Turn())
	assert.Equal(t, [2]int{4, 5}, g.HandSizes())
}

func TestStateReturnsFreshCopies(t *testing.T) {
	g := NewSeeded(5)
	require.NoError(t, g.Apply(1, 0, 0, 0))

	state := g.State()
	assert.Equal(t, 2, state["turn"])

	// Mexer nas fatias devolvidas não pode alterar o motor.
	board := state["board"].([]PlacedCard)
	board[0].Power = 99
	hand := state["player_1_hand"].([]Card)
	hand[0].Power = 99

	assert.NotEqual(t, 99, g.placed[0].Power)
	assert.NotEqual(t, 99, g.hands[0][0].Power)
}
