package game

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// BoardSize é a dimensão do tabuleiro quadrado.
	BoardSize = 5

	handSize = 5
)

// runeSet é o conjunto de runas de onde as mãos são distribuídas.
var runeSet = []string{
	"ansuz", "berkana", "dagaz", "ehwaz", "fehu", "gebo",
	"hagalaz", "isa", "jera", "kenaz", "laguz", "mannaz",
}

// Card é uma carta de runa na mão de um jogador.
type Card struct {
	Rune  string `json:"rune"`
	Power int    `json:"power"`
}

// PlacedCard é uma carta já posta no tabuleiro, com o assento que a
// jogou e a célula ocupada.
type PlacedCard struct {
	Card
	Seat int `json:"seat"`
	Row  int `json:"i"`
	Col  int `json:"j"`
}

// Game é o motor de regras rúnico: duas mãos, um tabuleiro 5x5 e o
// contador de turno. Ele satisfaz o porto session.Engine.
type Game struct {
	turn     int
	hands    [2][]Card
	occupied [BoardSize][BoardSize]bool

	// Cartas jogadas, em ordem de jogada.
	placed []PlacedCard
}

// New cria uma partida com mãos distribuídas aleatoriamente.
func New() *Game {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded cria uma partida com distribuição determinística. Usado nos
// testes.
func NewSeeded(seed int64) *Game {
	rng := rand.New(rand.NewSource(seed))

	g := &Game{turn: 1}
	for seat := 0; seat < 2; seat++ {
		hand := make([]Card, 0, handSize)
		for len(hand) < handSize {
			hand = append(hand, Card{
				Rune:  runeSet[rng.Intn(len(runeSet))],
				Power: 1 + rng.Intn(9),
			})
		}
		g.hands[seat] = hand
	}
	return g
}

// Turn retorna o contador de turno. Começa em 1.
func (g *Game) Turn() int { return g.turn }

// HandSizes retorna o tamanho atual da mão de cada assento.
func (g *Game) HandSizes() [2]int {
	return [2]int{len(g.hands[0]), len(g.hands[1])}
}

// Apply joga a carta cardIndex da mão do assento na célula (row, col) e
// avança o turno. A mão encolhe: não há compra de reposição.
func (g *Game) Apply(seat, cardIndex, row, col int) error {
	if seat != 1 && seat != 2 {
		return fmt.Errorf("seat %d does not exist", seat)
	}

	hand := g.hands[seat-1]
	if cardIndex < 0 || cardIndex >= len(hand) {
		return fmt.Errorf("card index %d is out of bounds for a hand of size %d", cardIndex, len(hand))
	}
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return fmt.Errorf("cell (%d, %d) is outside the %dx%d board", row, col, BoardSize, BoardSize)
	}
	if g.occupied[row][col] {
		return fmt.Errorf("cell (%d, %d) is already occupied", row, col)
	}

	card := hand[cardIndex]
	g.hands[seat-1] = append(hand[:cardIndex], hand[cardIndex+1:]...)

	g.occupied[row][col] = true
	g.placed = append(g.placed, PlacedCard{Card: card, Seat: seat, Row: row, Col: col})

	g.turn++
	return nil
}

// State retorna um mapa novo com a representação serializável do estado.
// As chaves são as do payload original do jogo.
func (g *Game) State() map[string]any {
	return map[string]any{
		"turn":          g.turn,
		"board":         append([]PlacedCard(nil), g.placed...),
		"player_1_hand": append([]Card(nil), g.hands[0]...),
		"player_2_hand": append([]Card(nil), g.hands[1]...),
	}
}
