package session

import "runic/internal/network"

// Engine é o porto para o motor de regras do jogo. Legalidade de jogada,
// efeitos de tabuleiro e detecção de vitória vivem atrás desta interface;
// a camada de sessão só valida ordem de turno e cacheia snapshots.
type Engine interface {
	// Turn retorna o contador de turno atual. Começa em 1 e só cresce.
	Turn() int

	// HandSizes retorna o tamanho atual da mão de cada assento.
	HandSizes() [2]int

	// Apply aplica uma jogada do assento informado e avança o turno.
	Apply(seat, cardIndex, row, col int) error

	// State retorna a representação serializável do estado. Deve
	// devolver um mapa novo a cada chamada: o chamador o aumenta antes
	// de serializar.
	State() map[string]any
}

// Move é uma jogada submetida por um cliente do canal de jogo.
type Move struct {
	CardIndex int
	Row       int
	Col       int
}

// activeSeat resolve o assento da vez pela paridade do turno:
// turno ímpar joga o assento 1, turno par joga o assento 2.
func activeSeat(turn int) int {
	if turn%2 == 1 {
		return 1
	}
	return 2
}

// Client é a visão que a camada de sessão tem de uma conexão viva. O
// *network.Client real a satisfaz; os testes usam implementações falsas.
// Send é seguro mesmo depois da desconexão: vira descarte silencioso.
type Client interface {
	ID() string
	Send(msg network.Message)
}
