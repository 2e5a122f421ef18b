package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

const (
	stateAwaitingNames = "awaiting_names"
	stateInProgress    = "in_progress"

	defaultName1 = "RunicGameFan1"
	defaultName2 = "RunicGameFan2"
)

// Session é o estado mutável de uma partida: a bijeção credencial/assento,
// os nomes de exibição, os vínculos de sala e o cache de snapshots por
// turno em volta do motor de regras.
//
// O cache de snapshots é append-only e cresce um registro por turno pela
// vida inteira da sessão; para partidas de tamanho normal isso é barato e
// a varredura do Registry é o único coletor.
type Session struct {
	mu sync.Mutex

	engine Engine

	// Bijeção credencial -> assento. Imutável após a criação.
	seats map[string]int

	// Indexados por assento-1. Assento é sempre 1 ou 2, então o acesso
	// é total e não precisa de lookup dinâmico.
	names [2]string
	rooms [2]Client

	snapshots map[int][]byte

	state     string
	createdAt time.Time
}

// New cria a sessão de uma partida recém-pareada. Os nomes começam com
// placeholders até o handshake de nomes acontecer.
func New(engine Engine, credential1, credential2 string, createdAt time.Time) *Session {
	return &Session{
		engine: engine,
		seats: map[string]int{
			credential1: 1,
			credential2: 2,
		},
		names:     [2]string{defaultName1, defaultName2},
		snapshots: make(map[int][]byte),
		state:     stateAwaitingNames,
		createdAt: createdAt,
	}
}

// CreatedAt retorna o instante de criação, usado pela varredura por idade.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// State retorna o estado de ciclo de vida atual da sessão.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Turn retorna o contador de turno atual do motor.
func (s *Session) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Turn()
}

// BindRoom valida a credencial, registra a conexão como a sala daquele
// assento (revinculável em um novo join) e retorna o assento resolvido e
// o snapshot do turno atual. Em credencial desconhecida nada é mutado.
func (s *Session) BindRoom(credential string, c Client) (int, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat, ok := s.seats[credential]
	if !ok {
		return 0, nil, ErrUnknownCredential
	}

	s.rooms[seat-1] = c

	snapshot, err := s.snapshotLocked()
	if err != nil {
		return 0, nil, err
	}
	return seat, snapshot, nil
}

// SetName valida a credencial e define o nome de exibição do assento.
func (s *Session) SetName(credential, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat, ok := s.seats[credential]
	if !ok {
		return ErrUnknownCredential
	}

	s.names[seat-1] = name
	return nil
}

// SubmitTurn valida que a credencial pertence ao assento da vez (pela
// paridade do turno atual) e delega a jogada ao motor, que avança o
// turno. Retorna as duas salas vinculadas e o snapshot novo para
// broadcast. No assento errado, nada é mutado e ErrNotYourTurn é
// retornado — o handler não emite nada nesse caso.
func (s *Session) SubmitTurn(credential string, move Move) ([2]Client, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var none [2]Client

	seat, ok := s.seats[credential]
	if !ok {
		return none, nil, ErrUnknownCredential
	}

	if seat != activeSeat(s.engine.Turn()) {
		return none, nil, ErrNotYourTurn
	}

	if err := s.engine.Apply(seat, move.CardIndex, move.Row, move.Col); err != nil {
		return none, nil, fmt.Errorf("apply move: %w", err)
	}

	s.state = stateInProgress

	snapshot, err := s.snapshotLocked()
	if err != nil {
		return none, nil, err
	}
	return s.rooms, snapshot, nil
}

// Snapshot retorna o snapshot serializado do turno atual, calculando e
// cacheando na primeira leitura daquele turno.
func (s *Session) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// snapshotLocked memoiza por turno: a entrada do turno n é calculada uma
// única vez e reutilizada byte a byte em toda leitura seguinte.
func (s *Session) snapshotLocked() ([]byte, error) {
	turn := s.engine.Turn()
	if cached, ok := s.snapshots[turn]; ok {
		return cached, nil
	}

	state := s.engine.State()
	hands := s.engine.HandSizes()

	// A "fila de cartas" exibível é só a sequência de índices da mão
	// atual de cada assento.
	state["card_queue_1"] = indexSequence(hands[0])
	state["card_queue_2"] = indexSequence(hands[1])
	state["name_player_1"] = s.names[0]
	state["name_player_2"] = s.names[1]

	snapshot, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot for turn %d: %w", turn, err)
	}

	s.snapshots[turn] = snapshot
	return snapshot, nil
}

func indexSequence(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	return seq
}
