package session

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry é o índice em memória de sessões vivas, chaveado pelo
// identificador de sessão. Ele limita a memória gasta com lobbies
// abandonados: quando um Add ultrapassa o limite de entradas, uma
// varredura síncrona remove toda sessão mais velha que o TTL. Partidas
// terminadas não são coletadas proativamente.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	maxSessions int
	maxAge      time.Duration

	// Relógio injetável para os testes da varredura.
	now func() time.Time

	logger *zap.Logger
}

func NewRegistry(maxSessions int, maxAge time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		maxAge:      maxAge,
		now:         time.Now,
		logger:      logger,
	}
}

// Add insere incondicionalmente (uma colisão de id sobrescreveria, mas o
// emissor de tokens torna isso desprezível). Se o tamanho resultante
// passar do limite, dispara a varredura por idade na hora.
func (r *Registry) Add(sessionID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = s

	if len(r.sessions) > r.maxSessions {
		r.sweepLocked()
	}
}

// Get resolve um identificador de sessão. ErrSessionNotFound é esperado
// e recuperável.
func (r *Registry) Get(sessionID string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Len retorna o número de sessões vivas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// sweepLocked remove toda entrada com idade acima do TTL. As chaves são
// copiadas antes: nunca mutamos o mapa enquanto iteramos sobre ele.
// Sessões despejadas ainda na troca de nomes são lobbies abandonados, a
// carga que o limite de capacidade existe para conter; o log as separa.
func (r *Registry) sweepLocked() {
	now := r.now()

	keys := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		keys = append(keys, id)
	}

	evicted, abandoned := 0, 0
	for _, id := range keys {
		sess := r.sessions[id]
		if now.Sub(sess.CreatedAt()) <= r.maxAge {
			continue
		}
		if sess.State() == stateAwaitingNames {
			abandoned++
		}
		delete(r.sessions, id)
		evicted++
	}

	r.logger.Info("registry sweep finished",
		zap.Int("evicted", evicted),
		zap.Int("abandoned", abandoned),
		zap.Int("remaining", len(r.sessions)))
}
