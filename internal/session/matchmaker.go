package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"runic/internal/events"
	"runic/internal/token"
)

// Matchmaker pareia conexões do canal host duas a duas. A estrutura de
// espera guarda no máximo uma conexão: ou a chegada vira o esperador, ou
// ela é pareada com quem já estava esperando.
type Matchmaker struct {
	mu      sync.Mutex
	waiting Client

	issuer    *token.Issuer
	registry  *Registry
	newEngine func() Engine
	events    events.Publisher
	logger    *zap.Logger
}

func NewMatchmaker(
	issuer *token.Issuer,
	registry *Registry,
	newEngine func() Engine,
	publisher events.Publisher,
	logger *zap.Logger,
) *Matchmaker {
	return &Matchmaker{
		issuer:    issuer,
		registry:  registry,
		newEngine: newEngine,
		events:    publisher,
		logger:    logger,
	}
}

// HandleConnect enfileira a conexão ou a pareia com o esperador atual.
// Checar o esperador, retirá-lo e criar a sessão é UMA seção crítica:
// dois connects intercalados nunca podem parear a mesma conexão duas
// vezes nem deixar duas conexões esperando.
func (m *Matchmaker) HandleConnect(c Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.waiting == nil || m.waiting == c {
		m.waiting = c
		c.Send(statusMessage(StatusInSearch))
		m.logger.Info("client waiting for match", zap.String("client", c.ID()))
		return
	}

	partner := m.waiting
	m.waiting = nil

	tokens, err := m.issuer.Create()
	if err != nil {
		// Nunca esperado na prática. O parceiro volta ao slot de espera
		// e só quem chegou recebe o status de erro.
		m.waiting = partner
		c.Send(statusMessage(StatusError))
		m.logger.Error("token issue failed", zap.Error(err))
		return
	}

	sess := New(m.newEngine(), tokens.Credential(1), tokens.Credential(2), time.Now())
	m.registry.Add(tokens.SessionID, sess)

	// A conexão recém-chegada ocupa o assento 1, o esperador o assento 2.
	c.Send(foundMessage(tokens, 1))
	partner.Send(foundMessage(tokens, 2))

	m.events.MatchCreated(tokens.SessionID)
	m.logger.Info("match found",
		zap.String("session", tokens.SessionID),
		zap.String("seat1", c.ID()),
		zap.String("seat2", partner.ID()),
		zap.Int("live_sessions", m.registry.Len()))
}

// HandleDisconnect limpa o slot de espera se ele pertence à conexão que
// caiu. Sessões já pareadas não são afetadas.
func (m *Matchmaker) HandleDisconnect(c Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.waiting == c {
		m.waiting = nil
		m.logger.Info("waiting client left", zap.String("client", c.ID()))
	}
}
