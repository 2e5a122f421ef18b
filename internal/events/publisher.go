package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	subjectMatchCreated = "runic.match.created"
	subjectTurnPlayed   = "runic.game.turn"
)

// Publisher anuncia eventos de partida para quem quiser observar
// (dashboards, bots de auditoria). Falha de publicação nunca se propaga
// para o fluxo do jogo: é logada e esquecida.
type Publisher interface {
	MatchCreated(sessionID string)
	TurnPlayed(sessionID string, turn int)
	Close()
}

// Nop é o publisher usado quando nenhum broker está configurado.
type Nop struct{}

func (Nop) MatchCreated(string)    {}
func (Nop) TurnPlayed(string, int) {}
func (Nop) Close()                 {}

type matchCreatedEvent struct {
	HashURL   string    `json:"hash_url"`
	CreatedAt time.Time `json:"created_at"`
}

type turnPlayedEvent struct {
	HashURL string `json:"hash_url"`
	Turn    int    `json:"turn"`
}

// NATSPublisher publica os eventos em um servidor NATS.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func ConnectNATS(url string, logger *zap.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("runic-server"))
	if err != nil {
		return nil, err
	}
	logger.Info("connected to nats", zap.String("url", url))
	return &NATSPublisher{conn: conn, logger: logger}, nil
}

func (p *NATSPublisher) MatchCreated(sessionID string) {
	p.publish(subjectMatchCreated, matchCreatedEvent{
		HashURL:   sessionID,
		CreatedAt: time.Now().UTC(),
	})
}

func (p *NATSPublisher) TurnPlayed(sessionID string, turn int) {
	p.publish(subjectTurnPlayed, turnPlayedEvent{
		HashURL: sessionID,
		Turn:    turn,
	})
}

// Close drena o que ainda está no buffer antes de fechar a conexão.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("nats drain failed", zap.Error(err))
	}
}

func (p *NATSPublisher) publish(subject string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("marshal event failed",
			zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("publish event failed",
			zap.String("subject", subject), zap.Error(err))
	}
}
