package session

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"runic/internal/events"
	"runic/internal/network"
)

// turnPayload é a submissão de jogada do canal de jogo. O hash_url chega
// como a mesma string concatenada do join.
type turnPayload struct {
	HashURL   string `json:"hash_url"`
	CardIndex int    `json:"card_index"`
	Row       int    `json:"i"`
	Col       int    `json:"j"`
}

// GameHandler implementa network.EventHandler para o canal de jogo: o
// join com vínculo de sala e as submissões de jogada.
type GameHandler struct {
	registry *Registry

	// Comprimento fixo da credencial, usado para fatiar o sufixo da
	// string concatenada sessionID+credencial.
	credLen int

	events events.Publisher
	logger *zap.Logger
}

func NewGameHandler(registry *Registry, credLen int, publisher events.Publisher, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		registry: registry,
		credLen:  credLen,
		events:   publisher,
		logger:   logger,
	}
}

func (h *GameHandler) OnConnect(c *network.Client) {
	h.logger.Debug("game channel connection", zap.String("client", c.ID()))
}

func (h *GameHandler) OnMessage(c *network.Client, msg network.Message) {
	switch msg.Type {
	case "message":
		h.handleJoin(c, msg)
	case "turn":
		h.handleTurn(c, msg)
	default:
		h.logger.Debug("unknown game event ignored",
			zap.String("client", c.ID()), zap.String("type", msg.Type))
	}
}

// OnDisconnect não limpa nada de propósito: os vínculos de sala e o
// estado da sessão persistem até a varredura do Registry.
func (h *GameHandler) OnDisconnect(c *network.Client) {
	h.logger.Debug("game channel disconnect", zap.String("client", c.ID()))
}

// handleJoin vincula a conexão como sala do assento da credencial e
// responde o número do assento seguido do snapshot atual. Qualquer falha
// de parse ou lookup vira o marcador literal de erro.
func (h *GameHandler) handleJoin(c *network.Client, msg network.Message) {
	var joined string
	if err := json.Unmarshal(msg.Payload, &joined); err != nil {
		h.replyError(c, err)
		return
	}

	sessionID, credential, err := h.splitJoined(joined)
	if err != nil {
		h.replyError(c, err)
		return
	}

	sess, err := h.registry.Get(sessionID)
	if err != nil {
		h.replyError(c, err)
		return
	}

	seat, snapshot, err := sess.BindRoom(credential, c)
	if err != nil {
		h.replyError(c, err)
		return
	}

	c.Send(playerNumberMessage(seat))
	c.Send(snapshotMessage(snapshot))
}

// handleTurn submete a jogada à sessão e, se aceita, faz o broadcast do
// snapshot novo para as duas salas vinculadas. Uma rejeição por ordem de
// turno não emite nada para ninguém.
func (h *GameHandler) handleTurn(c *network.Client, msg network.Message) {
	var payload turnPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.replyError(c, err)
		return
	}

	sessionID, credential, err := h.splitJoined(payload.HashURL)
	if err != nil {
		h.replyError(c, err)
		return
	}

	sess, err := h.registry.Get(sessionID)
	if err != nil {
		h.replyError(c, err)
		return
	}

	rooms, snapshot, err := sess.SubmitTurn(credential, Move{
		CardIndex: payload.CardIndex,
		Row:       payload.Row,
		Col:       payload.Col,
	})
	if errors.Is(err, ErrNotYourTurn) {
		h.logger.Debug("turn rejected by parity",
			zap.String("session", sessionID), zap.String("client", c.ID()))
		return
	}
	if err != nil {
		h.replyError(c, err)
		return
	}

	// O vínculo de uma sala sobrevive à desconexão; o Send do transporte
	// descarta em silêncio para quem já caiu.
	for _, room := range rooms {
		if room != nil {
			room.Send(snapshotMessage(snapshot))
		}
	}

	h.events.TurnPlayed(sessionID, sess.Turn())
}

// splitJoined fatia a string concatenada em sessionID + credencial pelo
// sufixo de comprimento fixo.
func (h *GameHandler) splitJoined(joined string) (sessionID, credential string, err error) {
	if len(joined) <= h.credLen {
		return "", "", ErrMalformedPayload
	}
	return joined[:len(joined)-h.credLen], joined[len(joined)-h.credLen:], nil
}

func (h *GameHandler) replyError(c *network.Client, err error) {
	h.logger.Debug("game event rejected",
		zap.String("client", c.ID()), zap.Error(err))
	c.Send(errorMarkerMessage())
}
