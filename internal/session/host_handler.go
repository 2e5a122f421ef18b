package session

import (
	"encoding/json"

	"go.uber.org/zap"

	"runic/internal/network"
)

// namePayload é a mensagem de handshake de nomes do canal host.
type namePayload struct {
	HashURL    string `json:"hash_url"`
	HashPlayer string `json:"hash_player"`
	Name       string `json:"name"`
}

// HostHandler implementa network.EventHandler para o canal host: o
// pareamento na conexão e a troca de nomes antes da partida.
type HostHandler struct {
	matchmaker *Matchmaker
	registry   *Registry
	logger     *zap.Logger
}

func NewHostHandler(matchmaker *Matchmaker, registry *Registry, logger *zap.Logger) *HostHandler {
	return &HostHandler{
		matchmaker: matchmaker,
		registry:   registry,
		logger:     logger,
	}
}

func (h *HostHandler) OnConnect(c *network.Client) {
	h.matchmaker.HandleConnect(c)
}

// OnMessage trata o handshake de nomes. Toda falha é isolada aqui e vira
// um status de erro apenas para quem enviou; nada derruba o processo nem
// afeta a outra conexão.
func (h *HostHandler) OnMessage(c *network.Client, msg network.Message) {
	var payload namePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.replyError(c, err)
		return
	}

	sess, err := h.registry.Get(payload.HashURL)
	if err != nil {
		h.replyError(c, err)
		return
	}

	if err := sess.SetName(payload.HashPlayer, payload.Name); err != nil {
		h.replyError(c, err)
		return
	}

	// O sinal de início é emitido por submissão, sem esperar os dois
	// nomes chegarem.
	c.Send(statusMessage(StatusStartGame))
}

func (h *HostHandler) OnDisconnect(c *network.Client) {
	h.matchmaker.HandleDisconnect(c)
}

func (h *HostHandler) replyError(c *network.Client, err error) {
	h.logger.Debug("name exchange rejected",
		zap.String("client", c.ID()), zap.Error(err))
	c.Send(statusMessage(StatusError))
}
