package session

// Payloads que vão no sentido servidor -> cliente, e as constantes de
// status do canal host. Os nomes de campo ("hash_url", "hash_player") e
// os códigos numéricos são os do protocolo original, preservados para
// manter os clientes existentes funcionando.

import (
	"encoding/json"

	"runic/internal/network"
	"runic/internal/token"
)

const (
	StatusInSearch  = 0
	StatusFound     = 1
	StatusStartGame = 2
	StatusError     = 3
)

type statusPayload struct {
	Status int `json:"status"`
}

type foundPayload struct {
	Status     int    `json:"status"`
	HashURL    string `json:"hash_url"`
	HashPlayer string `json:"hash_player"`
}

// statusMessage monta um payload só de status para o canal host.
func statusMessage(status int) network.Message {
	return network.NewMessage("message", statusPayload{Status: status})
}

// foundMessage monta o payload de "partida encontrada" para um assento.
// Pura: não toca em estado nenhum.
func foundMessage(t *token.Tokens, seat int) network.Message {
	return network.NewMessage("message", foundPayload{
		Status:     StatusFound,
		HashURL:    t.SessionID,
		HashPlayer: t.Credential(seat),
	})
}

// errorMarkerMessage é o marcador literal de erro do canal de jogo.
func errorMarkerMessage() network.Message {
	return network.Message{Type: "message", Payload: json.RawMessage(`"error"`)}
}

// playerNumberMessage informa ao cliente qual assento ele ocupa.
func playerNumberMessage(seat int) network.Message {
	return network.NewMessage("player_number", seat)
}

// snapshotMessage embrulha um snapshot já serializado.
func snapshotMessage(snapshot []byte) network.Message {
	return network.Message{Type: "message", Payload: snapshot}
}
