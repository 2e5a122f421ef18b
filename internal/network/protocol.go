package network

import "encoding/json"

// Message é o envelope padrão para toda a comunicação nos dois canais.
// O Type faz o roteamento do evento ("message", "player_number", "turn")
// e o Payload carrega os dados em JSON bruto para decodificação posterior.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MaxMessageSize é o limite de leitura por frame. Uma jogada ou um
// handshake de nomes nunca chega perto disso.
const MaxMessageSize = 64 * 1024

// NewMessage monta um envelope serializando o payload recebido.
// Os payloads daqui são structs nossas, então o Marshal não falha.
func NewMessage(msgType string, payload any) Message {
	raw, _ := json.Marshal(payload)
	return Message{Type: msgType, Payload: raw}
}
