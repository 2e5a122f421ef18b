package session

import "errors"

var (
	// ErrSessionNotFound indica um identificador de sessão desconhecido.
	// É uma condição esperada e recuperável: o handler a converte em um
	// payload de erro apenas para quem enviou.
	ErrSessionNotFound = errors.New("session: not found")

	// ErrUnknownCredential indica uma credencial que não pertence à
	// sessão resolvida.
	ErrUnknownCredential = errors.New("session: unknown credential")

	// ErrNotYourTurn indica uma jogada submetida pelo assento errado
	// para a paridade do turno atual. Não é propagada ao cliente: a
	// rejeição é silenciosa no protocolo.
	ErrNotYourTurn = errors.New("session: not your turn")

	// ErrMalformedPayload indica uma string concatenada de join/turn
	// curta demais para conter sessão + credencial.
	ErrMalformedPayload = errors.New("session: malformed payload")
)
