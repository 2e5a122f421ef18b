package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// Bytes de entropia do identificador de sessão.
	sessionBytes = 32

	// Limite de regenerações até desistir de obter credenciais distintas.
	// Com 8 bytes de entropia uma colisão é desprezível; o limite existe
	// para que o laço nunca seja infinito.
	maxAttempts = 64
)

// ErrExhausted indica que não foi possível gerar duas credenciais
// distintas dentro do limite de tentativas.
var ErrExhausted = errors.New("token: exhausted attempts to generate distinct credentials")

// Tokens agrupa o identificador de uma sessão e as duas credenciais de
// jogador emitidas para ela.
type Tokens struct {
	SessionID   string
	credentials [2]string
}

// Credential retorna a credencial do assento (1 ou 2). Pura.
func (t *Tokens) Credential(seat int) string {
	return t.credentials[seat-1]
}

// Issuer gera identificadores de sessão e credenciais de jogador.
type Issuer struct {
	credBytes int
}

func NewIssuer(credBytes int) *Issuer {
	return &Issuer{credBytes: credBytes}
}

// CredentialLen retorna o comprimento em caracteres de uma credencial
// emitida. É este valor que o canal de jogo usa para fatiar o sufixo da
// string concatenada sessionID+credencial.
func (i *Issuer) CredentialLen() int {
	return base64.RawURLEncoding.EncodedLen(i.credBytes)
}

// Create emite um identificador de sessão novo e duas credenciais
// distintas. A segunda credencial é regenerada até diferir da primeira,
// com o laço limitado por maxAttempts.
func (i *Issuer) Create() (*Tokens, error) {
	sessionID, err := urlSafe(sessionBytes)
	if err != nil {
		return nil, err
	}

	first, err := urlSafe(i.credBytes)
	if err != nil {
		return nil, err
	}

	second := first
	for attempt := 0; second == first; attempt++ {
		if attempt == maxAttempts {
			return nil, ErrExhausted
		}
		if second, err = urlSafe(i.credBytes); err != nil {
			return nil, err
		}
	}

	return &Tokens{
		SessionID:   sessionID,
		credentials: [2]string{first, second},
	}, nil
}

// urlSafe gera n bytes aleatórios codificados em base64 URL-safe sem
// padding, o mesmo formato do token_urlsafe.
func urlSafe(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token: read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
