package session

// Dublês compartilhados pelos testes do pacote: um motor falso com
// contadores de chamadas e um cliente falso com canal de saída
// inspecionável.

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"runic/internal/network"
)

type appliedMove struct {
	seat, cardIndex, row, col int
}

type fakeEngine struct {
	turn       int
	hands      [2]int
	applied    []appliedMove
	stateCalls int
	applyErr   error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{turn: 1, hands: [2]int{5, 5}}
}

func (e *fakeEngine) Turn() int         { return e.turn }
func (e *fakeEngine) HandSizes() [2]int { return e.hands }

func (e *fakeEngine) Apply(seat, cardIndex, row, col int) error {
	if e.applyErr != nil {
		return e.applyErr
	}
	e.applied = append(e.applied, appliedMove{seat, cardIndex, row, col})
	e.hands[seat-1]--
	e.turn++
	return nil
}

func (e *fakeEngine) State() map[string]any {
	e.stateCalls++
	return map[string]any{"turn": e.turn}
}

type fakeClient struct {
	id   string
	send chan network.Message
}

func newFakeClient(id string) *fakeClient {
	return &fakeClient{id: id, send: make(chan network.Message, 16)}
}

func (c *fakeClient) ID() string               { return c.id }
func (c *fakeClient) Send(msg network.Message) { c.send <- msg }

// next retorna a próxima mensagem enviada ao cliente, falhando o teste
// se nada chegar.
func (c *fakeClient) next(t *testing.T) network.Message {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		require.FailNow(t, "no message delivered to client "+c.id)
		return network.Message{}
	}
}

// silent verifica que nenhuma mensagem foi enviada ao cliente.
func (c *fakeClient) silent(t *testing.T) {
	t.Helper()
	select {
	case msg := <-c.send:
		require.FailNowf(t, "unexpected message", "client %s received %s", c.id, msg.Type)
	default:
	}
}
