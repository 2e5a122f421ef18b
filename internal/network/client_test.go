package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// Send e shutdown não tocam na conexão, então os testes podem construir
// o cliente sem um websocket de verdade.

func TestSendAfterShutdownIsNoOp(t *testing.T) {
	c := newClient(nil, NewHub(nil), zap.NewNop())

	c.shutdown()

	// Salas vinculadas ainda guardam o cliente depois do desregistro; um
	// Send tardio tem que ser descartado, nunca entrar em pânico.
	c.Send(NewMessage("message", "late snapshot"))

	// shutdown é idempotente.
	c.shutdown()
}

func TestSendDropsWhenBufferFull(t *testing.T) {
	c := newClient(nil, NewHub(nil), zap.NewNop())

	for i := 0; i < cap(c.send)+10; i++ {
		c.Send(NewMessage("message", i))
	}

	assert.Len(t, c.send, cap(c.send))
}

func TestSendDeliversToBuffer(t *testing.T) {
	c := newClient(nil, NewHub(nil), zap.NewNop())

	c.Send(NewMessage("message", "hello"))

	msg := <-c.send
	assert.Equal(t, "message", msg.Type)
}
