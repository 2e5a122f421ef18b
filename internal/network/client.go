package network

import (
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Tempo para aguardar por uma escrita na conexão.
	writeWait = 10 * time.Second

	// Tempo máximo para aguardar por uma resposta de pong do cliente.
	pongWait = 60 * time.Second

	// Frequência com que enviamos pings. Deve ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Client é a representação de uma conexão do ponto de vista do servidor.
// Ele agrupa a conexão WebSocket, o canal de saída e o Hub do seu canal.
type Client struct {
	id   string
	conn *websocket.Conn

	// Referência ao Hub do canal ("host" ou "game") para (des)registro.
	hub *Hub

	// Canal bufferizado de mensagens de saída. O buffer evita que o Hub
	// bloqueie se o cliente estiver lento para consumir. O mutex guarda
	// 'closed': vínculos de sala sobrevivem à desconexão, então Send pode
	// chegar depois do desregistro e precisa virar no-op, nunca pânico.
	mu     sync.Mutex
	send   chan Message
	closed bool

	logger *zap.Logger
}

func newClient(conn *websocket.Conn, hub *Hub, logger *zap.Logger) *Client {
	return &Client{
		id:     uuid.NewString(),
		conn:   conn,
		hub:    hub,
		send:   make(chan Message, 256),
		logger: logger,
	}
}

// ID retorna o identificador único desta conexão.
func (c *Client) ID() string { return c.id }

// Conn retorna a conexão net.Conn subjacente (útil para logar o endereço).
func (c *Client) Conn() net.Conn { return c.conn.UnderlyingConn() }

// Send enfileira uma mensagem para entrega ao cliente. Handlers nunca
// escrevem direto na conexão. Depois da desconexão a mensagem é
// descartada em silêncio, como um emit para um socket que já caiu.
func (c *Client) Send(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- msg:
	default:
		c.logger.Warn("send buffer full, dropping message",
			zap.String("client", c.id), zap.String("type", msg.Type))
	}
}

// shutdown marca o cliente como desconectado e fecha o canal de saída,
// o sinal para a writeLoop parar. Idempotente; só o Hub chama.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) readLoop() {
	// Garante a limpeza quando o loop terminar, por qualquer motivo.
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	// Cada pong recebido renova o deadline e mantém a conexão viva.
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("unexpected close from client",
					zap.String("client", c.id), zap.Error(err))
			}
			// Para qualquer erro (desconexão normal ou não), saímos do loop.
			break
		}

		c.hub.incoming <- clientMessage{client: c, msg: msg}
	}
}

// writeLoop bombeia mensagens do canal 'send' para a conexão WebSocket.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			// O Hub fechou o canal 'send': o cliente foi desregistrado.
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug("write failed",
					zap.String("client", c.id), zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return // Ping falhou, a conexão está morta.
			}
		}
	}
}
