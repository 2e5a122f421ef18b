package network

// EventHandler é o ponto de injeção da lógica do jogo em um canal.
// Todos os callbacks são chamados pela goroutine do Hub daquele canal,
// um evento por vez, do começo ao fim.
type EventHandler interface {
	OnConnect(c *Client)
	OnMessage(c *Client, msg Message)
	OnDisconnect(c *Client)
}

// clientMessage empacota uma mensagem com o cliente que a enviou.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos de um canal e roteia os
// eventos para o handler. Cada canal ("host", "game") tem o seu.
type Hub struct {
	// Clientes registrados. Acessado SOMENTE pela goroutine do Hub.
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// As goroutines readLoop dos clientes enviam mensagens para cá.
	incoming chan clientMessage

	handler EventHandler
}

// NewHub cria, inicializa e retorna um novo Hub.
func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		handler:    handler,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Para a writeLoop e faz de todo Send futuro um no-op:
				// salas vinculadas guardam o cliente depois daqui.
				client.shutdown()
				h.handler.OnDisconnect(client)
			}

		case clientMsg := <-h.incoming:
			// O Hub não se importa com o conteúdo; delega ao handler.
			h.handler.OnMessage(clientMsg.client, clientMsg.msg)
		}
	}
}
