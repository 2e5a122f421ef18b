package network

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// upgrader guarda as configurações para promover HTTP para WebSocket.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Em desenvolvimento aceitamos qualquer origem.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server gerencia um Hub por canal lógico. Nenhuma rota REST é exposta:
// as únicas rotas são os endpoints WebSocket dos canais.
type Server struct {
	hubs   map[string]*Hub
	mux    *http.ServeMux
	logger *zap.Logger
}

// NewServer cria um servidor com um Hub por canal e já inicia as
// goroutines dos Hubs. O mapa injeta a lógica de cada canal.
func NewServer(handlers map[string]EventHandler, logger *zap.Logger) *Server {
	s := &Server{
		hubs:   make(map[string]*Hub),
		mux:    http.NewServeMux(),
		logger: logger,
	}

	for channel, handler := range handlers {
		hub := NewHub(handler)
		s.hubs[channel] = hub
		s.mux.HandleFunc("/"+channel, s.wsHandler(hub))
		go hub.Run()
	}

	return s
}

// Handler expõe o roteador, o que permite montar o servidor em um
// httptest.Server nos testes.
func (s *Server) Handler() http.Handler { return s.mux }

// wsHandler promove a requisição HTTP para WebSocket e registra o novo
// cliente no Hub do canal.
func (s *Server) wsHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := newClient(conn, hub, s.logger)
		hub.register <- client

		go client.writeLoop()
		go client.readLoop()
	}
}

// Listen inicia o servidor HTTP. Bloqueante.
func (s *Server) Listen(addr string) error {
	s.logger.Info("websocket server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}
