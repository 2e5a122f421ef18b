// Cliente de terminal para jogar contra o servidor de verdade. Útil para
// testar o fluxo completo na mão: fila, pareamento, troca de nomes, join
// e jogadas.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gorilla/websocket"
)

// Espelhos do protocolo de rede do servidor.
type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type hostStatus struct {
	Status     int    `json:"status"`
	HashURL    string `json:"hash_url"`
	HashPlayer string `json:"hash_player"`
}

type namePayload struct {
	HashURL    string `json:"hash_url"`
	HashPlayer string `json:"hash_player"`
	Name       string `json:"name"`
}

type turnPayload struct {
	HashURL   string `json:"hash_url"`
	CardIndex int    `json:"card_index"`
	Row       int    `json:"i"`
	Col       int    `json:"j"`
}

func main() {
	addr := flag.String("addr", "localhost:8081", "server host:port")
	name := flag.String("name", "RunicGameFan", "display name")
	flag.Parse()

	// 1. Entra na fila pelo canal host e espera o pareamento.
	host, _, err := websocket.DefaultDialer.Dial("ws://"+*addr+"/host", nil)
	if err != nil {
		log.Fatalf("dial host channel: %v", err)
	}
	defer host.Close()

	var found hostStatus
	for {
		var msg message
		if err := host.ReadJSON(&msg); err != nil {
			log.Fatalf("read host channel: %v", err)
		}
		var status hostStatus
		if err := json.Unmarshal(msg.Payload, &status); err != nil {
			continue
		}

		if status.Status == 0 {
			fmt.Println("Searching for an opponent...")
			continue
		}
		if status.Status == 1 {
			found = status
			fmt.Println("Match found!")
			break
		}
	}

	// 2. Envia o nome de exibição.
	host.WriteJSON(message{Type: "message", Payload: mustMarshal(namePayload{
		HashURL:    found.HashURL,
		HashPlayer: found.HashPlayer,
		Name:       *name,
	})})

	// 3. Entra no canal de jogo com a string concatenada.
	game, _, err := websocket.DefaultDialer.Dial("ws://"+*addr+"/game", nil)
	if err != nil {
		log.Fatalf("dial game channel: %v", err)
	}
	defer game.Close()

	joined := found.HashURL + found.HashPlayer
	game.WriteJSON(message{Type: "message", Payload: mustMarshal(joined)})

	// Imprime tudo o que chega do canal de jogo: o número do assento e
	// cada snapshot novo.
	go func() {
		for {
			var msg message
			if err := game.ReadJSON(&msg); err != nil {
				log.Fatalf("read game channel: %v", err)
			}
			switch msg.Type {
			case "player_number":
				fmt.Printf("\nYou are player %s. Odd turns play seat 1, even turns seat 2.\n", msg.Payload)
			default:
				fmt.Printf("\n--- game state ---\n%s\n> ", msg.Payload)
			}
		}
	}()

	// 4. Lê jogadas do terminal: "card_index i j".
	fmt.Println("Enter moves as: card_index i j")
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		var cardIndex, row, col int
		if _, err := fmt.Sscanf(scanner.Text(), "%d %d %d", &cardIndex, &row, &col); err != nil {
			fmt.Print("expected: card_index i j\n> ")
			continue
		}

		game.WriteJSON(message{Type: "turn", Payload: mustMarshal(turnPayload{
			HashURL:   joined,
			CardIndex: cardIndex,
			Row:       row,
			Col:       col,
		})})
		fmt.Print("> ")
	}
}

func mustMarshal(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("marshal payload: %v", err)
	}
	return raw
}
