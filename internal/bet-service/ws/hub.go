package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

// ClientMsg é a mensagem recebida do cliente. Só ping é tratado.
type ClientMsg struct {
	Type string `json:"type"`
}

// client serializa as escritas numa conexão; o gorilla não aceita escritores concorrentes
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// Hub gerencia as conexões WebSocket por usuário
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	// userID -> conexões abertas
	subs map[string]map[*client]struct{}
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		subs:     make(map[string]map[*client]struct{}),
	}
}

// AllowOrigins libera apenas as origens informadas; sem cabeçalho Origin (CLI, testes) passa
func AllowOrigins(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

// Serve faz o upgrade e mantém a conexão inscrita nos eventos do usuário até ela fechar
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	c := &client{conn: conn}
	h.add(userID, c)
	defer h.remove(userID, c)

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == "ping" {
			b, _ := json.Marshal(map[string]string{"type": "pong"})
			_ = c.write(b)
		}
	}
}

func (h *Hub) add(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[userID]; !ok {
		h.subs[userID] = make(map[*client]struct{})
	}
	h.subs[userID][c] = struct{}{}
}

func (h *Hub) remove(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, userID)
		}
	}
}

// Connections conta as conexões abertas de um usuário
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}

// Broadcast envia o evento para todas as conexões do usuário dono da aposta
func (h *Hub) Broadcast(update events.WSUpdate) {
	h.mu.RLock()
	conns := make([]*client, 0, len(h.subs[update.UserID]))
	for c := range h.subs[update.UserID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	if len(conns) == 0 {
		return
	}

	b, _ := json.Marshal(update.Payload)
	for _, c := range conns {
		_ = c.write(b)
	}
}
