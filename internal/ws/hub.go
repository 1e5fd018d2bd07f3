package ws

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub tracks connected clients and fans broadcast messages out to them.
// Clients whose send buffer is full are dropped.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | total_clients=%d", total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			total, removed := h.remove(client)
			if removed && h.logger != nil {
				h.logger.Printf("WS disconnected | total_clients=%d", total)
			}

		case message := <-h.broadcast:
			h.mutex.RLock()
			clientsSnapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				if message.reaches(c.userID) {
					clientsSnapshot = append(clientsSnapshot, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range clientsSnapshot {
				select {
				case client.send <- message.payload:
				default:
					h.remove(client)
					if h.logger != nil {
						h.logger.Printf("WS client dropped | reason=slow_consumer")
					}
				}
			}

			if h.logger != nil {
				h.logger.Printf("WS broadcast | clients=%d", len(clientsSnapshot))
			}
		}
	}
}

func (h *Hub) remove(client *Client) (int, bool) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	return len(h.clients), ok
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// outbound is one queued message. A nil audience reaches every client.
type outbound struct {
	payload  []byte
	audience map[uuid.UUID]struct{}
}

func (o outbound) reaches(userID uuid.UUID) bool {
	if o.audience == nil {
		return true
	}
	_, ok := o.audience[userID]
	return ok
}

// Broadcast queues message for the clients authenticated as one of audience,
// or for every client when audience is empty.
func (h *Hub) Broadcast(message []byte, audience ...uuid.UUID) {
	if h == nil {
		return
	}
	out := outbound{payload: message}
	if len(audience) > 0 {
		out.audience = make(map[uuid.UUID]struct{}, len(audience))
		for _, id := range audience {
			out.audience[id] = struct{}{}
		}
	}
	select {
	case h.broadcast <- out:
	default:
		if h.logger != nil {
			h.logger.Printf("WS broadcast dropped | reason=buffer_full")
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
