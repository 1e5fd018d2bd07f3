package ws

import (
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Identify returns the user the auth middleware attached to the request.
type Identify func(c fiber.Ctx) (uuid.UUID, bool)

type Handler struct {
	hub      *Hub
	identify Identify
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler accepts upgrades from allowedOrigins only. A "*" entry allows
// any origin. The route must sit behind the auth middleware; identify reads
// the user it stored.
func NewHandler(hub *Hub, allowedOrigins []string, identify Identify, logger *log.Logger) *Handler {
	u := upgrader
	u.CheckOrigin = originChecker(allowedOrigins)
	return &Handler{hub: hub, identify: identify, logger: logger, upgrader: u}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		_, ok := set[strings.TrimRight(origin, "/")]
		return ok
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleEvents upgrades the request and subscribes the connection to the
// events addressed to its user.
func (h *Handler) HandleEvents(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	if h.identify == nil {
		return fiber.ErrUnauthorized
	}
	userID, ok := h.identify(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("WS upgrade error | error=%v", err)
			}
			return
		}

		if h.logger != nil {
			h.logger.Printf("WS upgrade | remote=%s user_id=%s", r.RemoteAddr, userID)
		}
		client := NewClient(h.hub, conn, userID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
