package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins (for development and demo)
	},
}

// StreamPortfolio handles GET /ws/portfolio. It pushes the recomputed
// summary and holdings every few seconds until the client disconnects.
func (h *Handler) StreamPortfolio(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("websocket upgrade error:", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	ctx := c.Request.Context()

	for {
		trades, err := h.store.List(ctx)
		if err != nil {
			log.Println("websocket trade list error:", err)
			return
		}

		if err := conn.WriteJSON(h.buildPortfolio(trades)); err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
