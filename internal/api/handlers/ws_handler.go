package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler streams answers over a websocket: the client sends one
// question frame at a time and receives the generated answer as
// incremental chunks.
type WSHandler struct {
	engine   Answerer
	upgrader websocket.Upgrader
}

func NewWSHandler(engine Answerer) *WSHandler {
	return &WSHandler{
		engine: engine,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsQueryMsg struct {
	Question string `json:"question"`
	Model    string `json:"model"`
}

type wsAnswerMsg struct {
	Type string `json:"type"` // chunk|error|done
	Text string `json:"text,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

func (h *WSHandler) QueryWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote the response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx := c.Request.Context()

	for {
		var msg wsQueryMsg
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Question == "" {
			_ = wc.writeJSON(wsAnswerMsg{Type: "error", Text: "question is required"})
			continue
		}

		chunks, errs := h.engine.Stream(ctx, msg.Question, msg.Model)

		for chunks != nil || errs != nil {
			select {
			case chunk, ok := <-chunks:
				if !ok {
					chunks = nil
					continue
				}
				if err := wc.writeJSON(wsAnswerMsg{Type: "chunk", Text: chunk}); err != nil {
					return
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				if err != nil {
					_ = wc.writeJSON(wsAnswerMsg{Type: "error", Text: err.Error()})
				}
			case <-ctx.Done():
				return
			}
		}

		if err := wc.writeJSON(wsAnswerMsg{Type: "done"}); err != nil {
			return
		}
	}
}
