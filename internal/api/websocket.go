package api

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is same-origin only in deployment; browser clients go
	// through the reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsFrame is one message in either direction on the chat socket.
type wsFrame struct {
	Type     string `json:"type"` // "message" | "reply" | "error"
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

// chatWS upgrades the connection and runs the same chat exchange as POST
// /chat, one JSON frame per turn. The socket closes when the client
// disconnects; a failed turn is reported as an error frame without
// closing the conversation.
func (s *Server) chatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		var frame wsFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		if frame.Type != "message" || frame.Text == "" {
			if err := conn.WriteJSON(wsFrame{Type: "error", Text: "expected a message frame with text"}); err != nil {
				return
			}
			continue
		}

		turn, err := s.chat.HandleMessage(r.Context(), frame.Text)
		if err != nil {
			if werr := conn.WriteJSON(wsFrame{Type: "error", Text: err.Error()}); werr != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(wsFrame{
			Type:     "reply",
			Text:     turn.Reply,
			Category: string(turn.Category),
		}); err != nil {
			return
		}
	}
}
