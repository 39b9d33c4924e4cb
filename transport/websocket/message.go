package websocket

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

const (
	actionConnect    = "session:connect"
	actionSelectCell = "cell:select"
	actionNewRound   = "round:new"
	actionNewMatch   = "match:new"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	SessionID string           `json:"session_id,omitempty"`
	Cell      *int             `json:"cell,omitempty"`
	Snapshot  *entity.Snapshot `json:"snapshot,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// client - one browser connection and the session it plays.
type client struct {
	conn      *websocket.Conn
	sessionID string

	writeMu sync.Mutex
}

func (that *Server) sendMessage(client *client, action string, payload Payload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	client.writeMu.Lock()
	defer client.writeMu.Unlock()

	if err = client.conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendSnapshot(client *client, action string, snapshot entity.Snapshot) error {
	return that.sendMessage(client, action, Payload{
		SessionID: snapshot.SessionID,
		Snapshot:  &snapshot,
	})
}

func (that *Server) sendError(client *client, action, reason string) {
	if err := that.sendMessage(client, action, Payload{Error: reason}); err != nil {
		that.logger.Error("failed to send error response", "error", err)
	}
}
