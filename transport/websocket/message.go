package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	gws "github.com/gorilla/websocket"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const (
	actionInfo        = "info"
	actionError       = "error"
	actionStateAdding = "state:adding"
	actionShipAdd     = "ship:add"
	actionGuess       = "guess"
	actionGuessResult = "guess:result"
	actionStateWon    = "state:won"
)

const (
	closeReasonFinished = "Game Finished"
	closeReasonError    = "Game Error"

	writeWait = 5 * time.Second
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type InfoPayload struct {
	Message string `json:"message"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

type AddingPayload struct {
	Ships [][]entity.Coordinate `json:"ships"`
}

// ShipAddPayload fields are pointers so that a missing field is told apart from a zero value.
type ShipAddPayload struct {
	Loc *entity.Coordinate  `json:"loc"`
	Dir *entity.Orientation `json:"dir"`
}

type GuessPayload struct {
	Loc *entity.Coordinate `json:"loc"`
}

type GuessResultPayload struct {
	Player  int               `json:"player"`
	Loc     entity.Coordinate `json:"loc"`
	Hit     bool              `json:"hit"`
	Message string            `json:"message"`
}

type WonPayload struct {
	Winner  int    `json:"winner"`
	Message string `json:"message"`
}

// peer is one side of a match. gorilla allows a single concurrent writer, so writes go through mu.
type peer struct {
	conn *gws.Conn
	mu   sync.Mutex
}

func newPeer(conn *gws.Conn) *peer {
	return &peer{conn: conn}
}

func (that *peer) sendMessage(action string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *peer) sendInfo(text string) error {
	return that.sendMessage(actionInfo, InfoPayload{Message: text})
}

func (that *peer) sendError(err error) error {
	return that.sendMessage(actionError, ErrorPayload{Error: err.Error()})
}

// close sends a close frame with the given reason and drops the connection.
func (that *peer) close(code int, reason string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_ = that.conn.WriteControl(gws.CloseMessage, gws.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
	_ = that.conn.Close()
}
