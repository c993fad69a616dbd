package network

import (
	"encoding/json"
	"fmt"

	"checkers/game/core"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// HandleWebSocket seats the caller in the room named by the "room" query
// parameter and serves its messages until the connection drops.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	room, seat, err := h.join(c.Query("room"), conn)
	if err != nil {
		log.Warn().Str("room", c.Query("room")).Err(err).Msg("rejected client")
		if err := conn.WriteJSON(errorMessage(err)); err != nil {
			log.Warn().Err(err).Msg("error sending error message")
		}
		return
	}
	if seat == core.None {
		log.Info().Str("room", room.ID).Msg("rejected client, room is full")
		room.sendError(conn, ErrRoomFull)
		return
	}
	defer h.release(room)
	defer room.leave(conn)

	room.sendState(conn)

	log.Info().Str("room", room.ID).Stringer("player", seat).Msg("player joined")

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Str("room", room.ID).Err(err).Msg("error reading message")
			}
			return
		}
		room.handle(conn, msg)
	}
}

func (r *Room) handle(conn *websocket.Conn, msg inbound) {
	if err := validate.Struct(msg); err != nil {
		r.sendError(conn, fmt.Errorf("bad message: %w", err))
		return
	}

	switch msg.Type {
	case "move":
		var req MoveRequest
		if err := decode(msg.Content, &req); err != nil {
			r.sendError(conn, err)
			return
		}
		r.play(conn, req.Move())
	case "moves":
		var from Coord
		if err := decode(msg.Content, &from); err != nil {
			r.sendError(conn, err)
			return
		}
		r.sendMoves(conn, from.Position())
	case "state":
		r.sendState(conn)
	}
}

func decode(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("bad message: missing content")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("bad message: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("bad message: %w", err)
	}
	return nil
}

func (r *Room) sendError(conn *websocket.Conn, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.write(conn, errorMessage(err))
}
