package network

import (
	"errors"
	"net/http"
	"sync"

	"checkers/game/core"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	DefaultRoom     = "default"
	DefaultMaxRooms = 1024
)

var (
	ErrNotYourTurn  = errors.New("not your turn")
	ErrRoomFull     = errors.New("room is full")
	ErrTooManyRooms = errors.New("too many open games")
)

type Option func(*Hub)

func WithBufferSizes(read, write int) Option {
	return func(h *Hub) {
		h.upgrader.ReadBufferSize = read
		h.upgrader.WriteBufferSize = write
	}
}

// WithCheckOrigin enables gorilla's same-origin check. Without it every
// origin is accepted.
func WithCheckOrigin(check bool) Option {
	return func(h *Hub) {
		if check {
			h.upgrader.CheckOrigin = nil
		}
	}
}

// WithMaxRooms caps how many rooms may be open at once.
func WithMaxRooms(n int) Option {
	return func(h *Hub) {
		h.maxRooms = n
	}
}

// Hub owns every room. Lock order is hub before room.
type Hub struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	maxRooms int
	upgrader websocket.Upgrader
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		rooms:    make(map[string]*Room),
		maxRooms: DefaultMaxRooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Room returns the room with id, creating it with a fresh game if needed.
func (h *Hub) Room(id string) (*Room, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.roomLocked(id)
}

func (h *Hub) Create() (*Room, error) {
	return h.Room(uuid.New().String())
}

// join finds or creates the room and seats conn in it under one hub lock,
// so a concurrent release cannot drop the room in between.
func (h *Hub) join(id string, conn *websocket.Conn) (*Room, core.Player, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, err := h.roomLocked(id)
	if err != nil {
		return nil, core.None, err
	}
	return room, room.join(conn), nil
}

func (h *Hub) roomLocked(id string) (*Room, error) {
	if id == "" {
		id = DefaultRoom
	}
	if room, ok := h.rooms[id]; ok {
		return room, nil
	}
	if h.maxRooms > 0 && len(h.rooms) >= h.maxRooms {
		return nil, ErrTooManyRooms
	}

	room := newRoom(id)
	h.rooms[id] = room
	log.Info().Str("room", id).Msg("created room")
	return room, nil
}

func (h *Hub) Lookup(id string) (*Room, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[id]
	return room, ok
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.rooms)
}

// release drops room once its last client has gone.
func (h *Hub) release(room *Room) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room.mu.Lock()
	empty := len(room.clients) == 0
	room.mu.Unlock()

	if empty && h.rooms[room.ID] == room {
		delete(h.rooms, room.ID)
		log.Info().Str("room", room.ID).Msg("removed empty room")
	}
}

// Room is one game and up to two seated clients. mu guards the game and
// every write to the clients' connections.
type Room struct {
	ID string

	mu      sync.Mutex
	game    *core.Game
	clients map[*websocket.Conn]core.Player
}

func newRoom(id string) *Room {
	return &Room{
		ID:      id,
		game:    core.New(),
		clients: make(map[*websocket.Conn]core.Player),
	}
}

func (r *Room) State() GameState {
	r.mu.Lock()
	defer r.mu.Unlock()

	return newGameState(r.ID, r.game, core.None)
}

func (r *Room) LegalMoves(from core.Position) LegalMoves {
	r.mu.Lock()
	defer r.mu.Unlock()

	return newLegalMoves(from, r.game.LegalMoves(from))
}

// Move plays m for whoever is to move and pushes the new state to the
// seated clients.
func (r *Room) Move(m core.Move) (GameState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.apply(m); err != nil {
		return GameState{}, err
	}
	return newGameState(r.ID, r.game, core.None), nil
}

func (r *Room) apply(m core.Move) error {
	player := r.game.CurrentPlayer()
	if err := r.game.Move(m); err != nil {
		log.Debug().Str("room", r.ID).Stringer("player", player).
			Stringer("from", m.From).Stringer("to", m.To).Err(err).Msg("rejected move")
		return err
	}
	log.Info().Str("room", r.ID).Stringer("player", player).
		Stringer("from", m.From).Stringer("to", m.To).Msg("move played")

	r.broadcast()
	if r.game.IsGameOver() {
		log.Info().Str("room", r.ID).Msgf("game over, player %s has no moves left", r.game.CurrentPlayer())
	}
	return nil
}

// join seats conn as A, then B. It returns None when both seats are taken.
// It only records the seat; the caller sends the first message.
func (r *Room) join(conn *websocket.Conn) core.Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	taken := make(map[core.Player]bool, 2)
	for _, seat := range r.clients {
		taken[seat] = true
	}

	var seat core.Player
	switch {
	case !taken[core.PlayerA]:
		seat = core.PlayerA
	case !taken[core.PlayerB]:
		seat = core.PlayerB
	default:
		return core.None
	}

	r.clients[conn] = seat
	return seat
}

func (r *Room) leave(conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seat, ok := r.clients[conn]; ok {
		delete(r.clients, conn)
		log.Info().Str("room", r.ID).Stringer("player", seat).
			Int("remaining", len(r.clients)).Msg("player disconnected")
	}
}

// play handles a move sent over conn.
func (r *Room) play(conn *websocket.Conn, m core.Move) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clients[conn] != r.game.CurrentPlayer() {
		r.write(conn, errorMessage(ErrNotYourTurn))
		return
	}
	if err := r.apply(m); err != nil {
		r.write(conn, errorMessage(err))
	}
}

func (r *Room) sendState(conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.write(conn, Message{Type: "state", Content: newGameState(r.ID, r.game, r.clients[conn])})
}

func (r *Room) sendMoves(conn *websocket.Conn, from core.Position) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.write(conn, Message{Type: "moves", Content: newLegalMoves(from, r.game.LegalMoves(from))})
}

// broadcast must be called with r.mu held. Clients that cannot be written
// to are dropped.
func (r *Room) broadcast() {
	for client, seat := range r.clients {
		msg := Message{Type: "state", Content: newGameState(r.ID, r.game, seat)}
		if err := client.WriteJSON(msg); err != nil {
			log.Warn().Str("room", r.ID).Stringer("player", seat).Err(err).Msg("error sending state")
			delete(r.clients, client)
			client.Close()
		}
	}
}

// write must be called with r.mu held.
func (r *Room) write(conn *websocket.Conn, msg Message) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Warn().Str("room", r.ID).Err(err).Msgf("error sending %s message", msg.Type)
	}
}

func errorMessage(err error) Message {
	return Message{Type: "error", Content: err.Error()}
}
