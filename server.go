package main

import (
	"errors"
	"net/http"
	"time"

	"checkers/game/core"
	"checkers/game/network"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type server struct {
	hub *network.Hub
}

func newRouter(hub *network.Hub) *gin.Engine {
	s := &server{hub: hub}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ws", hub.HandleWebSocket)

	api := r.Group("/api/games")
	api.POST("", s.createGame)
	api.GET("/:id", s.getGame)
	api.GET("/:id/moves", s.legalMoves)
	api.POST("/:id/moves", s.playMove)

	return r
}

func (s *server) createGame(c *gin.Context) {
	room, err := s.hub.Create()
	if errors.Is(err, network.ErrTooManyRooms) {
		sendError(c, http.StatusServiceUnavailable, err)
		return
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": room.ID})
}

func (s *server) getGame(c *gin.Context) {
	room, ok := s.room(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, room.State())
}

func (s *server) legalMoves(c *gin.Context) {
	room, ok := s.room(c)
	if !ok {
		return
	}

	var from network.Coord
	if err := c.ShouldBindQuery(&from); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, room.LegalMoves(from.Position()))
}

func (s *server) playMove(c *gin.Context) {
	room, ok := s.room(c)
	if !ok {
		return
	}

	var req network.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err)
		return
	}

	state, err := room.Move(req.Move())
	if errors.Is(err, core.ErrInvalidMove) {
		sendError(c, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		sendError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *server) room(c *gin.Context) (*network.Room, bool) {
	room, ok := s.hub.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	}
	return room, ok
}

func sendError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
