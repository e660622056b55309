package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/ludo-relay/internal/utils"
)

// RoomCreator mints fresh room ids.
type RoomCreator interface {
	CreateRoom() string
}

// RoomHandlers provides HTTP handlers for room management endpoints.
type RoomHandlers struct {
	rooms     RoomCreator
	webAppURL string
	log       *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(rooms RoomCreator, webAppURL string, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		rooms:     rooms,
		webAppURL: webAppURL,
		log:       logger,
	}
}

// CreateRoomRequest is the optional create room request body.
type CreateRoomRequest struct {
	Name string `json:"name" binding:"max=64"`
}

// CreateRoomResponse carries the new room id and the link to share.
type CreateRoomResponse struct {
	RoomID  string `json:"room_id"`
	JoinURL string `json:"join_url,omitempty"`
}

// CreateRoom hands out a fresh room id and join link.
// POST /api/rooms
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log.Debug().Err(err).Msg("invalid create room request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	roomID := h.rooms.CreateRoom()
	link, err := utils.JoinURL(h.webAppURL, roomID, req.Name)
	if err != nil {
		h.log.Error().Err(err).Str("room_id", roomID).Msg("failed to build join link")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("room_id", roomID).Str("name", req.Name).Msg("room created")
	c.JSON(http.StatusCreated, CreateRoomResponse{
		RoomID:  roomID,
		JoinURL: link,
	})
}
