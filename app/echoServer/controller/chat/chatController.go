package chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/TonCerques/alugaki/app/echoServer/jwtx"
	"github.com/TonCerques/alugaki/realtime"
	chatrepo "github.com/TonCerques/alugaki/repository/chat"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SendMessageReq struct {
	Content string `json:"content" validate:"required"`
}

type Controller struct {
	Chat chatrepo.Repo
	Bus  *realtime.Bus
	V    *validator.Validate
	Log  *slog.Logger
}

// GET /v1/chat/rooms
func (h *Controller) Rooms(c echo.Context) error {
	rooms, err := h.Chat.RoomsByUser(c.Request().Context(), jwtx.UID(c))
	if err != nil {
		h.Log.Error("chat rooms", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rooms})
}

// GET /v1/chat/rooms/:id/messages
func (h *Controller) Messages(c echo.Context) error {
	msgs, err := h.Chat.Messages(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("chat messages", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": msgs})
}

// POST /v1/chat/rooms/:id/messages — goes through the realtime bus so local
// listeners and other sessions both see the message.
func (h *Controller) Send(c echo.Context) error {
	var req SendMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	msg, err := h.Bus.SendChatMessage(c.Request().Context(), c.Param("id"), jwtx.UID(c), req.Content)
	if err != nil {
		if errors.Is(err, chatrepo.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "room not found"})
		}
		h.Log.Error("chat send", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": msg})
}
