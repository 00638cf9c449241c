package booking

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/TonCerques/alugaki/app/echoServer/jwtx"
	"github.com/TonCerques/alugaki/model"
	itemrepo "github.com/TonCerques/alugaki/repository/item"
	bs "github.com/TonCerques/alugaki/service/booking"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc   bs.Service
	Items itemrepo.Repo
	V     *validator.Validate
	Log   *slog.Logger
}

// POST /v1/bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	it, err := h.Items.FindByID(c.Request().Context(), req.ItemID)
	if err != nil {
		h.Log.Error("booking create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if it == nil || !it.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found"})
	}

	start := parseDate(req.StartDate)
	end := parseDate(req.EndDate)
	quote := h.Svc.Quote(it.DailyPrice, it.ReplacementValue, start, end)

	out, err := h.Svc.Create(c.Request().Context(), bs.CreateReq{
		ItemID:        it.ID,
		RenterID:      jwtx.UID(c),
		OwnerID:       it.OwnerID,
		StartDate:     start,
		EndDate:       end,
		TotalPrice:    quote.Total,
		DepositAmount: quote.Deposit,
	})
	if err != nil {
		h.Log.Error("booking create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking":      out.Booking,
		"chat_room_id": out.ChatRoomID,
		"quote":        quote,
	})
}

// GET /v1/users/me/bookings
func (h *Controller) Mine(c echo.Context) error {
	rows, err := h.Svc.ByUser(c.Request().Context(), jwtx.UID(c))
	if err != nil {
		h.Log.Error("booking mine", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/bookings/:id
func (h *Controller) Get(c echo.Context) error {
	b, err := h.Svc.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "booking get", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": b})
}

// POST /v1/bookings/:id/decision — owner approves or declines
func (h *Controller) Decide(c echo.Context) error {
	var req DecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	next := model.BookingAwaitingPayment
	if req.Decision == "DECLINE" {
		next = model.BookingRejected
	}
	b, err := h.Svc.UpdateStatus(c.Request().Context(), c.Param("id"), next)
	if err != nil {
		return h.fail(c, "booking decide", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": b})
}

// POST /v1/bookings/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	b, err := h.Svc.UpdateStatus(c.Request().Context(), c.Param("id"), model.BookingCancelled)
	if err != nil {
		return h.fail(c, "booking cancel", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": b})
}

// POST /v1/bookings/:id/payment
func (h *Controller) ConfirmPayment(c echo.Context) error {
	b, err := h.Svc.ConfirmPayment(c.Request().Context(), c.Param("id"), jwtx.UID(c))
	if err != nil {
		return h.fail(c, "booking payment", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": b})
}

// POST /v1/bookings/:id/handover
func (h *Controller) Handover(c echo.Context) error {
	b, err := h.Svc.Handover(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "booking handover", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": b})
}

// POST /v1/bookings/:id/return
func (h *Controller) Return(c echo.Context) error {
	b, err := h.Svc.Return(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, "booking return", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": b})
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch bs.Code(err) {
	case bs.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
	case bs.ErrInvalidTransition:
		return c.JSON(http.StatusConflict, echo.Map{"message": "booking is not in the expected state"})
	case bs.ErrBadStatus:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unsupported status"})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// parseDate accepts YYYY-MM-DD or RFC3339; anything else normalizes to now,
// which the pricing clamp then treats as a one-day rental.
func parseDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Now().UTC()
}
