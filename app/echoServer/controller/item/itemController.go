package item

import (
	"log/slog"
	"net/http"

	"github.com/TonCerques/alugaki/app/echoServer/jwtx"
	"github.com/TonCerques/alugaki/model"
	itemrepo "github.com/TonCerques/alugaki/repository/item"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Items itemrepo.Repo
	V     *validator.Validate
	Log   *slog.Logger
}

// GET /v1/items
func (h *Controller) List(c echo.Context) error {
	items, err := h.Items.FindAll(c.Request().Context())
	if err != nil {
		h.Log.Error("item list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// GET /v1/items/:id
func (h *Controller) Get(c echo.Context) error {
	it, err := h.Items.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("item get", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if it == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": it})
}

// POST /v1/items
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	it, err := h.Items.Create(c.Request().Context(), model.Item{
		OwnerID:          jwtx.UID(c),
		Title:            req.Title,
		Description:      req.Description,
		Category:         model.ItemCategory(req.Category),
		DailyPrice:       req.DailyPrice,
		ReplacementValue: req.ReplacementValue,
		MinRentDays:      req.MinRentDays,
		Images:           req.Images,
	})
	if err != nil {
		h.Log.Error("item create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": it})
}

// GET /v1/users/me/items
func (h *Controller) Mine(c echo.Context) error {
	items, err := h.Items.FindByOwner(c.Request().Context(), jwtx.UID(c))
	if err != nil {
		h.Log.Error("item mine", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// PATCH /v1/items/:id
func (h *Controller) Update(c echo.Context) error {
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	if forbidden, err := h.notOwner(c); err != nil || forbidden {
		return err
	}

	var category *model.ItemCategory
	if req.Category != nil {
		cat := model.ItemCategory(*req.Category)
		category = &cat
	}
	it, err := h.Items.Update(c.Request().Context(), c.Param("id"), itemrepo.Update{
		Title:            req.Title,
		Description:      req.Description,
		Category:         category,
		DailyPrice:       req.DailyPrice,
		ReplacementValue: req.ReplacementValue,
		MinRentDays:      req.MinRentDays,
		Images:           req.Images,
		IsActive:         req.IsActive,
	})
	if err != nil {
		h.Log.Error("item update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if it == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": it})
}

// DELETE /v1/items/:id (soft delete)
func (h *Controller) Deactivate(c echo.Context) error {
	if forbidden, err := h.notOwner(c); err != nil || forbidden {
		return err
	}
	it, err := h.Items.Deactivate(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("item deactivate", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if it == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": it})
}

// notOwner rejects mutations by anyone but the item's owner. When it returns
// (true, err), err is the response already written.
func (h *Controller) notOwner(c echo.Context) (bool, error) {
	it, err := h.Items.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		h.Log.Error("item lookup", "err", err)
		return true, c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if it == nil {
		return true, c.JSON(http.StatusNotFound, echo.Map{"message": "item not found"})
	}
	if it.OwnerID != jwtx.UID(c) {
		return true, c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	return false, nil
}
