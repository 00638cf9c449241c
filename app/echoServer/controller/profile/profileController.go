package profile

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/TonCerques/alugaki/app/echoServer/jwtx"
	"github.com/TonCerques/alugaki/model"
	profilerepo "github.com/TonCerques/alugaki/repository/profile"
	verificationrepo "github.com/TonCerques/alugaki/repository/verification"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UpdateProfileReq struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
}

type SubmitKycReq struct {
	DocumentType string `json:"document_type" validate:"required"`
}

type ReviewKycReq struct {
	Status string `json:"status" validate:"required,oneof=UNVERIFIED PENDING VERIFIED REJECTED"`
}

type Controller struct {
	Profiles profilerepo.Repo
	Logs     verificationrepo.Repo
	V        *validator.Validate
	Log      *slog.Logger
}

// GET /v1/profiles/me
func (h *Controller) Me(c echo.Context) error {
	p, err := h.Profiles.Find(c.Request().Context(), jwtx.UID(c))
	if err != nil {
		h.Log.Error("profile me", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if p == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "profile not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": p})
}

// PATCH /v1/profiles/me
func (h *Controller) Update(c echo.Context) error {
	var req UpdateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	p, err := h.Profiles.Update(c.Request().Context(), jwtx.UID(c), profilerepo.Update{
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Bio:       req.Bio,
	})
	if err != nil {
		h.Log.Error("profile update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if p == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "profile not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": p})
}

// POST /v1/kyc — submit a document; profile moves to PENDING
func (h *Controller) SubmitKyc(c echo.Context) error {
	var req SubmitKycReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	log, err := h.Logs.Create(c.Request().Context(), jwtx.UID(c), req.DocumentType)
	if err != nil {
		h.Log.Error("kyc submit", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": log})
}

// GET /v1/kyc — the caller's verification submissions
func (h *Controller) KycHistory(c echo.Context) error {
	logs, err := h.Logs.FindByUser(c.Request().Context(), jwtx.UID(c))
	if err != nil {
		h.Log.Error("kyc history", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": logs})
}

// PATCH /v1/profiles/:id/kyc — reviewer decision
func (h *Controller) ReviewKyc(c echo.Context) error {
	var req ReviewKycReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	p, err := h.Profiles.UpdateKycStatus(c.Request().Context(), c.Param("id"), model.KycStatus(req.Status))
	if err != nil {
		if errors.Is(err, profilerepo.ErrInvalidKycTransition) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "invalid kyc transition"})
		}
		h.Log.Error("kyc review", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if p == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "profile not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": p})
}
