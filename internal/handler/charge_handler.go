package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/malshehri/groupbuy-checkout/internal/dto"
	"github.com/malshehri/groupbuy-checkout/internal/service"
)

type ChargeHandler struct {
	svc *service.ChargeService
}

func NewChargeHandler(svc *service.ChargeService) *ChargeHandler {
	return &ChargeHandler{svc: svc}
}

// Get verifies a recorded charge by its gateway transaction ID.
func (h *ChargeHandler) Get(c *gin.Context) {
	charge, err := h.svc.GetByTransactionID(c.Request.Context(), c.Param("transaction_id"))
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "transaction not found"})
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, charge)
}

// List pages through the charge log, newest first.
func (h *ChargeHandler) List(c *gin.Context) {
	params := dto.ParsePagination(c)

	charges, total, err := h.svc.List(c.Request.Context(), params.Page, params.PageSize)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ChargeListResponse{
		Charges:    charges,
		Pagination: dto.NewPagination(params.Page, params.PageSize, total),
	})
}

// Stats reports per-method settle/fail counts and volumes.
func (h *ChargeHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
