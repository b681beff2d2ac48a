package handler

import (
	"casebook/internal/service"
	"casebook/pkg/response"

	"github.com/gin-gonic/gin"
)

// GET /charges
func (h *Handler) ListCharges(c *gin.Context) {
	charges, err := h.chargeService.ListCharges(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, charges)
}

// POST /charges
func (h *Handler) AddCharge(c *gin.Context) {
	var req service.AddChargeRequest
	if !bind(c, &req) {
		return
	}
	charge, err := h.chargeService.AddCharge(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, charge)
}

// DBStructure lists tables and columns. Admin only.
// GET /admin/db_structure
func (h *Handler) DBStructure(c *gin.Context) {
	tables, err := h.adminService.DBStructure(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, tables)
}
