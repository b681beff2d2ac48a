package handler

import (
	"casebook/internal/service"
	"casebook/pkg/response"

	"github.com/gin-gonic/gin"
)

// GET /custom_fields
func (h *Handler) ListCustomFields(c *gin.Context) {
	fields, err := h.customFieldService.ListFields(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, fields)
}

// POST /custom_fields
func (h *Handler) DefineCustomField(c *gin.Context) {
	var req service.DefineFieldRequest
	if !bind(c, &req) {
		return
	}
	def, err := h.customFieldService.DefineField(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, def)
}

// GET /client/:id/custom_fields
func (h *Handler) ClientCustomFields(c *gin.Context) {
	clientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	fields, err := h.customFieldService.ListClientFields(c.Request.Context(), clientID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, fields)
}

type LinkFieldRequest struct {
	FieldID int64 `form:"field_id" json:"field_id" binding:"required"`
}

// POST /client/:id/custom_fields
func (h *Handler) LinkCustomField(c *gin.Context) {
	clientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req LinkFieldRequest
	if !bind(c, &req) {
		return
	}
	if err := h.customFieldService.LinkFieldToClient(c.Request.Context(), clientID, req.FieldID); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"client_id": clientID, "field_id": req.FieldID})
}

// GET /case/:case_id/custom_values
func (h *Handler) CaseCustomValues(c *gin.Context) {
	caseID, ok := paramID(c, "case_id")
	if !ok {
		return
	}
	values, err := h.customFieldService.ListCaseValues(c.Request.Context(), caseID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, values)
}

// POST /case/:case_id/custom_values
func (h *Handler) SetCaseCustomValue(c *gin.Context) {
	caseID, ok := paramID(c, "case_id")
	if !ok {
		return
	}
	var req service.SetCaseValueRequest
	if !bind(c, &req) {
		return
	}
	if err := h.customFieldService.SetCaseValue(c.Request.Context(), caseID, &req); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"case_id": caseID, "field_id": req.FieldID})
}
