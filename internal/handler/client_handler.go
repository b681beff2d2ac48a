package handler

import (
	"casebook/internal/service"
	"casebook/pkg/response"

	"github.com/gin-gonic/gin"
)

// GET /client/:id
func (h *Handler) ClientDashboard(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	d, err := h.clientService.ClientDashboard(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, d)
}

// GET /client/:id/cases
func (h *Handler) ClientCases(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cases, err := h.clientService.ClientCases(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, cases)
}

// POST /client/add_client
func (h *Handler) AddClient(c *gin.Context) {
	var req service.AddClientRequest
	if !bind(c, &req) {
		return
	}
	client, err := h.clientService.AddClient(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, client)
}

// POST /client/rename_client
func (h *Handler) RenameClient(c *gin.Context) {
	var req service.RenameClientRequest
	if !bind(c, &req) {
		return
	}
	if err := h.clientService.RenameClient(c.Request.Context(), &req); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"client_id": req.ClientID})
}

// DeleteClient removes the client with all of its cases.
// DELETE /client/:id
func (h *Handler) DeleteClient(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}
