package handler

import (
	"casebook/internal/service"
	"casebook/pkg/response"

	"github.com/gin-gonic/gin"
)

// POST /add_transaction
func (h *Handler) AddTransaction(c *gin.Context) {
	var req service.AddEntryRequest
	if !bind(c, &req) {
		return
	}
	entry, err := h.ledgerService.AddEntry(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, entry)
}

// GET /get_transaction/:id
func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	entry, err := h.ledgerService.GetEntry(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, entry)
}

// POST /edit_transaction
func (h *Handler) EditTransaction(c *gin.Context) {
	var req service.EditEntryRequest
	if !bind(c, &req) {
		return
	}
	entry, err := h.ledgerService.EditEntry(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, entry)
}

// POST /delete_transaction/:id
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, err := h.ledgerService.DeleteEntry(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

// MarkBilled flags the client's unbilled billable entries.
// POST /client/:id/mark_billed
func (h *Handler) MarkBilled(c *gin.Context) {
	clientID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.MarkBilledRequest
	if !bind(c, &req) {
		return
	}
	result, err := h.ledgerService.MarkBilled(c.Request.Context(), clientID, &req, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, result)
}

// POST /add_note
func (h *Handler) AddNote(c *gin.Context) {
	var req service.AddNoteRequest
	if !bind(c, &req) {
		return
	}
	note, err := h.noteService.AddNote(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, note)
}

// POST /edit_note
func (h *Handler) EditNote(c *gin.Context) {
	var req service.EditNoteRequest
	if !bind(c, &req) {
		return
	}
	caseID, err := h.noteService.EditNote(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"case_id": caseID})
}

// POST /delete_note/:id
func (h *Handler) DeleteNote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, err := h.noteService.DeleteNote(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}
