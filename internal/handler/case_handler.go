package handler

import (
	"casebook/internal/service"
	"casebook/pkg/response"

	"github.com/gin-gonic/gin"
)

// Dashboard returns the sidebar data and the selected case, if any.
// GET /dashboard?case_id=xxx&page=n
func (h *Handler) Dashboard(c *gin.Context) {
	caseID, ok := queryID(c, "case_id")
	if !ok {
		return
	}
	d, err := h.dashboardService.Dashboard(c.Request.Context(), caseID, queryPage(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, d)
}

// GET /search?q=xxx
func (h *Handler) Search(c *gin.Context) {
	results, err := h.searchService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, results)
}

// GET /client_search?q=xxx
func (h *Handler) ClientSearch(c *gin.Context) {
	results, err := h.searchService.ClientSearch(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, results)
}

// AddCase opens a case.
// POST /add_case
func (h *Handler) AddCase(c *gin.Context) {
	var req service.AddCaseRequest
	if !bind(c, &req) {
		return
	}
	created, err := h.caseService.AddCase(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateCaseStatus changes status, substatus and next action date together.
// POST /update_case_status
func (h *Handler) UpdateCaseStatus(c *gin.Context) {
	var req service.ChangeStatusRequest
	if !bind(c, &req) {
		return
	}
	updated, changed, err := h.caseService.ChangeStatus(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"case":    updated,
		"changed": changed,
	})
}

// UndoStatus reverts the most recent status change.
// POST /undo_status/:case_id
func (h *Handler) UndoStatus(c *gin.Context) {
	caseID, ok := paramID(c, "case_id")
	if !ok {
		return
	}
	restored, err := h.caseService.UndoStatus(c.Request.Context(), caseID, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, restored)
}

type RenameDebtorRequest struct {
	CaseID int64  `form:"case_id" json:"case_id" binding:"required"`
	Name   string `form:"name" json:"name" binding:"required"`
}

// POST /rename_debtor
func (h *Handler) RenameDebtor(c *gin.Context) {
	var req RenameDebtorRequest
	if !bind(c, &req) {
		return
	}
	if err := h.caseService.RenameDebtor(c.Request.Context(), req.CaseID, req.Name); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, gin.H{"case_id": req.CaseID})
}
