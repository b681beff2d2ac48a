package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"casebook/internal/service"
	"casebook/pkg/response"

	"github.com/gin-gonic/gin"
)

// Report renders the client balance report as an HTML page.
// GET /report/:client_id
func (h *Handler) Report(c *gin.Context) {
	clientID, ok := paramID(c, "client_id")
	if !ok {
		return
	}
	r, err := h.reportService.ClientReport(c.Request.Context(), clientID)
	if err != nil {
		h.fail(c, err)
		return
	}
	html, err := r.HTML()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GET /export_excel?client_code=xxx
func (h *Handler) ExportExcel(c *gin.Context) {
	h.export(c, h.reportService.ExportXLSX)
}

// GET /export_pdf?client_code=xxx
func (h *Handler) ExportPDF(c *gin.Context) {
	h.export(c, h.reportService.ExportPDF)
}

func (h *Handler) export(c *gin.Context, render func(context.Context, int64) (*service.File, error)) {
	clientID, err := strconv.ParseInt(c.Query("client_code"), 10, 64)
	if err != nil || clientID <= 0 {
		response.ParamError(c, "client_code must be a positive integer")
		return
	}
	file, err := render(c.Request.Context(), clientID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
