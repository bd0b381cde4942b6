package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"al-muallim/backend/internal/service"
	"al-muallim/backend/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

// ExportHandler serves the document export endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// PlanPDF exports one subject's weekly plan as a PDF.
// GET /api/v1/export/plan/pdf?subject=Math&grade=Grade+1&week=3
func (h *ExportHandler) PlanPDF(c *gin.Context) {
	subject, grade, week, ok := planExportParams(c)
	if !ok {
		return
	}
	h.serve(c, pdfContentType, func(ctx context.Context) (*bytes.Buffer, string, error) {
		return h.exportSvc.PlanPDF(ctx, subject, grade, week)
	})
}

// PlanExcel exports one subject's weekly plan as a workbook.
// GET /api/v1/export/plan/excel?subject=Math&grade=Grade+1&week=3
func (h *ExportHandler) PlanExcel(c *gin.Context) {
	subject, grade, week, ok := planExportParams(c)
	if !ok {
		return
	}
	h.serve(c, xlsxContentType, func(ctx context.Context) (*bytes.Buffer, string, error) {
		return h.exportSvc.PlanExcel(ctx, subject, grade, week)
	})
}

// MasterPDF exports the full grade/week plan set as a PDF.
// GET /api/v1/export/master/pdf?grade=Grade+1&week=3
func (h *ExportHandler) MasterPDF(c *gin.Context) {
	grade, week, ok := masterExportParams(c)
	if !ok {
		return
	}
	h.serve(c, pdfContentType, func(ctx context.Context) (*bytes.Buffer, string, error) {
		return h.exportSvc.MasterPDF(ctx, grade, week)
	})
}

// MasterExcel exports the full grade/week plan set as a workbook.
// GET /api/v1/export/master/excel?grade=Grade+1&week=3
func (h *ExportHandler) MasterExcel(c *gin.Context) {
	grade, week, ok := masterExportParams(c)
	if !ok {
		return
	}
	h.serve(c, xlsxContentType, func(ctx context.Context) (*bytes.Buffer, string, error) {
		return h.exportSvc.MasterExcel(ctx, grade, week)
	})
}

// serve runs one export and streams the document as a download.
func (h *ExportHandler) serve(c *gin.Context, contentType string, render func(context.Context) (*bytes.Buffer, string, error)) {
	buf, filename, err := render(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func planExportParams(c *gin.Context) (subject, grade string, week int, ok bool) {
	subject = c.Query("subject")
	grade = c.Query("grade")
	if subject == "" || grade == "" {
		response.BadRequest(c, 10001, "subject and grade are required")
		return "", "", 0, false
	}
	week, ok = weekParam(c)
	return subject, grade, week, ok
}

func masterExportParams(c *gin.Context) (grade string, week int, ok bool) {
	grade = c.Query("grade")
	if grade == "" {
		response.BadRequest(c, 10001, "grade is required")
		return "", 0, false
	}
	week, ok = weekParam(c)
	return grade, week, ok
}

// handleExportError maps export module business errors to responses.
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownWeek):
		response.BadRequest(c, 11001, "week number is outside the academic calendar")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 14001, "failed to generate export document")
	default:
		response.InternalError(c)
	}
}
