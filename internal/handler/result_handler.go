package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-results-api/internal/dto"
	"github.com/noah-isme/sma-results-api/internal/service"
	appErrors "github.com/noah-isme/sma-results-api/pkg/errors"
	"github.com/noah-isme/sma-results-api/pkg/response"
)

type resultService interface {
	SubjectOutcome(ctx context.Context, req dto.SubjectResultRequest) (*dto.SubjectResultResponse, error)
	TermResult(ctx context.Context, req dto.TermResultRequest) (*dto.TermResultResponse, error)
	FinalResult(ctx context.Context, req dto.FinalResultRequest) (*dto.FinalResultResponse, error)
	ReportCard(ctx context.Context, req dto.ReportCardRequest) (*dto.ReportCardResponse, error)
	StudentReportCard(ctx context.Context, studentID, academicYear string) (*dto.ReportCardResponse, error)
	ClassResults(ctx context.Context, classID, academicYear string) (*dto.ClassResultsResponse, error)
}

type resultExporter interface {
	ReportCard(ctx context.Context, studentID, academicYear, format string) (*service.ExportFile, error)
	ClassResults(ctx context.Context, classID, academicYear, format string) (*service.ExportFile, error)
}

// ResultHandler exposes result calculation and report card endpoints.
type ResultHandler struct {
	results resultService
	exports resultExporter
}

// NewResultHandler constructs a ResultHandler.
func NewResultHandler(results resultService, exports resultExporter) *ResultHandler {
	return &ResultHandler{results: results, exports: exports}
}

// SubjectResult godoc
// @Summary Score a single subject
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body dto.SubjectResultRequest true "Subject marks"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /results/subject [post]
func (h *ResultHandler) SubjectResult(c *gin.Context) {
	var req dto.SubjectResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	resp, err := h.results.SubjectOutcome(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// TermResult godoc
// @Summary Evaluate one term
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body dto.TermResultRequest true "Term marks"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /results/term [post]
func (h *ResultHandler) TermResult(c *gin.Context) {
	var req dto.TermResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	resp, err := h.results.TermResult(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// FinalResult godoc
// @Summary Evaluate the academic year
// @Description Omitted terms are skipped. Absences and failures accumulate across the supplied terms.
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body dto.FinalResultRequest true "Term marks"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /results/final [post]
func (h *ResultHandler) FinalResult(c *gin.Context) {
	var req dto.FinalResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	resp, err := h.results.FinalResult(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// ReportCard godoc
// @Summary Build a report card from posted marks
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body dto.ReportCardRequest true "Student and term marks"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /results/report-card [post]
func (h *ResultHandler) ReportCard(c *gin.Context) {
	var req dto.ReportCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	resp, err := h.results.ReportCard(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// StudentReportCard godoc
// @Summary Stored student report card
// @Tags Results
// @Produce json
// @Param id path string true "Student ID"
// @Param academic_year query string true "Academic year"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/report-card [get]
func (h *ResultHandler) StudentReportCard(c *gin.Context) {
	year := c.Query("academic_year")
	if year == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "academic_year required"))
		return
	}
	resp, err := h.results.StudentReportCard(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// ExportStudentReportCard godoc
// @Summary Download a student report card
// @Tags Results
// @Produce application/pdf
// @Produce text/csv
// @Param id path string true "Student ID"
// @Param academic_year query string true "Academic year"
// @Param format query string false "pdf or csv" default(pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /students/{id}/report-card/export [get]
func (h *ResultHandler) ExportStudentReportCard(c *gin.Context) {
	year := c.Query("academic_year")
	if year == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "academic_year required"))
		return
	}
	file, err := h.exports.ReportCard(c.Request.Context(), c.Param("id"), year, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// ClassResults godoc
// @Summary Class result sheet
// @Tags Results
// @Produce json
// @Param id path string true "Class ID"
// @Param academic_year query string true "Academic year"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{id}/results [get]
func (h *ResultHandler) ClassResults(c *gin.Context) {
	year := c.Query("academic_year")
	if year == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "academic_year required"))
		return
	}
	resp, err := h.results.ClassResults(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// ExportClassResults godoc
// @Summary Download a class result sheet
// @Tags Results
// @Produce application/pdf
// @Produce text/csv
// @Param id path string true "Class ID"
// @Param academic_year query string true "Academic year"
// @Param format query string false "pdf or csv" default(pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /classes/{id}/results/export [get]
func (h *ResultHandler) ExportClassResults(c *gin.Context) {
	year := c.Query("academic_year")
	if year == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "academic_year required"))
		return
	}
	file, err := h.exports.ClassResults(c.Request.Context(), c.Param("id"), year, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
