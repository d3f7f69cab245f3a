package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-results-api/internal/dto"
	"github.com/noah-isme/sma-results-api/internal/models"
	appErrors "github.com/noah-isme/sma-results-api/pkg/errors"
	"github.com/noah-isme/sma-results-api/pkg/response"
)

type markService interface {
	List(ctx context.Context, filter models.MarkFilter) ([]models.ExamMark, error)
	BulkUpsert(ctx context.Context, req dto.BulkMarksRequest) (*dto.BulkMarksResult, error)
}

// MarkHandler exposes stored exam marks.
type MarkHandler struct {
	marks markService
}

// NewMarkHandler constructs a MarkHandler.
func NewMarkHandler(marks markService) *MarkHandler {
	return &MarkHandler{marks: marks}
}

// List godoc
// @Summary List exam marks
// @Tags Marks
// @Produce json
// @Param student_id query string false "Student ID"
// @Param class_id query string false "Class ID"
// @Param academic_year query string false "Academic year"
// @Param term query int false "Term (1-3)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /marks [get]
func (h *MarkHandler) List(c *gin.Context) {
	filter := models.MarkFilter{
		StudentID:    c.Query("student_id"),
		ClassID:      c.Query("class_id"),
		AcademicYear: c.Query("academic_year"),
	}
	if raw := c.Query("term"); raw != "" {
		term, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term must be a number"))
			return
		}
		filter.Term = term
	}
	marks, err := h.marks.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, marks, nil, map[string]interface{}{"count": len(marks)})
}

// BulkUpsert godoc
// @Summary Record a term's marks
// @Tags Marks
// @Accept json
// @Produce json
// @Param payload body dto.BulkMarksRequest true "Marks"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /marks/bulk [post]
func (h *MarkHandler) BulkUpsert(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.BulkMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	res, err := h.marks.BulkUpsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil, map[string]interface{}{"recorded_by": claims.UserID})
}
