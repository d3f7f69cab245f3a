package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-results-api/internal/dto"
	"github.com/noah-isme/sma-results-api/internal/middleware"
	"github.com/noah-isme/sma-results-api/internal/models"
)

type markServiceMock struct {
	filter models.MarkFilter
	req    dto.BulkMarksRequest
}

func (m *markServiceMock) List(ctx context.Context, filter models.MarkFilter) ([]models.ExamMark, error) {
	m.filter = filter
	return []models.ExamMark{{ID: "m-1"}, {ID: "m-2"}}, nil
}

func (m *markServiceMock) BulkUpsert(ctx context.Context, req dto.BulkMarksRequest) (*dto.BulkMarksResult, error) {
	m.req = req
	return &dto.BulkMarksResult{Saved: len(req.Items), Students: []string{"stu-1"}}, nil
}

func TestMarkHandlerList(t *testing.T) {
	svc := &markServiceMock{}
	handler := NewMarkHandler(svc)

	c, w := newGinContext(http.MethodGet, "/marks?student_id=stu-1&academic_year=2024&term=2", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.MarkFilter{StudentID: "stu-1", AcademicYear: "2024", Term: 2}, svc.filter)
	meta := decodeEnvelope(t, w)["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["count"])

	c, w = newGinContext(http.MethodGet, "/marks?student_id=stu-1&term=two", nil)
	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkHandlerBulkUpsert(t *testing.T) {
	svc := &markServiceMock{}
	handler := NewMarkHandler(svc)

	payload, _ := json.Marshal(dto.BulkMarksRequest{
		AcademicYear: "2024",
		Term:         1,
		Items:        []dto.BulkMarkItem{{StudentID: "stu-1", SubjectID: "math", TotalMarks: 100, ObtainedMarks: 70, PassingMarks: 33}},
	})
	c, w := newGinContext(http.MethodPost, "/marks/bulk", payload)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "teacher-1", Role: models.RoleTeacher})
	handler.BulkUpsert(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, svc.req.Items, 1)
	meta := decodeEnvelope(t, w)["meta"].(map[string]interface{})
	assert.Equal(t, "teacher-1", meta["recorded_by"])

	c, w = newGinContext(http.MethodPost, "/marks/bulk", payload)
	handler.BulkUpsert(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMetricsHandlerReady(t *testing.T) {
	handler := NewMetricsHandler(nil, pingerStub{err: context.DeadlineExceeded})
	c, w := newGinContext(http.MethodGet, "/ready", nil)
	handler.Ready(c)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	handler = NewMetricsHandler(nil, pingerStub{})
	c, w = newGinContext(http.MethodGet, "/ready", nil)
	handler.Ready(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newGinContext(http.MethodGet, "/metrics", nil)
	handler.Prometheus(c)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type pingerStub struct {
	err error
}

func (p pingerStub) PingContext(ctx context.Context) error {
	return p.err
}
