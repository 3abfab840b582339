package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobboard/internal/delivery/api/validator"
	deliverycontext "jobboard/internal/delivery/context"
	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJobUsecase struct {
	jobs    []*entity.Job
	err     error
	created *usecase.CreateJobInput
}

func (s *stubJobUsecase) ListJobs(context.Context) ([]*entity.Job, error) {
	return s.jobs, s.err
}

func (s *stubJobUsecase) CreateJob(_ context.Context, input *usecase.CreateJobInput) (*entity.Job, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}

	return &entity.Job{
		ID:       uuid.New(),
		Title:    input.Title,
		PostedBy: input.PostedBy,
		Poster:   &entity.Poster{ID: input.PostedBy, Name: "Boss"},
	}, nil
}

func newJobHandler(uc usecase.JobUsecase) *JobHandler {
	return NewJobHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newRequestContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, "/api/jobs", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestNewJobResponse_PosterMapping(t *testing.T) {
	posterID := uuid.New()
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	withPoster := NewJobResponse(&entity.Job{
		Title:     "Go Engineer",
		PostedBy:  posterID,
		CreatedAt: createdAt,
		Poster:    &entity.Poster{ID: posterID, Name: "A"},
	})
	require.NotNil(t, withPoster.PostedBy)
	assert.Equal(t, posterID, withPoster.PostedBy.ID)
	assert.Equal(t, "A", withPoster.PostedBy.Name)

	orphan := NewJobResponse(&entity.Job{Title: "Orphan", PostedBy: posterID})
	raw, err := json.Marshal(orphan)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "postedBy")
	assert.Nil(t, decoded["postedBy"])
	assert.NotContains(t, decoded, "salary")
}

func TestJobHandler_ListJobsNeverNull(t *testing.T) {
	h := newJobHandler(&stubJobUsecase{})
	c, rec := newRequestContext(http.MethodGet, "")

	require.NoError(t, h.ListJobs(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestJobHandler_ListJobsPropagatesError(t *testing.T) {
	h := newJobHandler(&stubJobUsecase{err: domainerrors.ErrInternalError})
	c, _ := newRequestContext(http.MethodGet, "")

	assert.ErrorIs(t, h.ListJobs(c), domainerrors.ErrInternalError)
}

func TestJobHandler_CreateJobUsesTokenIdentity(t *testing.T) {
	uc := &stubJobUsecase{}
	h := newJobHandler(uc)
	userID := uuid.New()

	c, rec := newRequestContext(http.MethodPost,
		`{"title":"T","description":"D","company":"C","location":"L","postedBy":"`+uuid.NewString()+`"}`)
	deliverycontext.SetIdentity(c, userID, entity.RoleEmployer)

	require.NoError(t, h.CreateJob(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.created)
	assert.Equal(t, userID, uc.created.PostedBy)
	assert.Equal(t, entity.RoleEmployer, uc.created.Role)
	assert.Empty(t, uc.created.Salary)
}

func TestJobHandler_CreateJobRejectsJobSeekerBeforeValidation(t *testing.T) {
	uc := &stubJobUsecase{}
	h := newJobHandler(uc)

	c, _ := newRequestContext(http.MethodPost, `{}`)
	deliverycontext.SetIdentity(c, uuid.New(), entity.RoleJobSeeker)

	assert.ErrorIs(t, h.CreateJob(c), domainerrors.ErrEmployerRequired)
	assert.Nil(t, uc.created)
}

func TestJobHandler_CreateJobWithoutIdentity(t *testing.T) {
	h := newJobHandler(&stubJobUsecase{})
	c, _ := newRequestContext(http.MethodPost, `{}`)

	assert.ErrorIs(t, h.CreateJob(c), domainerrors.ErrNoToken)
}

func TestJobHandler_CreateJobValidation(t *testing.T) {
	uc := &stubJobUsecase{}
	h := newJobHandler(uc)

	c, _ := newRequestContext(http.MethodPost, `{"title":"T"}`)
	deliverycontext.SetIdentity(c, uuid.New(), entity.RoleEmployer)

	err := h.CreateJob(c)

	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "company is required")
	assert.Nil(t, uc.created)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newRequestContext(http.MethodGet, "")

	require.NoError(t, HealthCheck(c))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
