package handler

import (
	"log/slog"
	"net/http"
	"time"

	"jobboard/internal/delivery/api/response"
	deliverycontext "jobboard/internal/delivery/context"
	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/errors"
	"jobboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CreateJobRequest is the body of POST /api/jobs.
type CreateJobRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=10000"`
	Company     string `json:"company" validate:"required,max=200"`
	Location    string `json:"location" validate:"required,max=200"`
	Salary      string `json:"salary" validate:"max=100"`
}

// PosterResponse is the public view of the user behind a posting.
type PosterResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// JobResponse is the wire shape of a posting.
type JobResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Company     string          `json:"company"`
	Location    string          `json:"location"`
	Salary      string          `json:"salary,omitempty"`
	PostedBy    *PosterResponse `json:"postedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewJobResponse maps a job entity to its wire shape.
func NewJobResponse(job *entity.Job) JobResponse {
	resp := JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Company:     job.Company,
		Location:    job.Location,
		Salary:      job.Salary,
		CreatedAt:   job.CreatedAt,
	}
	if job.Poster != nil {
		resp.PostedBy = &PosterResponse{ID: job.Poster.ID, Name: job.Poster.Name}
	}

	return resp
}

// JobHandler holds dependencies for job posting handlers.
type JobHandler struct {
	uc     usecase.JobUsecase
	logger *slog.Logger
}

// NewJobHandler is the constructor for JobHandler, injected by Fx.
func NewJobHandler(uc usecase.JobUsecase, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListJobs returns every posting, newest first.
func (h *JobHandler) ListJobs(c echo.Context) error {
	jobs, err := h.uc.ListJobs(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	resp := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, NewJobResponse(job))
	}

	return response.Success(c, http.StatusOK, resp)
}

// CreateJob publishes a posting for the authenticated employer.
// Must be mounted behind AuthMiddleware.Authenticate.
func (h *JobHandler) CreateJob(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrNoToken
	}
	role, _ := deliverycontext.GetRole(c)

	// Role is checked before the body so job seekers always see 403.
	if !role.CanPostJobs() {
		return domainerrors.ErrEmployerRequired
	}

	var req CreateJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.uc.CreateJob(c.Request().Context(), &usecase.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		PostedBy:    userID,
		Role:        role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, NewJobResponse(job))
}
