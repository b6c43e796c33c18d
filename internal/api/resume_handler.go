package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/resumake/resumake-api/internal/api/shared"
	"github.com/resumake/resumake-api/internal/domain"
	"github.com/resumake/resumake-api/internal/job"
	"github.com/resumake/resumake-api/internal/service"
	"github.com/resumake/resumake-api/internal/workflow"
)

// ResumeGenerator runs one resume generation request synchronously.
type ResumeGenerator interface {
	Generate(ctx context.Context, req service.GenerateRequest) (string, error)
}

// JobSubmitter queues a generation request for background processing.
type JobSubmitter interface {
	Submit(ctx context.Context, req service.GenerateRequest) (uuid.UUID, error)
}

// JobReader looks up a background job by ID.
type JobReader interface {
	Get(id uuid.UUID) (*job.Job, error)
}

// ResumeHandler handles resume generation HTTP requests.
type ResumeHandler struct {
	generator ResumeGenerator
	submitter JobSubmitter
	jobs      JobReader
	logger    *slog.Logger
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(generator ResumeGenerator, submitter JobSubmitter, jobs JobReader, logger *slog.Logger) *ResumeHandler {
	return &ResumeHandler{
		generator: generator,
		submitter: submitter,
		jobs:      jobs,
		logger:    logger,
	}
}

// decodeGenerateRequest parses and validates the request body, writing the
// error response itself when the payload is unusable.
func (h *ResumeHandler) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (service.GenerateRequest, bool) {
	var req GenerateResumeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return service.GenerateRequest{}, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return service.GenerateRequest{}, false
	}

	return service.GenerateRequest{
		GitHubURL:      req.GitHubURL,
		PortfolioURL:   req.PortfolioURL,
		JobDescription: req.JobDescription,
		OldResumeText:  req.OldResumeText,
		UserAdditions:  req.UserAdditions,
		UserFeedback:   req.UserFeedback,
	}, true
}

// GenerateResume handles POST /api/resumes/generate requests: the workflow
// runs within the request and the composed resume is returned directly.
func (h *ResumeHandler) GenerateResume(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	doc, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoInputs):
			shared.RespondWithError(w, r, http.StatusBadRequest, "At least one input must be provided")
		case errors.Is(err, workflow.ErrRunTimeout):
			shared.RespondWithError(w, r, http.StatusGatewayTimeout, "Resume generation timed out")
		default:
			h.logger.Error("resume generation failed", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate resume")
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResumeResponse{
		Resume: json.RawMessage(doc),
	})
}

// SubmitResume handles POST /api/resumes requests: the request is queued and
// processed in the background, and the job ID is returned for polling.
func (h *ResumeHandler) SubmitResume(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	id, err := h.submitter.Submit(r.Context(), req)
	if err != nil {
		if errors.Is(err, job.ErrQueueFull) {
			shared.RespondWithError(w, r, http.StatusTooManyRequests, "Job queue is full, try again later")
			return
		}
		h.logger.Error("failed to submit job", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to submit job")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, JobSubmittedResponse{
		JobID:  id.String(),
		Status: string(job.StatusPending),
	})
}

// GetResumeJob handles GET /api/resumes/{id} requests.
func (h *ResumeHandler) GetResumeJob(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid job ID")
		return
	}

	j, err := h.jobs.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Job not found")
			return
		}
		h.logger.Error("failed to look up job", "error", err, "job_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to look up job")
		return
	}

	resp := JobResponse{
		JobID:     j.ID.String(),
		Status:    string(j.Status),
		Error:     j.Error,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	if j.Status == job.StatusCompleted {
		resp.Resume = json.RawMessage(j.Result)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
