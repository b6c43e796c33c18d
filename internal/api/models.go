package api

import (
	"encoding/json"
	"time"
)

// GenerateResumeRequest defines the payload for the resume generation
// endpoints. Every field is optional on its own; the service rejects
// requests that carry no usable input at all.
type GenerateResumeRequest struct {
	GitHubURL      string `json:"github_url"      validate:"omitempty,url"`
	PortfolioURL   string `json:"portfolio_url"   validate:"omitempty,url"`
	JobDescription string `json:"job_description" validate:"omitempty,min=1"`
	OldResumeText  string `json:"old_resume_text"`
	UserAdditions  string `json:"user_additions"`
	UserFeedback   string `json:"user_feedback"`
}

// GenerateResumeResponse is the synchronous generation result.
type GenerateResumeResponse struct {
	Resume json.RawMessage `json:"resume"`
}

// JobSubmittedResponse is returned when a generation job is accepted for
// background processing.
type JobSubmittedResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// JobResponse describes one background job's state. Resume is present only
// for completed jobs, Error only for failed ones.
type JobResponse struct {
	JobID     string          `json:"job_id"`
	Status    string          `json:"status"`
	Resume    json.RawMessage `json:"resume,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
