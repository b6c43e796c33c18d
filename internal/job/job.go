package job

import (
	"time"

	"github.com/google/uuid"

	"github.com/resumake/resumake-api/internal/service"
)

// Status represents the current state of a job
type Status string

// Possible job status values
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job is one queued resume generation request and its lifecycle record.
type Job struct {
	ID        uuid.UUID
	Status    Status
	Request   service.GenerateRequest
	Result    string
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a pending Job for the given request.
func New(req service.GenerateRequest) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:        uuid.New(),
		Status:    StatusPending,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
