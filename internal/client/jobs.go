package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wolfeidau/devmarket/internal/models"
)

// JobsService covers job postings.
type JobsService struct {
	c *Client
}

// List returns the jobs visible to the caller. Developers also receive the
// businesses that posted them.
func (s *JobsService) List(ctx context.Context) (*models.JobList, error) {
	var list models.JobList
	if err := s.c.do(ctx, "jobs.list", http.MethodGet, "/jobs", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *JobsService) Get(ctx context.Context, jobID int64) (*models.Job, error) {
	var job models.Job
	if err := s.c.do(ctx, "jobs.get", http.MethodGet, fmt.Sprintf("/jobs/%d", jobID), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Create posts a new job after applying defaults and validating it.
func (s *JobsService) Create(ctx context.Context, job models.Job) (*models.Job, error) {
	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return nil, err
	}

	job.ID = 0
	job.ClientID = 0

	var created models.Job
	if err := s.c.do(ctx, "jobs.create", http.MethodPost, "/jobs", job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *JobsService) Update(ctx context.Context, jobID int64, job models.Job) (*models.Job, error) {
	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return nil, err
	}

	job.ID = 0
	job.ClientID = 0

	var updated models.Job
	if err := s.c.do(ctx, "jobs.update", http.MethodPatch, fmt.Sprintf("/jobs/%d", jobID), job, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *JobsService) Delete(ctx context.Context, jobID int64) error {
	return s.c.do(ctx, "jobs.delete", http.MethodDelete, fmt.Sprintf("/jobs/%d", jobID), nil, nil)
}
