package client

import (
	"context"
	"net/http"

	"github.com/wolfeidau/devmarket/internal/models"
)

// AdminService covers the administrator endpoints.
type AdminService struct {
	c *Client
}

type assignDeveloperRequest struct {
	JobID       int64 `json:"job_id"`
	DeveloperID int64 `json:"developer_id"`
}

type addDeveloperToClientRequest struct {
	DeveloperID int64 `json:"developer_id"`
	ClientID    int64 `json:"client_id"`
}

type developerPointsRequest struct {
	DeveloperID       int64 `json:"developer_id"`
	ProficiencyPoints int   `json:"proficiency_points"`
	CourtesyPoints    int   `json:"courtesy_points"`
}

func (s *AdminService) ListDevelopers(ctx context.Context) ([]models.User, error) {
	var resp models.DevelopersResponse
	if err := s.c.do(ctx, "admin.list_developers", http.MethodGet, "/admin/developers", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Developers, nil
}

func (s *AdminService) ListClients(ctx context.Context) ([]models.User, error) {
	var resp models.ClientsResponse
	if err := s.c.do(ctx, "admin.list_clients", http.MethodGet, "/admin/clients", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Clients, nil
}

// AssignDeveloper assigns a developer to a job.
func (s *AdminService) AssignDeveloper(ctx context.Context, jobID, developerID int64) error {
	req := assignDeveloperRequest{JobID: jobID, DeveloperID: developerID}
	return s.c.do(ctx, "admin.assign_developer", http.MethodPost, "/admin/assign_developer", req, nil)
}

// AddDeveloperToClient makes a developer visible to a business.
func (s *AdminService) AddDeveloperToClient(ctx context.Context, developerID, clientID int64) error {
	req := addDeveloperToClientRequest{DeveloperID: developerID, ClientID: clientID}
	return s.c.do(ctx, "admin.add_developer_to_client", http.MethodPost, "/admin/add_job_to_client", req, nil)
}

// AddDeveloperPoints adds proficiency and courtesy points to a developer.
func (s *AdminService) AddDeveloperPoints(ctx context.Context, developerID int64, proficiency, courtesy int) error {
	req := developerPointsRequest{
		DeveloperID:       developerID,
		ProficiencyPoints: proficiency,
		CourtesyPoints:    courtesy,
	}
	return s.c.do(ctx, "admin.developer_points", http.MethodPost, "/admin/developer_points", req, nil)
}
