package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wolfeidau/devmarket/internal/models"
)

// ClientsService covers business (client role) profiles.
type ClientsService struct {
	c *Client
}

// GetProfile fetches a business profile, including its posted jobs.
func (s *ClientsService) GetProfile(ctx context.Context, clientID int64) (*models.User, error) {
	var user models.User
	if err := s.c.do(ctx, "clients.get_profile", http.MethodGet, fmt.Sprintf("/client_details/%d", clientID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the logged in business.
func (s *ClientsService) UpdateProfile(ctx context.Context, update models.BusinessProfileUpdate) (*models.User, error) {
	var user models.User
	if err := s.c.do(ctx, "clients.update_profile", http.MethodPatch, "/client_details", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetApplicants lists the business's jobs with their applicants.
func (s *ClientsService) GetApplicants(ctx context.Context, clientID int64) ([]models.JobApplicants, error) {
	var resp models.ApplicantsResponse
	if err := s.c.do(ctx, "clients.get_applicants", http.MethodGet, fmt.Sprintf("/client/%d/applicants", clientID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.ApplicantsByJob, nil
}
