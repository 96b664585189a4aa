package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wolfeidau/devmarket/internal/models"
)

// DevelopersService covers developer profiles.
type DevelopersService struct {
	c *Client
}

func (s *DevelopersService) GetProfile(ctx context.Context, developerID int64) (*models.User, error) {
	var user models.User
	if err := s.c.do(ctx, "developers.get_profile", http.MethodGet, fmt.Sprintf("/developer_details/%d", developerID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the logged in developer.
func (s *DevelopersService) UpdateProfile(ctx context.Context, update models.DeveloperProfileUpdate) (*models.User, error) {
	var user models.User
	if err := s.c.do(ctx, "developers.update_profile", http.MethodPost, "/developer_details", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
