package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/wolfeidau/devmarket/internal/models"
)

// ProfessionsService covers the profession catalog and its learning content.
type ProfessionsService struct {
	c *Client
}

func professionPath(professionID int64, parts ...string) string {
	p := fmt.Sprintf("/professions/%d", professionID)
	if len(parts) > 0 {
		p += "/" + strings.Join(parts, "/")
	}
	return p
}

func (s *ProfessionsService) List(ctx context.Context) ([]models.Profession, error) {
	var resp models.ProfessionsResponse
	if err := s.c.do(ctx, "professions.list", http.MethodGet, "/professions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Professions, nil
}

// Get fetches a profession with its exam links, hackathons and code quizzes.
func (s *ProfessionsService) Get(ctx context.Context, professionID int64) (*models.Profession, error) {
	var p models.Profession
	if err := s.c.do(ctx, "professions.get", http.MethodGet, professionPath(professionID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByName returns the catalog entry whose name matches exactly.
func (s *ProfessionsService) FindByName(ctx context.Context, name string) (*models.Profession, error) {
	professions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range professions {
		if p.Name == name {
			return s.Get(ctx, p.ID)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrProfessionNotFound, name)
}

func (s *ProfessionsService) Create(ctx context.Context, p models.Profession) (*models.Profession, error) {
	var created models.Profession
	if err := s.c.do(ctx, "professions.create", http.MethodPost, "/professions", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *ProfessionsService) Update(ctx context.Context, professionID int64, p models.Profession) (*models.Profession, error) {
	var updated models.Profession
	if err := s.c.do(ctx, "professions.update", http.MethodPut, professionPath(professionID), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ProfessionsService) Delete(ctx context.Context, professionID int64) error {
	return s.c.do(ctx, "professions.delete", http.MethodDelete, professionPath(professionID), nil, nil)
}

func (s *ProfessionsService) AddExamLink(ctx context.Context, professionID int64, link models.ExamLink) error {
	if link.DifficultyLevel == "" {
		link.DifficultyLevel = models.DefaultDifficulty
	}
	return s.c.do(ctx, "professions.add_exam_link", http.MethodPost, professionPath(professionID, "exam_links"), link, nil)
}

func (s *ProfessionsService) UpdateExamLink(ctx context.Context, professionID, examID int64, link models.ExamLink) error {
	path := professionPath(professionID, "exam_links", fmt.Sprint(examID))
	return s.c.do(ctx, "professions.update_exam_link", http.MethodPut, path, link, nil)
}

func (s *ProfessionsService) DeleteExamLink(ctx context.Context, professionID, examID int64) error {
	path := professionPath(professionID, "exam_links", fmt.Sprint(examID))
	return s.c.do(ctx, "professions.delete_exam_link", http.MethodDelete, path, nil, nil)
}

// AddHackathon normalises the hackathon dates before posting it.
func (s *ProfessionsService) AddHackathon(ctx context.Context, professionID int64, h models.Hackathon) error {
	if err := h.Normalize(); err != nil {
		return err
	}
	return s.c.do(ctx, "professions.add_hackathon", http.MethodPost, professionPath(professionID, "hackathons"), h, nil)
}

func (s *ProfessionsService) UpdateHackathon(ctx context.Context, professionID, hackathonID int64, h models.Hackathon) error {
	if err := h.Normalize(); err != nil {
		return err
	}
	path := professionPath(professionID, "hackathons", fmt.Sprint(hackathonID))
	return s.c.do(ctx, "professions.update_hackathon", http.MethodPut, path, h, nil)
}

func (s *ProfessionsService) DeleteHackathon(ctx context.Context, professionID, hackathonID int64) error {
	path := professionPath(professionID, "hackathons", fmt.Sprint(hackathonID))
	return s.c.do(ctx, "professions.delete_hackathon", http.MethodDelete, path, nil, nil)
}

func (s *ProfessionsService) AddCodeQuiz(ctx context.Context, professionID int64, q models.CodeQuiz) error {
	if q.DifficultyLevel == "" {
		q.DifficultyLevel = models.DefaultDifficulty
	}
	return s.c.do(ctx, "professions.add_code_quiz", http.MethodPost, professionPath(professionID, "code_quizzes"), q, nil)
}

func (s *ProfessionsService) UpdateCodeQuiz(ctx context.Context, professionID, quizID int64, q models.CodeQuiz) error {
	path := professionPath(professionID, "code_quizzes", fmt.Sprint(quizID))
	return s.c.do(ctx, "professions.update_code_quiz", http.MethodPut, path, q, nil)
}

func (s *ProfessionsService) DeleteCodeQuiz(ctx context.Context, professionID, quizID int64) error {
	path := professionPath(professionID, "code_quizzes", fmt.Sprint(quizID))
	return s.c.do(ctx, "professions.delete_code_quiz", http.MethodDelete, path, nil, nil)
}
