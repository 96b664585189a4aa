package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrHackathonFieldsRequired is returned when a hackathon is missing its title or start date.
	ErrHackathonFieldsRequired = errors.New("title and start date are required")

	// ErrInvalidDate is returned when a date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)

// DefaultDifficulty is the difficulty assigned to exams and quizzes when none is given.
const DefaultDifficulty = "intermediate"

// Profession groups learning content for one kind of developer.
type Profession struct {
	ID          int64       `json:"id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	ExamLinks   []ExamLink  `json:"exam_links,omitempty"`
	Hackathons  []Hackathon `json:"hackathons,omitempty"`
	CodeQuizzes []CodeQuiz  `json:"code_quizzes,omitempty"`
}

// ExamLink points at an external certification or exam.
type ExamLink struct {
	ID              int64  `json:"id,omitempty"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	URL             string `json:"url"`
	DifficultyLevel string `json:"difficulty_level,omitempty"`
}

// Hackathon is an event listed under a profession.
type Hackathon struct {
	ID               int64   `json:"id,omitempty"`
	Title            string  `json:"title"`
	Description      string  `json:"description,omitempty"`
	StartDate        string  `json:"start_date"`
	EndDate          *string `json:"end_date"`
	RegistrationLink string  `json:"registration_link,omitempty"`
	Location         string  `json:"location,omitempty"`
	PrizePool        string  `json:"prize_pool,omitempty"`
}

// CodeQuiz is a practice quiz listed under a profession.
type CodeQuiz struct {
	ID              int64  `json:"id,omitempty"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DifficultyLevel string `json:"difficulty_level,omitempty"`
	QuizURL         string `json:"quiz_url,omitempty"`
	EstimatedTime   int    `json:"estimated_time,omitempty"`
}

// ProfessionsResponse is the body of GET /professions.
type ProfessionsResponse struct {
	Professions []Profession `json:"professions"`
}

// Normalize validates a hackathon and rewrites its dates as RFC 3339 in UTC.
// Dates may be given as RFC 3339 timestamps or as plain YYYY-MM-DD dates.
func (h *Hackathon) Normalize() error {
	if strings.TrimSpace(h.Title) == "" || h.StartDate == "" {
		return ErrHackathonFieldsRequired
	}

	start, err := parseDate(h.StartDate)
	if err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	h.StartDate = start

	if h.EndDate != nil && *h.EndDate == "" {
		h.EndDate = nil
	}
	if h.EndDate != nil {
		end, err := parseDate(*h.EndDate)
		if err != nil {
			return fmt.Errorf("end date: %w", err)
		}
		h.EndDate = &end
	}

	if h.Location == "" {
		h.Location = "online"
	}

	return nil
}

func parseDate(s string) (string, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
