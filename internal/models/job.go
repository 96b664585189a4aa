package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrJobTitleRequired is returned when a job posting has no title.
var ErrJobTitleRequired = errors.New("job title is required")

// Job posting defaults.
const (
	DefaultContractType = "full-time"
	DefaultHoursPerWeek = 40
	DefaultLocationType = "remote"
	DefaultJobStatus    = "open"
)

// BusinessSummary is the business attached to a job posting.
type BusinessSummary struct {
	ID                  int64  `json:"id"`
	BusinessName        string `json:"business_name,omitempty"`
	BusinessCategory    string `json:"business_category,omitempty"`
	BusinessDescription string `json:"business_description,omitempty"`
	BusinessLogo        string `json:"business_logo,omitempty"`
}

// Job is a job posting. The yaml tags cover the fields a business can author
// in a posting file.
type Job struct {
	ID                       int64    `json:"id,omitempty" yaml:"-"`
	Title                    string   `json:"title" yaml:"title"`
	Position                 string   `json:"position,omitempty" yaml:"position"`
	Description              string   `json:"description,omitempty" yaml:"description"`
	ContractType             string   `json:"contract_type,omitempty" yaml:"contractType"`
	HoursPerWeek             int      `json:"hours_per_week,omitempty" yaml:"hoursPerWeek"`
	LocationType             string   `json:"location_type,omitempty" yaml:"locationType"`
	LocationDetails          string   `json:"location_details,omitempty" yaml:"locationDetails"`
	RolesAndResponsibilities []string `json:"roles_and_responsibilities" yaml:"rolesAndResponsibilities"`
	Requirements             []string `json:"requirements" yaml:"requirements"`
	DesiredSkills            []string `json:"desired_skills" yaml:"desiredSkills"`
	ExperienceRequired       string   `json:"experience_required,omitempty" yaml:"experienceRequired"`
	Status                   string   `json:"status,omitempty" yaml:"status"`

	PostedAt          string           `json:"posted_at,omitempty" yaml:"-"`
	ClientID          int64            `json:"client_id,omitempty" yaml:"-"`
	Client            *BusinessSummary `json:"client,omitempty" yaml:"-"`
	AssignedDeveloper *User            `json:"assigned_developer,omitempty" yaml:"-"`
}

// ApplyDefaults fills unset fields with the posting defaults.
func (j *Job) ApplyDefaults() {
	if j.ContractType == "" {
		j.ContractType = DefaultContractType
	}
	if j.HoursPerWeek == 0 {
		j.HoursPerWeek = DefaultHoursPerWeek
	}
	if j.LocationType == "" {
		j.LocationType = DefaultLocationType
	}
	if j.Status == "" {
		j.Status = DefaultJobStatus
	}
	if j.RolesAndResponsibilities == nil {
		j.RolesAndResponsibilities = []string{}
	}
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	if j.DesiredSkills == nil {
		j.DesiredSkills = []string{}
	}
}

// Validate checks the posting can be submitted.
func (j Job) Validate() error {
	if j.Title == "" {
		return ErrJobTitleRequired
	}
	if j.HoursPerWeek < 0 {
		return fmt.Errorf("hours per week must not be negative, got %d", j.HoursPerWeek)
	}
	return nil
}

// JobList is the body of GET /jobs. Businesses receive either a bare array or
// {"jobs": [...]}; developers receive {"jobs": [...], "clients": [...]}.
type JobList struct {
	Jobs    []Job             `json:"jobs"`
	Clients []BusinessSummary `json:"clients,omitempty"`
}

// UnmarshalJSON accepts both the array and the object form.
func (l *JobList) UnmarshalJSON(data []byte) error {
	var jobs []Job
	if err := json.Unmarshal(data, &jobs); err == nil {
		l.Jobs = jobs
		l.Clients = nil
		return nil
	}

	type plain JobList
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode job list: %w", err)
	}
	*l = JobList(p)
	return nil
}

// JobApplicants is one entry of GET /client/:id/applicants.
type JobApplicants struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Position          string `json:"position,omitempty"`
	Status            string `json:"status,omitempty"`
	AssignedDeveloper *User  `json:"assigned_developer,omitempty"`
	Applicants        []User `json:"applicants,omitempty"`
	ApplicantsList    []User `json:"applicants_list,omitempty"`
	Developers        []User `json:"developers,omitempty"`
}

// Candidates returns the developers linked to the job, falling back through
// the field names the API has used over time.
func (j JobApplicants) Candidates() []User {
	switch {
	case len(j.Applicants) > 0:
		return j.Applicants
	case len(j.ApplicantsList) > 0:
		return j.ApplicantsList
	default:
		return j.Developers
	}
}

// ApplicantsResponse is the body of GET /client/:id/applicants.
type ApplicantsResponse struct {
	ApplicantsByJob []JobApplicants `json:"applicants_by_job"`
}
