package models

import "strings"

// NotSpecified is the bucket used when grouping by an empty field.
const NotSpecified = "Not Specified"

// DeveloperProfile holds the developer specific part of a user record.
type DeveloperProfile struct {
	Profession        string `json:"profession,omitempty"`
	ProfilePicture    string `json:"profile_picture,omitempty"`
	Skills            string `json:"skills,omitempty"`
	Description       string `json:"description,omitempty"`
	AvailableTime     string `json:"available_time,omitempty"`
	GithubAccount     string `json:"github_account,omitempty"`
	LinkedinAccount   string `json:"linkedin_account,omitempty"`
	EducationLevel    string `json:"education_level,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty"`
	ProficiencyPoints int    `json:"proficiency_points"`
	CourtesyPoints    int    `json:"courtesy_points"`
}

// ClientProfile holds the business specific part of a user record.
type ClientProfile struct {
	BusinessName        string `json:"business_name,omitempty"`
	BusinessCategory    string `json:"business_category,omitempty"`
	BusinessDescription string `json:"business_description,omitempty"`
	BusinessLogo        string `json:"business_logo,omitempty"`
}

// User is a full user record as returned by the profile and admin endpoints.
type User struct {
	ID        int64  `json:"id"`
	Role      Role   `json:"role,omitempty"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FullName  string `json:"fullname,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`

	DeveloperProfile *DeveloperProfile `json:"developer_profile,omitempty"`
	ClientProfile    *ClientProfile    `json:"client_profile,omitempty"`

	// Flattened business fields, older API responses put these at the top level.
	BusinessName        string `json:"business_name,omitempty"`
	BusinessCategory    string `json:"business_category,omitempty"`
	BusinessDescription string `json:"business_description,omitempty"`
	BusinessLogo        string `json:"business_logo,omitempty"`

	// Jobs posted by a business, present on the public business profile.
	Jobs []Job `json:"jobs,omitempty"`
}

// Name returns a display name for the user.
func (u User) Name() string {
	switch {
	case u.FirstName != "":
		return strings.TrimSpace(u.FirstName + " " + u.LastName)
	case u.FullName != "":
		return u.FullName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

// Profession returns the developer's profession or NotSpecified.
func (u User) Profession() string {
	if u.DeveloperProfile == nil || u.DeveloperProfile.Profession == "" {
		return NotSpecified
	}
	return u.DeveloperProfile.Profession
}

// Business returns the business profile, preferring the nested client_profile
// over the flattened fields.
func (u User) Business() ClientProfile {
	if u.ClientProfile != nil {
		return *u.ClientProfile
	}
	return ClientProfile{
		BusinessName:        u.BusinessName,
		BusinessCategory:    u.BusinessCategory,
		BusinessDescription: u.BusinessDescription,
		BusinessLogo:        u.BusinessLogo,
	}
}

// Category returns the business category or NotSpecified.
func (u User) Category() string {
	if c := u.Business().BusinessCategory; c != "" {
		return c
	}
	return NotSpecified
}

// BusinessProfileUpdate is the body of PATCH /client_details.
type BusinessProfileUpdate struct {
	BusinessName        string `json:"business_name,omitempty"`
	BusinessCategory    string `json:"business_category,omitempty"`
	BusinessDescription string `json:"business_description,omitempty"`
	BusinessLogo        string `json:"business_logo,omitempty"`
}

// DeveloperProfileUpdate is the body of POST /developer_details.
type DeveloperProfileUpdate struct {
	Profession        string `json:"profession,omitempty"`
	ProfilePicture    string `json:"profile_picture,omitempty"`
	Skills            string `json:"skills,omitempty"`
	Description       string `json:"description,omitempty"`
	AvailableTime     string `json:"available_time,omitempty"`
	GithubAccount     string `json:"github_account,omitempty"`
	LinkedinAccount   string `json:"linkedin_account,omitempty"`
	EducationLevel    string `json:"education_level,omitempty"`
	YearsOfExperience *int   `json:"years_of_experience,omitempty"`
}

// DevelopersResponse is the body of GET /admin/developers.
type DevelopersResponse struct {
	Developers []User `json:"developers"`
}

// ClientsResponse is the body of GET /admin/clients.
type ClientsResponse struct {
	Clients []User `json:"clients"`
}
