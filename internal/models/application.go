// internal/models/application.go
package models

// ApplicationStatus is the status recorded for a student and listing pair.
type ApplicationStatus string

const (
	ApplicationViewed  ApplicationStatus = "viewed"
	ApplicationApplied ApplicationStatus = "applied"
	ApplicationSaved   ApplicationStatus = "saved"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationViewed, ApplicationApplied, ApplicationSaved:
		return true
	}
	return false
}

type Application struct {
	ID           int               `json:"id"`
	UserID       int               `json:"user_id"`
	InternshipID int               `json:"internship_id"`
	Status       ApplicationStatus `json:"status"`
	AppliedAt    string            `json:"applied_at,omitempty"`
}

type ApplicationRequest struct {
	UserID       int               `json:"user_id"`
	InternshipID int               `json:"internship_id"`
	Status       ApplicationStatus `json:"status"`
}

type ApplicationResponse struct {
	Message     string      `json:"message"`
	Application Application `json:"application"`
}

type ApplicationsResponse struct {
	Applications []Application `json:"applications"`
}

// Applicant pairs a student with one of their applications.
type Applicant struct {
	Profile     Profile     `json:"profile"`
	Application Application `json:"application"`
}
