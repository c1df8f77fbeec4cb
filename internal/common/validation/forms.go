package validation

import (
	"strconv"
	"strings"

	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/models"
)

const (
	MinPasswordLength = 6
	MaxGPA            = 10.0
)

// Form schemas. "\\S" rejects whitespace-only values that minLength would let through.
const (
	LoginSchema = `{
		"type": "object",
		"required": ["email", "password"],
		"properties": {
			"email":    {"type": "string", "pattern": "\\S"},
			"password": {"type": "string", "minLength": 1}
		}
	}`

	SignupSchema = `{
		"type": "object",
		"required": ["name", "email", "password", "branch", "year", "skills", "interests", "location_pref"],
		"properties": {
			"name":      {"type": "string", "pattern": "\\S"},
			"email":     {"type": "string", "pattern": "^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\\.[a-zA-Z]{2,}$"},
			"password":  {"type": "string", "minLength": 6},
			"branch":    {"type": "string", "pattern": "\\S"},
			"year":      {"type": "string", "enum": ["1st", "2nd", "3rd", "4th", "postgraduate"]},
			"skills":    {"type": "string", "pattern": "\\S"},
			"interests": {"type": "string", "pattern": "\\S"},
			"gpa":       {"type": "string", "pattern": "^$|^[0-9]+(\\.[0-9]+)?$"},
			"location_pref": {
				"type": "array",
				"minItems": 1,
				"items": {"type": "string"}
			}
		}
	}`

	ListingSchema = `{
		"type": "object",
		"required": ["company", "title", "description", "required_skills", "location"],
		"properties": {
			"company":         {"type": "string", "pattern": "\\S"},
			"title":           {"type": "string", "pattern": "\\S"},
			"description":     {"type": "string", "pattern": "\\S"},
			"required_skills": {"type": "string", "pattern": "\\S"},
			"location":        {"type": "string", "pattern": "\\S"},
			"deadline":        {"type": "string", "pattern": "^$|^Rolling$|^[0-9]{4}-[0-9]{2}-[0-9]{2}$"}
		}
	}`
)

// ValidateLogin checks that both credentials are present.
func ValidateLogin(req models.LoginRequest) error {
	vr, err := Validate(LoginSchema, req)
	if err != nil {
		return err
	}
	if !vr.Valid {
		return errors.NewValidationError("Email and password required", vr.GetErrorMessages()...)
	}
	return nil
}

// SignupRequest validates the registration form and converts it into the
// wire payload: branch becomes major, a blank grade becomes the default and
// the selected locations are joined with ", ".
func SignupRequest(form models.SignupForm) (models.SignupRequest, error) {
	if form.Password != form.ConfirmPassword {
		return models.SignupRequest{}, errors.NewValidationError("Passwords do not match", "confirm_password")
	}
	if len(form.Password) < MinPasswordLength {
		return models.SignupRequest{}, errors.NewValidationError("Password must be at least 6 characters", "password")
	}

	form.LocationPref = SplitList(strings.Join(form.LocationPref, ","))
	vr, err := Validate(SignupSchema, form)
	if err != nil {
		return models.SignupRequest{}, err
	}

	gpa := models.DefaultGPA
	if g := strings.TrimSpace(form.GPA); g != "" && !vr.HasErrors("gpa") {
		parsed, perr := strconv.ParseFloat(g, 64)
		switch {
		case perr != nil:
			vr.Add("gpa", "must be a number", "INVALID_TYPE")
		case parsed < 0 || parsed > MaxGPA:
			vr.Add("gpa", "must be between 0 and 10", "MAXIMUM_VIOLATION")
		default:
			gpa = parsed
		}
	}
	if !vr.Valid {
		return models.SignupRequest{}, errors.NewValidationError(firstMessage(vr, "Please fill in all required fields"), vr.GetErrorMessages()...)
	}

	return models.SignupRequest{
		Name:         strings.TrimSpace(form.Name),
		Email:        strings.TrimSpace(form.Email),
		Password:     form.Password,
		Major:        form.Branch,
		Year:         form.Year,
		Skills:       form.Skills,
		Interests:    form.Interests,
		GPA:          gpa,
		LocationPref: JoinList(form.LocationPref),
	}, nil
}

// ValidateListing checks the fields the service requires for a new listing.
func ValidateListing(form models.ListingForm) error {
	vr, err := Validate(ListingSchema, form)
	if err != nil {
		return err
	}
	if !vr.Valid {
		return errors.NewValidationError("Missing required fields (company, title, description, skills, location)", vr.GetErrorMessages()...)
	}
	return nil
}

func firstMessage(vr *ValidationResult, fallback string) string {
	if len(vr.Errors) == 0 {
		return fallback
	}
	e := vr.Errors[0]
	return e.Field + ": " + e.Message
}

// SplitList expands a comma-joined field into trimmed, non-empty entries.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList is the inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(SplitList(strings.Join(items, ",")), ", ")
}
