package models

// SignupForm is the raw registration input before validation.
type SignupForm struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	Branch          string   `json:"branch"`
	Year            string   `json:"year"`
	Skills          string   `json:"skills"`
	Interests       string   `json:"interests"`
	GPA             string   `json:"gpa"`
	LocationPref    []string `json:"location_pref"`
}

// ListingForm is the raw admin input for a new listing.
type ListingForm struct {
	Company        string `json:"company"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	RequiredSkills string `json:"required_skills"`
	Location       string `json:"location"`
	Duration       string `json:"duration"`
	Stipend        string `json:"stipend"`
	Deadline       string `json:"deadline"`
	Industry       string `json:"industry"`
}

func (f ListingForm) Payload() ListingCreate {
	return ListingCreate(f)
}
