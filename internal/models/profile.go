package models

// Profile is a student profile as the service returns it. Multi-value fields
// (skills, interests, location_pref) are comma-joined strings on the wire.
type Profile struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Major        string  `json:"major"`
	Year         string  `json:"year"`
	Skills       string  `json:"skills"`
	Interests    string  `json:"interests"`
	GPA          float64 `json:"gpa"`
	LocationPref string  `json:"location_pref"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

// ProfileUpdate is the editable field set sent on a profile update.
type ProfileUpdate struct {
	Name         string  `json:"name"`
	Major        string  `json:"major"`
	Year         string  `json:"year"`
	Skills       string  `json:"skills"`
	Interests    string  `json:"interests"`
	GPA          float64 `json:"gpa"`
	LocationPref string  `json:"location_pref"`
}

type ProfileUpdateResponse struct {
	Message string  `json:"message"`
	User    Profile `json:"user"`
}

type UsersResponse struct {
	Users []Profile `json:"users"`
}
