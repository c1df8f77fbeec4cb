package models

// DefaultGPA is sent when the signup form leaves the grade field blank.
const DefaultGPA = 3.0

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Major        string  `json:"major"`
	Year         string  `json:"year"`
	Skills       string  `json:"skills"`
	Interests    string  `json:"interests"`
	GPA          float64 `json:"gpa"`
	LocationPref string  `json:"location_pref"`
}

// AuthResponse is returned by both login and signup.
type AuthResponse struct {
	Message     string  `json:"message"`
	AccessToken string  `json:"access_token"`
	User        Profile `json:"user"`
}
