package model

import "time"

// Resume is a saved resume document owned by exactly one user.
//
// The nested sections (Education, Experience, Skills, Projects) are free-form
// lists — the builder UI sends whatever the user typed, and we store it as-is
// without deep validation. Each save creates a NEW document; there is no
// update-in-place (the frontend re-saves the whole resume).
//
// OWNERSHIP INVARIANT:
// UserID is always set server-side from the authenticated caller's identity.
// A client-supplied userId in the request body is ignored — otherwise a caller
// could file documents under someone else's account.
type Resume struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	FullName   string            `json:"fullName"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	LinkedIn   string            `json:"linkedin"`
	Summary    string            `json:"summary"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Skills     []string          `json:"skills"`
	Projects   []ProjectEntry    `json:"projects"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// EducationEntry is one row of the resume's education section.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Year        string `json:"year"`
}

// ExperienceEntry is one row of the resume's work-experience section.
type ExperienceEntry struct {
	JobTitle         string `json:"jobTitle"`
	Company          string `json:"company"`
	Start            string `json:"start"`
	End              string `json:"end"`
	Responsibilities string `json:"responsibilities"`
}

// ProjectEntry is one row of the resume's projects section.
type ProjectEntry struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}
