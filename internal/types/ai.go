package types

import "github.com/go-playground/validator/v10"

// ResumeBrief is the input to the AI resume builder
type ResumeBrief struct {
	Name            string `json:"name" validate:"required,min=1"`
	JobTitle        string `json:"job_title" validate:"required,min=1"`
	Industry        string `json:"industry,omitempty"`
	ExperienceYears int    `json:"experience_years,omitempty" validate:"gte=0,lte=60"`
	Skills          string `json:"skills,omitempty"`
}

// Validate validates the ResumeBrief using the validator.
func (b *ResumeBrief) Validate() error {
	validate := validator.New()
	return validate.Struct(b)
}

// JobMatch is the structured result of comparing a resume against a job description
type JobMatch struct {
	MatchScore    int      `json:"matchScore"`
	FoundSkills   []string `json:"foundSkills"`
	MissingSkills []string `json:"missingSkills"`
	Strengths     []string `json:"strengths"`
	Improvements  []string `json:"improvements"`
}
