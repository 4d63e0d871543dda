package domain

import (
	"context"
	"time"
)

// JobDescription stores a pasted job posting and its extracted structure.
type JobDescription struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	Title    string  `json:"title"`
	Company  *string `json:"company"`
	Location *string `json:"location"`

	RawText   string  `json:"raw_text"`
	SourceURL *string `json:"source_url"`

	// ParsedRequirements holds the LLM-extracted structure:
	// responsibilities, qualifications, benefits, salary_range, etc.
	ParsedRequirements map[string]interface{} `json:"parsed_requirements"`

	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Keywords        []string `json:"keywords"`

	IsAnalyzed bool       `json:"is_analyzed"`
	CreatedAt  time.Time  `json:"created_at"`
	AnalyzedAt *time.Time `json:"analyzed_at"`
}

type JobDescriptionRepository interface {
	Create(ctx context.Context, jd *JobDescription) error
	GetByID(ctx context.Context, id string) (*JobDescription, error)
	FetchByUserID(ctx context.Context, userID string, limit, offset int) ([]JobDescription, int64, error)
	Update(ctx context.Context, jd *JobDescription) error
	Delete(ctx context.Context, id string) error
}

type JobDescriptionUsecase interface {
	CreateJobDescription(ctx context.Context, userID string, jd *JobDescription) error
	GetJobDescription(ctx context.Context, userID, id string) (*JobDescription, error)
	ListJobDescriptions(ctx context.Context, userID string, page, pageSize int) ([]JobDescription, int64, error)
	UpdateJobDescription(ctx context.Context, userID string, jd *JobDescription) error
	DeleteJobDescription(ctx context.Context, userID, id string) error

	// AnalyzeJobDescription runs LLM extraction of skills and keywords over the raw text.
	AnalyzeJobDescription(ctx context.Context, userID, id string) (*JobDescription, error)
}
