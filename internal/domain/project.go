package domain

import (
	"context"
	"time"
)

// Project source types
const (
	SourceGithub = "github"
	SourceManual = "manual"
)

// Project is the core entity resumes are generated from.
type Project struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	SourceType string  `json:"source_type"`
	SourceID   *string `json:"source_id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	Technologies []string `json:"technologies"`
	Highlights   []string `json:"highlights"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsCurrent bool       `json:"is_current"`

	URL     *string `json:"url"`
	DemoURL *string `json:"demo_url"`

	IsFeatured bool `json:"is_featured"`

	// RawContent keeps the source text (README excerpt) used for matching.
	RawContent *string `json:"raw_content,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GithubRepoRecord stores repository metadata captured during ingestion.
type GithubRepoRecord struct {
	ID                 string     `json:"id"`
	GithubConnectionID string     `json:"github_connection_id"`
	ProjectID          *string    `json:"project_id"`
	GithubID           int64      `json:"github_id"`
	FullName           string     `json:"full_name"`
	Name               string     `json:"name"`
	Description        *string    `json:"description"`
	ReadmeContent      *string    `json:"readme_content,omitempty"`
	Languages          map[string]int `json:"languages"`
	Topics             []string   `json:"topics"`
	Stars              int        `json:"stars"`
	Forks              int        `json:"forks"`
	OpenIssues         int        `json:"open_issues"`
	IsFork             bool       `json:"is_fork"`
	IsPrivate          bool       `json:"is_private"`
	IsArchived         bool       `json:"is_archived"`
	ExtractedTech      []string   `json:"extracted_tech"`
	PushedAt           *time.Time `json:"pushed_at"`
	IngestedAt         time.Time  `json:"ingested_at"`
	LastSyncedAt       time.Time  `json:"last_synced_at"`
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	FetchByUserID(ctx context.Context, userID string, limit, offset int) ([]Project, int64, error)
	FetchByIDs(ctx context.Context, userID string, ids []string) ([]Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
	GetBySource(ctx context.Context, userID, sourceType, sourceID string) (*Project, error)
}

type GithubRepoRepository interface {
	Upsert(ctx context.Context, repo *GithubRepoRecord) error
	FetchByConnectionID(ctx context.Context, connectionID string) ([]GithubRepoRecord, error)
}

// IngestResult reports the outcome of a GitHub ingestion run.
type IngestResult struct {
	Imported []Project `json:"imported"`
	Skipped  []string  `json:"skipped"`
}

type ProjectUsecase interface {
	CreateProject(ctx context.Context, userID string, project *Project) error
	GetProject(ctx context.Context, userID, id string) (*Project, error)
	ListProjects(ctx context.Context, userID string, page, pageSize int) ([]Project, int64, error)
	UpdateProject(ctx context.Context, userID string, project *Project) error
	DeleteProject(ctx context.Context, userID, id string) error

	// ListGithubRepos lists the connected account's repositories without importing them.
	ListGithubRepos(ctx context.Context, userID string, includeForks bool) ([]GithubRepoRecord, error)
	// IngestGithubRepos imports the named repositories as projects.
	IngestGithubRepos(ctx context.Context, userID string, fullNames []string) (*IngestResult, error)
}
