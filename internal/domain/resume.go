package domain

import (
	"context"
	"time"
)

// ResumeStatus tracks the generation/compilation lifecycle.
type ResumeStatus string

const (
	ResumeStatusDraft      ResumeStatus = "draft"
	ResumeStatusGenerating ResumeStatus = "generating"
	ResumeStatusGenerated  ResumeStatus = "generated"
	ResumeStatusCompiling  ResumeStatus = "compiling"
	ResumeStatusCompiled   ResumeStatus = "compiled"
	ResumeStatusError      ResumeStatus = "error"
)

// GenerationParams records how a resume was produced.
type GenerationParams struct {
	Model             string             `json:"model,omitempty"`
	Temperature       float32            `json:"temperature,omitempty"`
	MatchingScores    map[string]int     `json:"matching_scores,omitempty"`
	GroundingWarnings []string           `json:"grounding_warnings,omitempty"`
	RemovedSections   []string           `json:"removed_sections,omitempty"`
}

// Resume stores generated LaTeX, the compiled PDF, and generation metadata.
type Resume struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	TemplateID       *string `json:"template_id"`
	JobDescriptionID *string `json:"job_description_id"`

	Name    string `json:"name"`
	Version int    `json:"version"`

	LatexContent *string `json:"latex_content"`
	PDFPath      *string `json:"pdf_path"`

	SelectedProjectIDs []string `json:"selected_project_ids"`

	GenerationParams GenerationParams `json:"generation_params"`

	Status       ResumeStatus `json:"status"`
	ErrorMessage *string      `json:"error_message"`

	CompilationLog      *string  `json:"compilation_log,omitempty"`
	CompilationWarnings []string `json:"compilation_warnings"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	GeneratedAt *time.Time `json:"generated_at"`
	CompiledAt  *time.Time `json:"compiled_at"`
}

type ResumeRepository interface {
	Create(ctx context.Context, resume *Resume) error
	GetByID(ctx context.Context, id string) (*Resume, error)
	FetchByUserID(ctx context.Context, userID string, limit, offset int) ([]Resume, int64, error)
	Update(ctx context.Context, resume *Resume) error
	Delete(ctx context.Context, id string) error
}

// GenerateRequest names the inputs for resume generation.
type GenerateRequest struct {
	TemplateID         string   `json:"template_id"`
	JobDescriptionID   *string  `json:"job_description_id"`
	SelectedProjectIDs []string `json:"selected_project_ids"`
	Name               string   `json:"name"`
}

type ResumeUsecase interface {
	CreateResume(ctx context.Context, userID string, resume *Resume) error
	GetResume(ctx context.Context, userID, id string) (*Resume, error)
	ListResumes(ctx context.Context, userID string, page, pageSize int) ([]Resume, int64, error)
	UpdateLatex(ctx context.Context, userID, id, latex string) (*Resume, error)
	DeleteResume(ctx context.Context, userID, id string) error

	// GenerateResume builds LaTeX from the user's profile and matched projects.
	GenerateResume(ctx context.Context, userID string, req *GenerateRequest) (*Resume, error)
	// CompileResume sends the LaTeX to the build service and stores the PDF.
	CompileResume(ctx context.Context, userID, id string) (*Resume, error)
	// GetPDF returns the compiled PDF bytes.
	GetPDF(ctx context.Context, userID, id string) ([]byte, string, error)
}
