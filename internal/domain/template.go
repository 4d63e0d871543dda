package domain

import (
	"context"
	"time"
)

// Template is a LaTeX resume template with placeholder definitions.
type Template struct {
	ID     string  `json:"id"`
	UserID *string `json:"user_id"` // nil = system template

	Name        string  `json:"name"`
	Description *string `json:"description"`

	LatexContent string `json:"latex_content"`

	// Placeholders documents the tokens the template expects, e.g.
	// {"NAME": {"type": "text", "required": true}}
	Placeholders map[string]interface{} `json:"placeholders"`

	IsSystem    bool    `json:"is_system"`
	IsATSTested bool    `json:"is_ats_tested"`
	Category    *string `json:"category"`

	UseCount  int       `json:"use_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TemplateRepository interface {
	Create(ctx context.Context, tmpl *Template) error
	GetByID(ctx context.Context, id string) (*Template, error)
	// FetchForUser returns system templates plus the user's own templates.
	FetchForUser(ctx context.Context, userID string) ([]Template, error)
	Update(ctx context.Context, tmpl *Template) error
	Delete(ctx context.Context, id string) error
	CountSystemTemplates(ctx context.Context) (int64, error)
	IncrementUseCount(ctx context.Context, id string) error
}

type TemplateUsecase interface {
	CreateTemplate(ctx context.Context, userID string, tmpl *Template) error
	GetTemplate(ctx context.Context, userID, id string) (*Template, error)
	ListTemplates(ctx context.Context, userID string) ([]Template, error)
	UpdateTemplate(ctx context.Context, userID string, tmpl *Template) error
	DeleteTemplate(ctx context.Context, userID, id string) error

	// InitSystemTemplates seeds the built-in templates. Idempotent.
	InitSystemTemplates(ctx context.Context) (int, error)
}
