package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"
	"resume-agent-backend/pkg/logger"

	"github.com/google/uuid"
)

type templateUsecase struct {
	templateRepo domain.TemplateRepository
}

func NewTemplateUsecase(templateRepo domain.TemplateRepository) domain.TemplateUsecase {
	return &templateUsecase{templateRepo: templateRepo}
}

func (u *templateUsecase) CreateTemplate(ctx context.Context, userID string, tmpl *domain.Template) error {
	if strings.TrimSpace(tmpl.Name) == "" {
		return apperror.BadRequest("Name is required")
	}
	if strings.TrimSpace(tmpl.LatexContent) == "" {
		return apperror.BadRequest("LaTeX content is required")
	}

	tmpl.ID = uuid.NewString()
	tmpl.UserID = &userID
	tmpl.IsSystem = false
	now := time.Now()
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now

	return u.templateRepo.Create(ctx, tmpl)
}

func (u *templateUsecase) GetTemplate(ctx context.Context, userID, id string) (*domain.Template, error) {
	tmpl, err := u.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Template not found")
		}
		return nil, err
	}
	// System templates are visible to everyone; user templates only to their owner.
	if !tmpl.IsSystem && (tmpl.UserID == nil || *tmpl.UserID != userID) {
		return nil, apperror.Forbidden("You can only view your own templates")
	}
	return tmpl, nil
}

func (u *templateUsecase) ListTemplates(ctx context.Context, userID string) ([]domain.Template, error) {
	return u.templateRepo.FetchForUser(ctx, userID)
}

func (u *templateUsecase) UpdateTemplate(ctx context.Context, userID string, tmpl *domain.Template) error {
	existing, err := u.GetTemplate(ctx, userID, tmpl.ID)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return apperror.Forbidden("System templates cannot be modified")
	}
	if strings.TrimSpace(tmpl.Name) == "" {
		return apperror.BadRequest("Name is required")
	}
	if strings.TrimSpace(tmpl.LatexContent) == "" {
		return apperror.BadRequest("LaTeX content is required")
	}
	return u.templateRepo.Update(ctx, tmpl)
}

func (u *templateUsecase) DeleteTemplate(ctx context.Context, userID, id string) error {
	existing, err := u.GetTemplate(ctx, userID, id)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return apperror.Forbidden("System templates cannot be deleted")
	}
	return u.templateRepo.Delete(ctx, id)
}

// InitSystemTemplates seeds the built-in templates once.
func (u *templateUsecase) InitSystemTemplates(ctx context.Context) (int, error) {
	count, err := u.templateRepo.CountSystemTemplates(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	created := 0
	now := time.Now()
	for _, tmpl := range systemTemplates {
		t := tmpl
		t.ID = uuid.NewString()
		t.CreatedAt = now
		t.UpdatedAt = now
		if err := u.templateRepo.Create(ctx, &t); err != nil {
			return created, err
		}
		created++
	}

	logger.Log.Info("system templates initialized", "count", created)
	return created, nil
}
