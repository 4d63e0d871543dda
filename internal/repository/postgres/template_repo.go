package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type templateRepo struct {
	db *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) domain.TemplateRepository {
	return &templateRepo{db: db}
}

const templateColumns = `id, user_id, name, description, latex_content, placeholders,
	is_system, is_ats_tested, category, use_count, created_at, updated_at`

func scanTemplate(row pgx.Row) (*domain.Template, error) {
	var t domain.Template
	var placeholders []byte
	err := row.Scan(
		&t.ID, &t.UserID, &t.Name, &t.Description, &t.LatexContent, &placeholders,
		&t.IsSystem, &t.IsATSTested, &t.Category, &t.UseCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(placeholders) > 0 {
		_ = json.Unmarshal(placeholders, &t.Placeholders)
	}
	return &t, nil
}

func (r *templateRepo) Create(ctx context.Context, tmpl *domain.Template) error {
	placeholders, err := json.Marshal(tmpl.Placeholders)
	if err != nil {
		return apperror.Internal(err)
	}

	query := `INSERT INTO templates
                (id, user_id, name, description, latex_content, placeholders,
                 is_system, is_ats_tested, category, use_count, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.db.Exec(ctx, query,
		tmpl.ID, tmpl.UserID, tmpl.Name, tmpl.Description, tmpl.LatexContent, placeholders,
		tmpl.IsSystem, tmpl.IsATSTested, tmpl.Category, tmpl.UseCount, tmpl.CreatedAt, tmpl.UpdatedAt,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *templateRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE id = $1`
	return scanTemplate(r.db.QueryRow(ctx, query, id))
}

func (r *templateRepo) FetchForUser(ctx context.Context, userID string) ([]domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates
              WHERE is_system = TRUE OR user_id = $1
              ORDER BY is_system DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, nil
}

func (r *templateRepo) Update(ctx context.Context, tmpl *domain.Template) error {
	placeholders, err := json.Marshal(tmpl.Placeholders)
	if err != nil {
		return apperror.Internal(err)
	}

	query := `UPDATE templates SET
                name = $2, description = $3, latex_content = $4, placeholders = $5,
                category = $6, updated_at = NOW()
              WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		tmpl.ID, tmpl.Name, tmpl.Description, tmpl.LatexContent, placeholders, tmpl.Category,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *templateRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *templateRepo) CountSystemTemplates(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM templates WHERE is_system = TRUE`).Scan(&count)
	return count, err
}

func (r *templateRepo) IncrementUseCount(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE templates SET use_count = use_count + 1 WHERE id = $1`, id)
	return err
}
