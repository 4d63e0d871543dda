package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

const resumeColumns = `id, user_id, template_id, job_description_id, name, version, latex_content,
	pdf_path, selected_project_ids, generation_params, status, error_message,
	compilation_log, compilation_warnings, created_at, updated_at, generated_at, compiled_at`

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var resume domain.Resume
	var selected, warnings []string
	var params []byte
	err := row.Scan(
		&resume.ID, &resume.UserID, &resume.TemplateID, &resume.JobDescriptionID,
		&resume.Name, &resume.Version, &resume.LatexContent, &resume.PDFPath,
		pq.Array(&selected), &params, &resume.Status, &resume.ErrorMessage,
		&resume.CompilationLog, pq.Array(&warnings),
		&resume.CreatedAt, &resume.UpdatedAt, &resume.GeneratedAt, &resume.CompiledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	resume.SelectedProjectIDs = selected
	resume.CompilationWarnings = warnings
	if len(params) > 0 {
		_ = json.Unmarshal(params, &resume.GenerationParams)
	}
	return &resume, nil
}

func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	params, err := json.Marshal(resume.GenerationParams)
	if err != nil {
		return apperror.Internal(err)
	}

	query := `INSERT INTO resumes
                (id, user_id, template_id, job_description_id, name, version, latex_content,
                 pdf_path, selected_project_ids, generation_params, status, error_message,
                 compilation_log, compilation_warnings, created_at, updated_at, generated_at, compiled_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.db.Exec(ctx, query,
		resume.ID, resume.UserID, resume.TemplateID, resume.JobDescriptionID,
		resume.Name, resume.Version, resume.LatexContent, resume.PDFPath,
		pq.Array(resume.SelectedProjectIDs), params, resume.Status, resume.ErrorMessage,
		resume.CompilationLog, pq.Array(resume.CompilationWarnings),
		resume.CreatedAt, resume.UpdatedAt, resume.GeneratedAt, resume.CompiledAt,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *resumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	return scanResume(r.db.QueryRow(ctx, query, id))
}

func (r *resumeRepo) FetchByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Resume, int64, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes
              WHERE user_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, 0, err
		}
		resumes = append(resumes, *resume)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM resumes WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return resumes, total, nil
}

func (r *resumeRepo) Update(ctx context.Context, resume *domain.Resume) error {
	params, err := json.Marshal(resume.GenerationParams)
	if err != nil {
		return apperror.Internal(err)
	}

	query := `UPDATE resumes SET
                template_id = $2, job_description_id = $3, name = $4, version = $5,
                latex_content = $6, pdf_path = $7, selected_project_ids = $8,
                generation_params = $9, status = $10, error_message = $11,
                compilation_log = $12, compilation_warnings = $13,
                updated_at = NOW(), generated_at = $14, compiled_at = $15
              WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		resume.ID, resume.TemplateID, resume.JobDescriptionID, resume.Name, resume.Version,
		resume.LatexContent, resume.PDFPath, pq.Array(resume.SelectedProjectIDs),
		params, resume.Status, resume.ErrorMessage,
		resume.CompilationLog, pq.Array(resume.CompilationWarnings),
		resume.GeneratedAt, resume.CompiledAt,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *resumeRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
