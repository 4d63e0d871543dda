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

type jobDescriptionRepo struct {
	db *pgxpool.Pool
}

func NewJobDescriptionRepository(db *pgxpool.Pool) domain.JobDescriptionRepository {
	return &jobDescriptionRepo{db: db}
}

const jdColumns = `id, user_id, title, company, location, raw_text, source_url, parsed_requirements,
	required_skills, preferred_skills, keywords, is_analyzed, created_at, analyzed_at`

func scanJobDescription(row pgx.Row) (*domain.JobDescription, error) {
	var jd domain.JobDescription
	var required, preferred, keywords []string
	var parsed []byte
	err := row.Scan(
		&jd.ID, &jd.UserID, &jd.Title, &jd.Company, &jd.Location, &jd.RawText, &jd.SourceURL,
		&parsed, pq.Array(&required), pq.Array(&preferred), pq.Array(&keywords),
		&jd.IsAnalyzed, &jd.CreatedAt, &jd.AnalyzedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	jd.RequiredSkills = required
	jd.PreferredSkills = preferred
	jd.Keywords = keywords
	if len(parsed) > 0 {
		_ = json.Unmarshal(parsed, &jd.ParsedRequirements)
	}
	return &jd, nil
}

func (r *jobDescriptionRepo) Create(ctx context.Context, jd *domain.JobDescription) error {
	parsed, err := json.Marshal(jd.ParsedRequirements)
	if err != nil {
		return apperror.Internal(err)
	}

	query := `INSERT INTO job_descriptions
                (id, user_id, title, company, location, raw_text, source_url, parsed_requirements,
                 required_skills, preferred_skills, keywords, is_analyzed, created_at, analyzed_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.db.Exec(ctx, query,
		jd.ID, jd.UserID, jd.Title, jd.Company, jd.Location, jd.RawText, jd.SourceURL, parsed,
		pq.Array(jd.RequiredSkills), pq.Array(jd.PreferredSkills), pq.Array(jd.Keywords),
		jd.IsAnalyzed, jd.CreatedAt, jd.AnalyzedAt,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *jobDescriptionRepo) GetByID(ctx context.Context, id string) (*domain.JobDescription, error) {
	query := `SELECT ` + jdColumns + ` FROM job_descriptions WHERE id = $1`
	return scanJobDescription(r.db.QueryRow(ctx, query, id))
}

func (r *jobDescriptionRepo) FetchByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.JobDescription, int64, error) {
	query := `SELECT ` + jdColumns + ` FROM job_descriptions
              WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jds []domain.JobDescription
	for rows.Next() {
		jd, err := scanJobDescription(rows)
		if err != nil {
			return nil, 0, err
		}
		jds = append(jds, *jd)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_descriptions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jds, total, nil
}

func (r *jobDescriptionRepo) Update(ctx context.Context, jd *domain.JobDescription) error {
	parsed, err := json.Marshal(jd.ParsedRequirements)
	if err != nil {
		return apperror.Internal(err)
	}

	query := `UPDATE job_descriptions SET
                title = $2, company = $3, location = $4, raw_text = $5, source_url = $6,
                parsed_requirements = $7, required_skills = $8, preferred_skills = $9,
                keywords = $10, is_analyzed = $11, analyzed_at = $12
              WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		jd.ID, jd.Title, jd.Company, jd.Location, jd.RawText, jd.SourceURL,
		parsed, pq.Array(jd.RequiredSkills), pq.Array(jd.PreferredSkills),
		pq.Array(jd.Keywords), jd.IsAnalyzed, jd.AnalyzedAt,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobDescriptionRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM job_descriptions WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
