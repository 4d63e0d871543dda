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

type projectRepo struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) domain.ProjectRepository {
	return &projectRepo{db: db}
}

const projectColumns = `id, user_id, source_type, source_id, title, description, technologies, highlights,
	start_date, end_date, is_current, url, demo_url, is_featured, raw_content, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var technologies, highlights []string
	err := row.Scan(
		&p.ID, &p.UserID, &p.SourceType, &p.SourceID, &p.Title, &p.Description,
		pq.Array(&technologies), pq.Array(&highlights),
		&p.StartDate, &p.EndDate, &p.IsCurrent, &p.URL, &p.DemoURL,
		&p.IsFeatured, &p.RawContent, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Technologies = technologies
	p.Highlights = highlights
	return &p, nil
}

func (r *projectRepo) Create(ctx context.Context, project *domain.Project) error {
	query := `INSERT INTO projects
                (id, user_id, source_type, source_id, title, description, technologies, highlights,
                 start_date, end_date, is_current, url, demo_url, is_featured, raw_content, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, query,
		project.ID, project.UserID, project.SourceType, project.SourceID,
		project.Title, project.Description, pq.Array(project.Technologies), pq.Array(project.Highlights),
		project.StartDate, project.EndDate, project.IsCurrent, project.URL, project.DemoURL,
		project.IsFeatured, project.RawContent, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(r.db.QueryRow(ctx, query, id))
}

func (r *projectRepo) FetchByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Project, int64, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
              WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, *p)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *projectRepo) FetchByIDs(ctx context.Context, userID string, ids []string) ([]domain.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1 AND id = ANY($2)`

	rows, err := r.db.Query(ctx, query, userID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]domain.Project, len(ids))
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = *p
	}

	// Preserve the caller's ordering.
	projects := make([]domain.Project, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (r *projectRepo) Update(ctx context.Context, project *domain.Project) error {
	query := `UPDATE projects SET
                title = $2, description = $3, technologies = $4, highlights = $5,
                start_date = $6, end_date = $7, is_current = $8, url = $9, demo_url = $10,
                is_featured = $11, updated_at = NOW()
              WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		project.ID, project.Title, project.Description,
		pq.Array(project.Technologies), pq.Array(project.Highlights),
		project.StartDate, project.EndDate, project.IsCurrent, project.URL, project.DemoURL,
		project.IsFeatured,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *projectRepo) GetBySource(ctx context.Context, userID, sourceType, sourceID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
              WHERE user_id = $1 AND source_type = $2 AND source_id = $3`
	return scanProject(r.db.QueryRow(ctx, query, userID, sourceType, sourceID))
}

type githubRepoRepo struct {
	db *pgxpool.Pool
}

func NewGithubRepoRepository(db *pgxpool.Pool) domain.GithubRepoRepository {
	return &githubRepoRepo{db: db}
}

func (r *githubRepoRepo) Upsert(ctx context.Context, repo *domain.GithubRepoRecord) error {
	languages, err := json.Marshal(repo.Languages)
	if err != nil {
		return apperror.Internal(err)
	}

	query := `INSERT INTO github_repos
                (id, github_connection_id, project_id, github_id, full_name, name, description,
                 readme_content, languages, topics, stars, forks, open_issues,
                 is_fork, is_private, is_archived, extracted_tech, pushed_at, ingested_at, last_synced_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
              ON CONFLICT (github_id) DO UPDATE SET
                project_id = EXCLUDED.project_id,
                description = EXCLUDED.description,
                readme_content = EXCLUDED.readme_content,
                languages = EXCLUDED.languages,
                topics = EXCLUDED.topics,
                stars = EXCLUDED.stars,
                forks = EXCLUDED.forks,
                open_issues = EXCLUDED.open_issues,
                is_archived = EXCLUDED.is_archived,
                extracted_tech = EXCLUDED.extracted_tech,
                pushed_at = EXCLUDED.pushed_at,
                last_synced_at = NOW()`
	_, err = r.db.Exec(ctx, query,
		repo.ID, repo.GithubConnectionID, repo.ProjectID, repo.GithubID, repo.FullName, repo.Name,
		repo.Description, repo.ReadmeContent, languages, pq.Array(repo.Topics),
		repo.Stars, repo.Forks, repo.OpenIssues,
		repo.IsFork, repo.IsPrivate, repo.IsArchived, pq.Array(repo.ExtractedTech),
		repo.PushedAt, repo.IngestedAt, repo.LastSyncedAt,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *githubRepoRepo) FetchByConnectionID(ctx context.Context, connectionID string) ([]domain.GithubRepoRecord, error) {
	query := `SELECT id, github_connection_id, project_id, github_id, full_name, name, description,
                     languages, topics, stars, forks, open_issues,
                     is_fork, is_private, is_archived, extracted_tech, pushed_at, ingested_at, last_synced_at
              FROM github_repos WHERE github_connection_id = $1 ORDER BY stars DESC, full_name`

	rows, err := r.db.Query(ctx, query, connectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var repos []domain.GithubRepoRecord
	for rows.Next() {
		var rec domain.GithubRepoRecord
		var topics, extractedTech []string
		var languages []byte
		if err := rows.Scan(
			&rec.ID, &rec.GithubConnectionID, &rec.ProjectID, &rec.GithubID, &rec.FullName, &rec.Name,
			&rec.Description, &languages, pq.Array(&topics),
			&rec.Stars, &rec.Forks, &rec.OpenIssues,
			&rec.IsFork, &rec.IsPrivate, &rec.IsArchived, pq.Array(&extractedTech),
			&rec.PushedAt, &rec.IngestedAt, &rec.LastSyncedAt,
		); err != nil {
			return nil, err
		}
		rec.Topics = topics
		rec.ExtractedTech = extractedTech
		if len(languages) > 0 {
			_ = json.Unmarshal(languages, &rec.Languages)
		}
		repos = append(repos, rec)
	}
	return repos, nil
}
