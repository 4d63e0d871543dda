package postgres

import (
	"context"
	"errors"

	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, name, avatar_url, hashed_password, headline, summary, location, phone,
	website, linkedin_url, institution, degree, field_of_study, graduation_year, skills,
	is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var skills []string
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.AvatarURL, &user.HashedPassword,
		&user.Headline, &user.Summary, &user.Location, &user.Phone,
		&user.Website, &user.LinkedinURL, &user.Institution, &user.Degree,
		&user.FieldOfStudy, &user.GraduationYear, pq.Array(&skills),
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	user.Skills = skills
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, name, hashed_password, skills, is_active, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.HashedPassword,
		pq.Array(user.Skills), user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrEmailTaken
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET
                name = $2, headline = $3, summary = $4, location = $5, phone = $6,
                website = $7, linkedin_url = $8, institution = $9, degree = $10,
                field_of_study = $11, graduation_year = $12, skills = $13, updated_at = NOW()
              WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.Headline, user.Summary, user.Location, user.Phone,
		user.Website, user.LinkedinURL, user.Institution, user.Degree,
		user.FieldOfStudy, user.GraduationYear, pq.Array(user.Skills),
	)
	if err != nil {
		return apperror.Internal(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type githubConnectionRepo struct {
	db *pgxpool.Pool
}

func NewGithubConnectionRepository(db *pgxpool.Pool) domain.GithubConnectionRepository {
	return &githubConnectionRepo{db: db}
}

func (r *githubConnectionRepo) Upsert(ctx context.Context, conn *domain.GithubConnection) error {
	query := `INSERT INTO github_connections
                (id, user_id, github_user_id, github_username, github_avatar_url, encrypted_token, scopes, connected_at, token_updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
              ON CONFLICT (user_id) DO UPDATE SET
                github_user_id = EXCLUDED.github_user_id,
                github_username = EXCLUDED.github_username,
                github_avatar_url = EXCLUDED.github_avatar_url,
                encrypted_token = EXCLUDED.encrypted_token,
                scopes = EXCLUDED.scopes,
                token_updated_at = NOW()`
	_, err := r.db.Exec(ctx, query,
		conn.ID, conn.UserID, conn.GithubUserID, conn.GithubUsername, conn.GithubAvatarURL,
		conn.EncryptedToken, pq.Array(conn.Scopes), conn.ConnectedAt, conn.TokenUpdatedAt,
	)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *githubConnectionRepo) GetByUserID(ctx context.Context, userID string) (*domain.GithubConnection, error) {
	query := `SELECT id, user_id, github_user_id, github_username, github_avatar_url, encrypted_token, scopes, connected_at, token_updated_at
              FROM github_connections WHERE user_id = $1`
	var conn domain.GithubConnection
	var scopes []string
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&conn.ID, &conn.UserID, &conn.GithubUserID, &conn.GithubUsername, &conn.GithubAvatarURL,
		&conn.EncryptedToken, pq.Array(&scopes), &conn.ConnectedAt, &conn.TokenUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	conn.Scopes = scopes
	return &conn, nil
}

func (r *githubConnectionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM github_connections WHERE user_id = $1`, userID)
	if err != nil {
		return apperror.Internal(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
