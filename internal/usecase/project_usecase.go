package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"
	"resume-agent-backend/pkg/crypto"
	"resume-agent-backend/pkg/gemini"
	"resume-agent-backend/pkg/github"
	"resume-agent-backend/pkg/logger"

	"github.com/google/uuid"
)

// Generator is the LLM surface shared by the usecases.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
	Model() string
}

type projectUsecase struct {
	projectRepo    domain.ProjectRepository
	githubConnRepo domain.GithubConnectionRepository
	githubRepoRepo domain.GithubRepoRepository
	encryptor      *crypto.Encryptor
	githubFor      GithubClientFactory
	llm            Generator
}

func NewProjectUsecase(
	projectRepo domain.ProjectRepository,
	githubConnRepo domain.GithubConnectionRepository,
	githubRepoRepo domain.GithubRepoRepository,
	encryptor *crypto.Encryptor,
	githubFor GithubClientFactory,
	llm Generator,
) domain.ProjectUsecase {
	return &projectUsecase{
		projectRepo:    projectRepo,
		githubConnRepo: githubConnRepo,
		githubRepoRepo: githubRepoRepo,
		encryptor:      encryptor,
		githubFor:      githubFor,
		llm:            llm,
	}
}

func (u *projectUsecase) CreateProject(ctx context.Context, userID string, project *domain.Project) error {
	if strings.TrimSpace(project.Title) == "" {
		return apperror.BadRequest("Title is required")
	}
	if strings.TrimSpace(project.Description) == "" {
		return apperror.BadRequest("Description is required")
	}

	project.ID = uuid.NewString()
	project.UserID = userID
	if project.SourceType == "" {
		project.SourceType = domain.SourceManual
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	return u.projectRepo.Create(ctx, project)
}

func (u *projectUsecase) GetProject(ctx context.Context, userID, id string) (*domain.Project, error) {
	project, err := u.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Project not found")
		}
		return nil, err
	}
	if project.UserID != userID {
		return nil, apperror.Forbidden("You can only view your own projects")
	}
	return project, nil
}

func (u *projectUsecase) ListProjects(ctx context.Context, userID string, page, pageSize int) ([]domain.Project, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return u.projectRepo.FetchByUserID(ctx, userID, pageSize, offset)
}

func (u *projectUsecase) UpdateProject(ctx context.Context, userID string, project *domain.Project) error {
	existing, err := u.GetProject(ctx, userID, project.ID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(project.Title) == "" {
		return apperror.BadRequest("Title is required")
	}

	project.UserID = existing.UserID
	return u.projectRepo.Update(ctx, project)
}

func (u *projectUsecase) DeleteProject(ctx context.Context, userID, id string) error {
	if _, err := u.GetProject(ctx, userID, id); err != nil {
		return err
	}
	return u.projectRepo.Delete(ctx, id)
}

// githubClient decrypts the stored token and builds a client for it.
func (u *projectUsecase) githubClient(ctx context.Context, userID string) (GithubClient, *domain.GithubConnection, error) {
	conn, err := u.githubConnRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, apperror.BadRequest("Connect a GitHub account first")
		}
		return nil, nil, err
	}

	accessToken, err := u.encryptor.Decrypt(conn.EncryptedToken)
	if err != nil {
		return nil, nil, apperror.Internal(err)
	}
	return u.githubFor(accessToken), conn, nil
}

func (u *projectUsecase) ListGithubRepos(ctx context.Context, userID string, includeForks bool) ([]domain.GithubRepoRecord, error) {
	client, conn, err := u.githubClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	repos, err := client.ListUserRepos(ctx, includeForks, true, 0)
	if err != nil {
		if errors.Is(err, github.ErrUnauthorized) {
			return nil, apperror.Unauthorized("GitHub token is no longer valid")
		}
		return nil, apperror.UpstreamUnavailable("Could not reach GitHub")
	}

	records := make([]domain.GithubRepoRecord, 0, len(repos))
	for _, r := range repos {
		records = append(records, repoToRecord(conn.ID, r))
	}
	return records, nil
}

func (u *projectUsecase) IngestGithubRepos(ctx context.Context, userID string, fullNames []string) (*domain.IngestResult, error) {
	if len(fullNames) == 0 {
		return nil, apperror.BadRequest("No repositories selected")
	}

	client, conn, err := u.githubClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &domain.IngestResult{}
	for _, fullName := range fullNames {
		// Accept full repository URLs as well as "owner/name".
		if strings.Contains(fullName, "github.com") {
			parsed, err := github.ParseRepoURL(fullName)
			if err != nil {
				logger.Log.Warn("skipping repository", "repo", fullName, "error", err)
				result.Skipped = append(result.Skipped, fullName)
				continue
			}
			fullName = parsed
		}

		details, err := client.GetRepoDetails(ctx, fullName)
		if err != nil {
			logger.Log.Warn("skipping repository", "repo", fullName, "error", err)
			result.Skipped = append(result.Skipped, fullName)
			continue
		}

		project, err := u.importRepo(ctx, userID, conn.ID, details)
		if err != nil {
			logger.Log.Error("repository import failed", "repo", fullName, "error", err)
			result.Skipped = append(result.Skipped, fullName)
			continue
		}
		result.Imported = append(result.Imported, *project)
	}
	return result, nil
}

func (u *projectUsecase) importRepo(ctx context.Context, userID, connectionID string, details *github.RepoDetails) (*domain.Project, error) {
	technologies := mergeTech(details.ExtractedTech, details.Languages, details.Topics)

	description := details.Description
	if description == "" {
		description = "GitHub project: " + details.Name
	}

	rawContent := description
	if details.Readme != "" {
		excerpt := details.Readme
		if len(excerpt) > 2000 {
			excerpt = excerpt[:2000]
		}
		rawContent = rawContent + "\n\n" + excerpt
	}

	highlights := u.generateHighlights(ctx, details, technologies, rawContent)

	sourceID := fmt.Sprintf("%d", details.ID)
	now := time.Now()

	// Re-ingesting the same repo updates the existing project.
	project, err := u.projectRepo.GetBySource(ctx, userID, domain.SourceGithub, sourceID)
	switch {
	case err == nil:
		project.Title = details.Name
		project.Description = description
		project.Technologies = technologies
		project.Highlights = highlights
		project.RawContent = &rawContent
		if err := u.projectRepo.Update(ctx, project); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrNotFound):
		project = &domain.Project{
			ID:           uuid.NewString(),
			UserID:       userID,
			SourceType:   domain.SourceGithub,
			SourceID:     &sourceID,
			Title:        details.Name,
			Description:  description,
			Technologies: technologies,
			Highlights:   highlights,
			URL:          &details.URL,
			RawContent:   &rawContent,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := u.projectRepo.Create(ctx, project); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	record := repoToRecord(connectionID, details.Repo)
	record.ProjectID = &project.ID
	record.ReadmeContent = nilIfEmpty(details.Readme)
	record.ExtractedTech = details.ExtractedTech
	if err := u.githubRepoRepo.Upsert(ctx, &record); err != nil {
		logger.Log.Warn("saving repo metadata failed", "repo", details.FullName, "error", err)
	}

	return project, nil
}

// generateHighlights asks the LLM for grounded bullet points and falls
// back to a deterministic one when generation fails.
func (u *projectUsecase) generateHighlights(ctx context.Context, details *github.RepoDetails, technologies []string, content string) []string {
	fallback := func() []string {
		techs := technologies
		if len(techs) > 3 {
			techs = techs[:3]
		}
		return []string{fmt.Sprintf("Developed %s using %s", details.Name, strings.Join(techs, ", "))}
	}

	if u.llm == nil || strings.TrimSpace(content) == "" {
		return fallback()
	}

	readme := details.Readme
	if len(readme) > 2000 {
		readme = readme[:2000]
	}
	if readme == "" {
		readme = "N/A"
	}

	prompt := fmt.Sprintf(`Analyze this GitHub project and generate 2-4 resume bullet points.

PROJECT TITLE: %s
TECHNOLOGIES: %s
STARS: %d
DESCRIPTION: %s

README EXCERPT:
%s

RULES:
1. ONLY use information from the provided content above
2. DO NOT invent features, metrics, or achievements not mentioned
3. Use action verbs (Built, Developed, Implemented, Designed)
4. Focus on technical achievements and features
5. If information is limited, create fewer but accurate points
6. Format as a JSON array of strings

Return ONLY a JSON array like: ["Built X using Y", "Implemented Z feature"]`,
		details.Name, strings.Join(technologies, ", "), details.Stars, details.Description, readme)

	response, err := u.llm.Generate(ctx,
		"You are a technical resume writer. Generate accurate, grounded bullet points. Never invent information.",
		prompt)
	if err != nil {
		logger.Log.Warn("highlight generation failed", "repo", details.FullName, "error", err)
		return fallback()
	}

	var highlights []string
	if err := gemini.UnmarshalResponse(response, &highlights); err != nil || len(highlights) == 0 {
		return fallback()
	}
	if len(highlights) > 4 {
		highlights = highlights[:4]
	}
	return highlights
}

func repoToRecord(connectionID string, r github.Repo) domain.GithubRepoRecord {
	now := time.Now()
	return domain.GithubRepoRecord{
		ID:                 uuid.NewString(),
		GithubConnectionID: connectionID,
		GithubID:           r.ID,
		FullName:           r.FullName,
		Name:               r.Name,
		Description:        nilIfEmpty(r.Description),
		Languages:          r.Languages,
		Topics:             r.Topics,
		Stars:              r.Stars,
		Forks:              r.Forks,
		OpenIssues:         r.OpenIssues,
		IsFork:             r.IsFork,
		IsPrivate:          r.IsPrivate,
		IsArchived:         r.IsArchived,
		PushedAt:           r.PushedAt,
		IngestedAt:         now,
		LastSyncedAt:       now,
	}
}

func mergeTech(extracted []string, languages map[string]int, topics []string) []string {
	seen := map[string]struct{}{}
	var merged []string
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		merged = append(merged, s)
	}

	for _, t := range extracted {
		add(t)
	}
	for lang := range languages {
		add(lang)
	}
	for _, t := range topics {
		add(t)
	}
	return merged
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
