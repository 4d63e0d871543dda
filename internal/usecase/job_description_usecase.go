package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"
	"resume-agent-backend/pkg/gemini"
	"resume-agent-backend/pkg/logger"

	"github.com/google/uuid"
)

type jobDescriptionUsecase struct {
	jdRepo domain.JobDescriptionRepository
	llm    Generator
}

func NewJobDescriptionUsecase(jdRepo domain.JobDescriptionRepository, llm Generator) domain.JobDescriptionUsecase {
	return &jobDescriptionUsecase{jdRepo: jdRepo, llm: llm}
}

func (u *jobDescriptionUsecase) CreateJobDescription(ctx context.Context, userID string, jd *domain.JobDescription) error {
	if strings.TrimSpace(jd.Title) == "" {
		return apperror.BadRequest("Title is required")
	}
	if strings.TrimSpace(jd.RawText) == "" {
		return apperror.BadRequest("Job description text is required")
	}

	jd.ID = uuid.NewString()
	jd.UserID = userID
	jd.IsAnalyzed = false
	jd.CreatedAt = time.Now()

	return u.jdRepo.Create(ctx, jd)
}

func (u *jobDescriptionUsecase) GetJobDescription(ctx context.Context, userID, id string) (*domain.JobDescription, error) {
	jd, err := u.jdRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job description not found")
		}
		return nil, err
	}
	if jd.UserID != userID {
		return nil, apperror.Forbidden("You can only view your own job descriptions")
	}
	return jd, nil
}

func (u *jobDescriptionUsecase) ListJobDescriptions(ctx context.Context, userID string, page, pageSize int) ([]domain.JobDescription, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return u.jdRepo.FetchByUserID(ctx, userID, pageSize, offset)
}

func (u *jobDescriptionUsecase) UpdateJobDescription(ctx context.Context, userID string, jd *domain.JobDescription) error {
	existing, err := u.GetJobDescription(ctx, userID, jd.ID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(jd.Title) == "" {
		return apperror.BadRequest("Title is required")
	}

	jd.UserID = existing.UserID
	// Editing the text invalidates a previous analysis; otherwise the
	// stored analysis carries over untouched.
	if jd.RawText != existing.RawText {
		jd.IsAnalyzed = false
		jd.AnalyzedAt = nil
	} else {
		jd.IsAnalyzed = existing.IsAnalyzed
		jd.AnalyzedAt = existing.AnalyzedAt
		jd.RequiredSkills = existing.RequiredSkills
		jd.PreferredSkills = existing.PreferredSkills
		jd.Keywords = existing.Keywords
		jd.ParsedRequirements = existing.ParsedRequirements
	}
	return u.jdRepo.Update(ctx, jd)
}

func (u *jobDescriptionUsecase) DeleteJobDescription(ctx context.Context, userID, id string) error {
	if _, err := u.GetJobDescription(ctx, userID, id); err != nil {
		return err
	}
	return u.jdRepo.Delete(ctx, id)
}

// analyzedJD is the structure the extraction prompt asks for.
type analyzedJD struct {
	RequiredSkills   []string               `json:"required_skills"`
	PreferredSkills  []string               `json:"preferred_skills"`
	Keywords         []string               `json:"keywords"`
	ExperienceYears  map[string]interface{} `json:"experience_years"`
	Responsibilities []string               `json:"responsibilities"`
	Title            string                 `json:"title"`
	Company          string                 `json:"company"`
}

func (u *jobDescriptionUsecase) AnalyzeJobDescription(ctx context.Context, userID, id string) (*domain.JobDescription, error) {
	jd, err := u.GetJobDescription(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if jd.IsAnalyzed {
		return jd, nil
	}

	parsed, err := u.extract(ctx, jd.RawText)
	if err != nil {
		logger.Log.Warn("jd analysis fell back to keyword scan", "jd_id", id, "error", err)
		parsed = &analyzedJD{RequiredSkills: scanCommonSkills(jd.RawText)}
	}

	jd.RequiredSkills = parsed.RequiredSkills
	jd.PreferredSkills = parsed.PreferredSkills
	jd.Keywords = parsed.Keywords
	jd.ParsedRequirements = map[string]interface{}{
		"required_skills":  parsed.RequiredSkills,
		"preferred_skills": parsed.PreferredSkills,
		"keywords":         parsed.Keywords,
		"experience_years": parsed.ExperienceYears,
		"responsibilities": parsed.Responsibilities,
		"title":            parsed.Title,
		"company":          parsed.Company,
	}
	jd.IsAnalyzed = true
	now := time.Now()
	jd.AnalyzedAt = &now

	if err := u.jdRepo.Update(ctx, jd); err != nil {
		return nil, err
	}
	return jd, nil
}

func (u *jobDescriptionUsecase) extract(ctx context.Context, rawText string) (*analyzedJD, error) {
	if u.llm == nil {
		return nil, errors.New("llm not configured")
	}

	text := rawText
	if len(text) > 6000 {
		text = text[:6000]
	}

	prompt := fmt.Sprintf(`Analyze this job description and extract structured information.

JOB DESCRIPTION:
%s

Extract:
1. required_skills: List of explicitly required technical skills
2. preferred_skills: List of nice-to-have skills
3. keywords: Important technical keywords and concepts
4. experience_years: Min/max years if mentioned
5. responsibilities: Key job responsibilities
6. title: Job title
7. company: Company name if mentioned

Return as JSON object.`, text)

	response, err := u.llm.Generate(ctx,
		"You are a job description analyzer. Extract accurate, structured information.",
		prompt)
	if err != nil {
		return nil, err
	}

	var parsed analyzedJD
	if err := gemini.UnmarshalResponse(response, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// commonSkills backs the fallback when LLM extraction fails.
var commonSkills = []string{
	"python", "java", "javascript", "react", "node", "sql", "aws", "docker",
	"kubernetes", "git", "api", "rest", "graphql", "typescript", "fastapi",
	"django", "flask", "spring", "angular", "vue", "mongodb", "postgresql",
	"mysql", "redis", "kafka", "rabbitmq", "ci/cd", "devops", "agile", "scrum",
}

func scanCommonSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, skill := range commonSkills {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
		if len(found) == 10 {
			break
		}
	}
	return found
}
