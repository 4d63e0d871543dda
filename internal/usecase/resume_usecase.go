package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-agent-backend/internal/domain"
	"resume-agent-backend/internal/matching"
	"resume-agent-backend/internal/resumeagent"
	"resume-agent-backend/pkg/apperror"
	"resume-agent-backend/pkg/latex"
	"resume-agent-backend/pkg/logger"

	"github.com/google/uuid"
)

// ResumeAgent generates grounded LaTeX from user data.
type ResumeAgent interface {
	Generate(ctx context.Context, templateLatex string, data *resumeagent.UserData, jd *resumeagent.JDContext) (*resumeagent.Result, error)
	Model() string
}

// LatexCompiler turns LaTeX source into a PDF.
type LatexCompiler interface {
	Compile(ctx context.Context, source string) (*latex.CompilationResult, error)
}

type resumeUsecase struct {
	resumeRepo   domain.ResumeRepository
	projectRepo  domain.ProjectRepository
	jdRepo       domain.JobDescriptionRepository
	templateRepo domain.TemplateRepository
	userRepo     domain.UserRepository
	agent        ResumeAgent
	compiler     LatexCompiler
	uploadDir    string
}

func NewResumeUsecase(
	resumeRepo domain.ResumeRepository,
	projectRepo domain.ProjectRepository,
	jdRepo domain.JobDescriptionRepository,
	templateRepo domain.TemplateRepository,
	userRepo domain.UserRepository,
	agent ResumeAgent,
	compiler LatexCompiler,
	uploadDir string,
) domain.ResumeUsecase {
	return &resumeUsecase{
		resumeRepo:   resumeRepo,
		projectRepo:  projectRepo,
		jdRepo:       jdRepo,
		templateRepo: templateRepo,
		userRepo:     userRepo,
		agent:        agent,
		compiler:     compiler,
		uploadDir:    uploadDir,
	}
}

func (u *resumeUsecase) CreateResume(ctx context.Context, userID string, resume *domain.Resume) error {
	if strings.TrimSpace(resume.Name) == "" {
		return apperror.BadRequest("Name is required")
	}

	resume.ID = uuid.NewString()
	resume.UserID = userID
	resume.Version = 1
	resume.Status = domain.ResumeStatusDraft
	now := time.Now()
	resume.CreatedAt = now
	resume.UpdatedAt = now

	return u.resumeRepo.Create(ctx, resume)
}

func (u *resumeUsecase) GetResume(ctx context.Context, userID, id string) (*domain.Resume, error) {
	resume, err := u.resumeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Resume not found")
		}
		return nil, err
	}
	if resume.UserID != userID {
		return nil, apperror.Forbidden("You can only view your own resumes")
	}
	return resume, nil
}

func (u *resumeUsecase) ListResumes(ctx context.Context, userID string, page, pageSize int) ([]domain.Resume, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return u.resumeRepo.FetchByUserID(ctx, userID, pageSize, offset)
}

// UpdateLatex replaces the LaTeX source, invalidating any compiled PDF.
func (u *resumeUsecase) UpdateLatex(ctx context.Context, userID, id, latexContent string) (*domain.Resume, error) {
	resume, err := u.GetResume(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(latexContent) == "" {
		return nil, apperror.BadRequest("LaTeX content cannot be empty")
	}
	if !resumeagent.ValidateBraces(latexContent) {
		return nil, apperror.BadRequest("LaTeX has unbalanced braces")
	}

	resume.LatexContent = &latexContent
	resume.Status = domain.ResumeStatusGenerated
	resume.PDFPath = nil
	resume.CompiledAt = nil
	resume.ErrorMessage = nil
	resume.Version++

	if err := u.resumeRepo.Update(ctx, resume); err != nil {
		return nil, err
	}
	return resume, nil
}

func (u *resumeUsecase) DeleteResume(ctx context.Context, userID, id string) error {
	resume, err := u.GetResume(ctx, userID, id)
	if err != nil {
		return err
	}
	if resume.PDFPath != nil {
		if err := os.Remove(*resume.PDFPath); err != nil && !os.IsNotExist(err) {
			logger.Log.Warn("could not remove pdf file", "path", *resume.PDFPath, "error", err)
		}
	}
	return u.resumeRepo.Delete(ctx, id)
}

func (u *resumeUsecase) GenerateResume(ctx context.Context, userID string, req *domain.GenerateRequest) (*domain.Resume, error) {
	if req.TemplateID == "" {
		return nil, apperror.BadRequest("Template is required")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	template, err := u.templateRepo.GetByID(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Template not found")
		}
		return nil, err
	}
	if !template.IsSystem && (template.UserID == nil || *template.UserID != userID) {
		return nil, apperror.Forbidden("You can only use your own templates")
	}

	var jd *domain.JobDescription
	if req.JobDescriptionID != nil {
		jd, err = u.jdRepo.GetByID(ctx, *req.JobDescriptionID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.NotFound("Job description not found")
			}
			return nil, err
		}
		if jd.UserID != userID {
			return nil, apperror.Forbidden("You can only use your own job descriptions")
		}
	}

	projects, scores, err := u.selectProjects(ctx, userID, req.SelectedProjectIDs, jd)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, apperror.BadRequest("No projects available. Add or import projects first.")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Resume " + time.Now().Format("2006-01-02")
	}

	now := time.Now()
	resume := &domain.Resume{
		ID:                 uuid.NewString(),
		UserID:             userID,
		TemplateID:         &template.ID,
		JobDescriptionID:   req.JobDescriptionID,
		Name:               name,
		Version:            1,
		SelectedProjectIDs: projectIDs(projects),
		Status:             domain.ResumeStatusGenerating,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := u.resumeRepo.Create(ctx, resume); err != nil {
		return nil, err
	}

	data := buildUserData(user, projects)
	var jdContext *resumeagent.JDContext
	if jd != nil {
		jdContext = &resumeagent.JDContext{
			Title:          jd.Title,
			RequiredSkills: jd.RequiredSkills,
		}
		if jd.Company != nil {
			jdContext.Company = *jd.Company
		}
	}

	result, err := u.agent.Generate(ctx, template.LatexContent, data, jdContext)
	if err != nil {
		msg := err.Error()
		resume.Status = domain.ResumeStatusError
		resume.ErrorMessage = &msg
		_ = u.resumeRepo.Update(ctx, resume)
		return nil, apperror.UpstreamUnavailable("Resume generation failed")
	}

	generatedAt := time.Now()
	resume.LatexContent = &result.LatexContent
	resume.Status = domain.ResumeStatusGenerated
	resume.GeneratedAt = &generatedAt
	resume.GenerationParams = domain.GenerationParams{
		Model:             u.agent.Model(),
		MatchingScores:    scores,
		GroundingWarnings: result.Warnings,
		RemovedSections:   result.RemovedSections,
	}

	if err := u.resumeRepo.Update(ctx, resume); err != nil {
		return nil, err
	}

	if err := u.templateRepo.IncrementUseCount(ctx, template.ID); err != nil {
		logger.Log.Warn("could not bump template use count", "template_id", template.ID, "error", err)
	}

	logger.Log.Info("resume generated",
		"resume_id", resume.ID,
		"projects", len(projects),
		"warnings", len(result.Warnings))
	return resume, nil
}

// selectProjects picks the projects for the resume: the explicitly
// requested ones in the given order, or the user's projects ranked by
// relevance to the job description.
func (u *resumeUsecase) selectProjects(ctx context.Context, userID string, ids []string, jd *domain.JobDescription) ([]domain.Project, map[string]int, error) {
	if len(ids) > 0 {
		projects, err := u.projectRepo.FetchByIDs(ctx, userID, ids)
		if err != nil {
			return nil, nil, err
		}
		return projects, nil, nil
	}

	projects, _, err := u.projectRepo.FetchByUserID(ctx, userID, 100, 0)
	if err != nil {
		return nil, nil, err
	}

	jdText := ""
	if jd != nil {
		jdText = jd.Title + " " + jd.RawText + " " + strings.Join(jd.RequiredSkills, " ")
	}

	ranked := matching.TopK(matching.RankProjects(projects, jdText), matching.TopProjects)

	scores := make(map[string]int, len(ranked))
	selected := make([]domain.Project, 0, len(ranked))
	for _, r := range ranked {
		scores[r.Project.ID] = r.Score
		selected = append(selected, r.Project)
	}
	return selected, scores, nil
}

func (u *resumeUsecase) CompileResume(ctx context.Context, userID, id string) (*domain.Resume, error) {
	resume, err := u.GetResume(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if resume.LatexContent == nil || strings.TrimSpace(*resume.LatexContent) == "" {
		return nil, apperror.BadRequest("Resume has no LaTeX content. Generate it first.")
	}

	if safe, issues := latex.ValidateSafety(*resume.LatexContent); !safe {
		return nil, apperror.BadRequest("LaTeX contains unsafe commands: " + strings.Join(issues, "; "))
	}

	resume.Status = domain.ResumeStatusCompiling
	if err := u.resumeRepo.Update(ctx, resume); err != nil {
		return nil, err
	}

	result, err := u.compiler.Compile(ctx, *resume.LatexContent)
	if err != nil {
		msg := err.Error()
		resume.Status = domain.ResumeStatusError
		resume.ErrorMessage = &msg
		_ = u.resumeRepo.Update(ctx, resume)
		return nil, apperror.UpstreamUnavailable("Compilation service unavailable")
	}

	if !result.Success {
		resume.Status = domain.ResumeStatusError
		msg := "LaTeX compilation failed"
		if len(result.Errors) > 0 {
			msg = result.Errors[0].Message
		}
		resume.ErrorMessage = &msg
		resume.CompilationLog = &result.Log
		resume.CompilationWarnings = result.Warnings
		if err := u.resumeRepo.Update(ctx, resume); err != nil {
			return nil, err
		}
		return resume, nil
	}

	pdfPath, err := u.savePDF(resume.ID, result.PDF)
	if err != nil {
		msg := err.Error()
		resume.Status = domain.ResumeStatusError
		resume.ErrorMessage = &msg
		_ = u.resumeRepo.Update(ctx, resume)
		return nil, apperror.Internal(err)
	}

	compiledAt := time.Now()
	resume.Status = domain.ResumeStatusCompiled
	resume.PDFPath = &pdfPath
	resume.CompiledAt = &compiledAt
	resume.ErrorMessage = nil
	resume.CompilationLog = &result.Log
	resume.CompilationWarnings = result.Warnings

	if err := u.resumeRepo.Update(ctx, resume); err != nil {
		return nil, err
	}

	logger.Log.Info("resume compiled", "resume_id", resume.ID, "pdf_bytes", len(result.PDF))
	return resume, nil
}

func (u *resumeUsecase) GetPDF(ctx context.Context, userID, id string) ([]byte, string, error) {
	resume, err := u.GetResume(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	if resume.Status != domain.ResumeStatusCompiled || resume.PDFPath == nil {
		return nil, "", apperror.BadRequest("Resume is not compiled yet")
	}

	pdf, err := os.ReadFile(*resume.PDFPath)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	filename := fmt.Sprintf("%s.pdf", sanitizeFilename(resume.Name))
	return pdf, filename, nil
}

func (u *resumeUsecase) savePDF(resumeID string, pdf []byte) (string, error) {
	dir := filepath.Join(u.uploadDir, "pdfs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, resumeID+".pdf")
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func buildUserData(user *domain.User, projects []domain.Project) *resumeagent.UserData {
	personal := map[string]string{
		"name":  user.Name,
		"email": user.Email,
	}
	setIf := func(key string, v *string) {
		if v != nil && *v != "" {
			personal[key] = *v
		}
	}
	setIf("phone", user.Phone)
	setIf("location", user.Location)
	setIf("headline", user.Headline)
	setIf("summary", user.Summary)
	setIf("linkedin_url", user.LinkedinURL)
	setIf("website", user.Website)

	data := &resumeagent.UserData{
		Personal: personal,
		Skills:   user.Skills,
	}

	for _, p := range projects {
		pd := resumeagent.ProjectData{
			Title:        p.Title,
			Description:  p.Description,
			Technologies: p.Technologies,
			Highlights:   p.Highlights,
		}
		if p.URL != nil {
			pd.URL = *p.URL
		}
		pd.Dates = formatProjectDates(p)
		data.Projects = append(data.Projects, pd)
	}

	if user.Institution != nil && *user.Institution != "" {
		edu := resumeagent.EducationData{School: *user.Institution}
		if user.Degree != nil {
			edu.Degree = *user.Degree
		}
		if user.FieldOfStudy != nil {
			edu.Field = *user.FieldOfStudy
		}
		if user.GraduationYear != nil {
			edu.Dates = *user.GraduationYear
		}
		data.Education = append(data.Education, edu)
	}

	return data
}

func formatProjectDates(p domain.Project) string {
	if p.StartDate == nil {
		return ""
	}
	start := p.StartDate.Format("Jan 2006")
	switch {
	case p.IsCurrent:
		return start + " - Present"
	case p.EndDate != nil:
		return start + " - " + p.EndDate.Format("Jan 2006")
	default:
		return start
	}
}

func projectIDs(projects []domain.Project) []string {
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return ids
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "resume"
	}
	return b.String()
}
