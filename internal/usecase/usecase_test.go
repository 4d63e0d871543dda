package usecase_test

import (
	"context"
	"testing"
	"time"

	"resume-agent-backend/internal/domain"
	"resume-agent-backend/internal/resumeagent"
	"resume-agent-backend/internal/usecase"
	"resume-agent-backend/pkg/crypto"
	"resume-agent-backend/pkg/github"
	"resume-agent-backend/pkg/latex"
	"resume-agent-backend/pkg/token"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) FetchByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Project, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Project), args.Get(1).(int64), args.Error(2)
}
func (m *MockProjectRepo) FetchByIDs(ctx context.Context, userID string, ids []string) ([]domain.Project, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).([]domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProjectRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockProjectRepo) GetBySource(ctx context.Context, userID, sourceType, sourceID string) (*domain.Project, error) {
	args := m.Called(ctx, userID, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

type MockTemplateRepo struct {
	mock.Mock
}

func (m *MockTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTemplateRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Template), args.Error(1)
}
func (m *MockTemplateRepo) FetchForUser(ctx context.Context, userID string) ([]domain.Template, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Template), args.Error(1)
}
func (m *MockTemplateRepo) Update(ctx context.Context, t *domain.Template) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTemplateRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockTemplateRepo) CountSystemTemplates(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockTemplateRepo) IncrementUseCount(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) Create(ctx context.Context, r *domain.Resume) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockResumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}
func (m *MockResumeRepo) FetchByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Resume, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Resume), args.Get(1).(int64), args.Error(2)
}
func (m *MockResumeRepo) Update(ctx context.Context, r *domain.Resume) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockResumeRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockJDRepo struct {
	mock.Mock
}

func (m *MockJDRepo) Create(ctx context.Context, jd *domain.JobDescription) error {
	return m.Called(ctx, jd).Error(0)
}
func (m *MockJDRepo) GetByID(ctx context.Context, id string) (*domain.JobDescription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobDescription), args.Error(1)
}
func (m *MockJDRepo) FetchByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.JobDescription, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.JobDescription), args.Get(1).(int64), args.Error(2)
}
func (m *MockJDRepo) Update(ctx context.Context, jd *domain.JobDescription) error {
	return m.Called(ctx, jd).Error(0)
}
func (m *MockJDRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockGithubConnRepo struct {
	mock.Mock
}

func (m *MockGithubConnRepo) Upsert(ctx context.Context, c *domain.GithubConnection) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockGithubConnRepo) GetByUserID(ctx context.Context, userID string) (*domain.GithubConnection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GithubConnection), args.Error(1)
}
func (m *MockGithubConnRepo) DeleteByUserID(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// Fake external clients

type fakeGithubClient struct {
	user           *github.AuthenticatedUser
	repos          []github.Repo
	err            error
	detailRequests []string
}

func (f *fakeGithubClient) GetAuthenticatedUser(ctx context.Context) (*github.AuthenticatedUser, error) {
	return f.user, f.err
}
func (f *fakeGithubClient) ListUserRepos(ctx context.Context, includeForks, includePrivate bool, minStars int) ([]github.Repo, error) {
	return f.repos, f.err
}
func (f *fakeGithubClient) GetRepoDetails(ctx context.Context, fullName string) (*github.RepoDetails, error) {
	f.detailRequests = append(f.detailRequests, fullName)
	return nil, f.err
}

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Generate(ctx context.Context, system, prompt string) (string, error) {
	return f.response, f.err
}
func (f *fakeLLM) Model() string { return "test-model" }

type fakeAgent struct {
	result *resumeagent.Result
	err    error
}

func (f *fakeAgent) Generate(ctx context.Context, tmpl string, data *resumeagent.UserData, jd *resumeagent.JDContext) (*resumeagent.Result, error) {
	return f.result, f.err
}
func (f *fakeAgent) Model() string { return "test-model" }

type fakeCompiler struct {
	result *latex.CompilationResult
	err    error
}

func (f *fakeCompiler) Compile(ctx context.Context, source string) (*latex.CompilationResult, error) {
	return f.result, f.err
}

func newAuthUsecase(userRepo *MockUserRepo, connRepo *MockGithubConnRepo, gh usecase.GithubClient) domain.AuthUsecase {
	return usecase.NewAuthUsecase(
		userRepo, connRepo,
		token.NewManager("test-secret", 30),
		crypto.NewEncryptor("test-secret"),
		func(string) usecase.GithubClient { return gh },
		validator.New(),
	)
}

func TestAuthRegister(t *testing.T) {
	t.Run("rejects invalid email", func(t *testing.T) {
		uc := newAuthUsecase(new(MockUserRepo), new(MockGithubConnRepo), nil)
		_, _, err := uc.Register(context.Background(), "not-an-email", "X", "password123")
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		uc := newAuthUsecase(new(MockUserRepo), new(MockGithubConnRepo), nil)
		_, _, err := uc.Register(context.Background(), "a@b.com", "X", "short")
		assert.Error(t, err)
	})

	t.Run("creates user and issues token", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		uc := newAuthUsecase(userRepo, new(MockGithubConnRepo), nil)

		user, accessToken, err := uc.Register(context.Background(), "Jane@Example.com", "Jane", "password123")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, accessToken)
		assert.NotEqual(t, "password123", user.HashedPassword)
		userRepo.AssertExpectations(t)
	})

	t.Run("maps duplicate email to conflict", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailTaken)
		uc := newAuthUsecase(userRepo, new(MockGithubConnRepo), nil)

		_, _, err := uc.Register(context.Background(), "a@b.com", "X", "password123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})
}

func TestAuthLogin(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &domain.User{
		ID:             "u1",
		Email:          "a@b.com",
		HashedPassword: string(hashed),
		IsActive:       true,
	}

	t.Run("succeeds with correct password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", mock.Anything, "a@b.com").Return(stored, nil)
		uc := newAuthUsecase(userRepo, new(MockGithubConnRepo), nil)

		user, accessToken, err := uc.Login(context.Background(), "a@b.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.NotEmpty(t, accessToken)
	})

	t.Run("fails with wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", mock.Anything, "a@b.com").Return(stored, nil)
		uc := newAuthUsecase(userRepo, new(MockGithubConnRepo), nil)

		_, _, err := uc.Login(context.Background(), "a@b.com", "wrong")
		assert.Error(t, err)
	})

	t.Run("unknown email gets the same error as bad password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", mock.Anything, "nobody@b.com").Return(nil, domain.ErrNotFound)
		uc := newAuthUsecase(userRepo, new(MockGithubConnRepo), nil)

		_, _, err := uc.Login(context.Background(), "nobody@b.com", "password123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})
}

func TestConnectGithub(t *testing.T) {
	t.Run("stores encrypted token", func(t *testing.T) {
		connRepo := new(MockGithubConnRepo)
		var saved *domain.GithubConnection
		connRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.GithubConnection)
		}).Return(nil)

		gh := &fakeGithubClient{user: &github.AuthenticatedUser{ID: 42, Login: "octocat"}}
		uc := newAuthUsecase(new(MockUserRepo), connRepo, gh)

		conn, err := uc.ConnectGithub(context.Background(), "u1", "ghp_token")
		require.NoError(t, err)
		assert.Equal(t, "octocat", conn.GithubUsername)
		require.NotNil(t, saved)
		assert.NotEqual(t, "ghp_token", saved.EncryptedToken)
		assert.NotContains(t, saved.EncryptedToken, "ghp_token")
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		gh := &fakeGithubClient{err: github.ErrUnauthorized}
		uc := newAuthUsecase(new(MockUserRepo), new(MockGithubConnRepo), gh)

		_, err := uc.ConnectGithub(context.Background(), "u1", "bad")
		assert.Error(t, err)
	})
}

func TestProjectOwnership(t *testing.T) {
	projectRepo := new(MockProjectRepo)
	projectRepo.On("GetByID", mock.Anything, "p1").Return(&domain.Project{ID: "p1", UserID: "owner"}, nil)

	uc := usecase.NewProjectUsecase(projectRepo, nil, nil, nil, nil, nil)

	t.Run("owner can read", func(t *testing.T) {
		p, err := uc.GetProject(context.Background(), "owner", "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
	})

	t.Run("other users are rejected", func(t *testing.T) {
		_, err := uc.GetProject(context.Background(), "intruder", "p1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own projects")
	})
}

func TestTemplateSystemProtection(t *testing.T) {
	templateRepo := new(MockTemplateRepo)
	templateRepo.On("GetByID", mock.Anything, "sys1").Return(&domain.Template{ID: "sys1", IsSystem: true}, nil)

	uc := usecase.NewTemplateUsecase(templateRepo)

	t.Run("system templates are readable by anyone", func(t *testing.T) {
		tmpl, err := uc.GetTemplate(context.Background(), "u1", "sys1")
		require.NoError(t, err)
		assert.True(t, tmpl.IsSystem)
	})

	t.Run("system templates cannot be deleted", func(t *testing.T) {
		err := uc.DeleteTemplate(context.Background(), "u1", "sys1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be deleted")
	})
}

func TestInitSystemTemplates(t *testing.T) {
	t.Run("seeds when empty", func(t *testing.T) {
		templateRepo := new(MockTemplateRepo)
		templateRepo.On("CountSystemTemplates", mock.Anything).Return(int64(0), nil)
		templateRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewTemplateUsecase(templateRepo)
		created, err := uc.InitSystemTemplates(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, created)
	})

	t.Run("is idempotent", func(t *testing.T) {
		templateRepo := new(MockTemplateRepo)
		templateRepo.On("CountSystemTemplates", mock.Anything).Return(int64(2), nil)

		uc := usecase.NewTemplateUsecase(templateRepo)
		created, err := uc.InitSystemTemplates(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, created)
		templateRepo.AssertNotCalled(t, "Create")
	})
}

func TestAnalyzeJobDescription(t *testing.T) {
	jd := &domain.JobDescription{
		ID:      "jd1",
		UserID:  "u1",
		Title:   "Backend Engineer",
		RawText: "We need Python and PostgreSQL experience.",
	}

	t.Run("stores extracted skills", func(t *testing.T) {
		jdRepo := new(MockJDRepo)
		jdCopy := *jd
		jdRepo.On("GetByID", mock.Anything, "jd1").Return(&jdCopy, nil)
		jdRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		llm := &fakeLLM{response: `{"required_skills":["Python","PostgreSQL"],"preferred_skills":["Docker"],"keywords":["backend","api"]}`}
		uc := usecase.NewJobDescriptionUsecase(jdRepo, llm)

		analyzed, err := uc.AnalyzeJobDescription(context.Background(), "u1", "jd1")
		require.NoError(t, err)
		assert.True(t, analyzed.IsAnalyzed)
		assert.Equal(t, []string{"Python", "PostgreSQL"}, analyzed.RequiredSkills)
		assert.NotNil(t, analyzed.AnalyzedAt)
	})

	t.Run("falls back to keyword scan when llm fails", func(t *testing.T) {
		jdRepo := new(MockJDRepo)
		jdCopy := *jd
		jdRepo.On("GetByID", mock.Anything, "jd1").Return(&jdCopy, nil)
		jdRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		llm := &fakeLLM{err: assert.AnError}
		uc := usecase.NewJobDescriptionUsecase(jdRepo, llm)

		analyzed, err := uc.AnalyzeJobDescription(context.Background(), "u1", "jd1")
		require.NoError(t, err)
		assert.True(t, analyzed.IsAnalyzed)
		assert.Contains(t, analyzed.RequiredSkills, "python")
		assert.Contains(t, analyzed.RequiredSkills, "postgresql")
	})
}

func TestUpdateJobDescription(t *testing.T) {
	now := time.Now()
	stored := &domain.JobDescription{
		ID:                 "jd1",
		UserID:             "u1",
		Title:              "Backend Engineer",
		RawText:            "We need Go and PostgreSQL experience.",
		IsAnalyzed:         true,
		AnalyzedAt:         &now,
		RequiredSkills:     []string{"go", "postgresql"},
		PreferredSkills:    []string{"docker"},
		Keywords:           []string{"backend", "api"},
		ParsedRequirements: map[string]interface{}{"title": "Backend Engineer"},
	}

	setup := func() (domain.JobDescriptionUsecase, func() *domain.JobDescription) {
		jdRepo := new(MockJDRepo)
		jdCopy := *stored
		jdRepo.On("GetByID", mock.Anything, "jd1").Return(&jdCopy, nil)
		var saved *domain.JobDescription
		jdRepo.On("Update", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.JobDescription)
		}).Return(nil)
		return usecase.NewJobDescriptionUsecase(jdRepo, nil), func() *domain.JobDescription { return saved }
	}

	t.Run("title-only update keeps the stored analysis", func(t *testing.T) {
		uc, saved := setup()

		err := uc.UpdateJobDescription(context.Background(), "u1", &domain.JobDescription{
			ID:      "jd1",
			Title:   "Senior Backend Engineer",
			RawText: stored.RawText,
		})
		require.NoError(t, err)

		jd := saved()
		require.NotNil(t, jd)
		assert.True(t, jd.IsAnalyzed)
		assert.NotNil(t, jd.AnalyzedAt)
		assert.Equal(t, []string{"go", "postgresql"}, jd.RequiredSkills)
		assert.Equal(t, []string{"docker"}, jd.PreferredSkills)
		assert.Equal(t, []string{"backend", "api"}, jd.Keywords)
		assert.Equal(t, stored.ParsedRequirements, jd.ParsedRequirements)
	})

	t.Run("text change resets the analysis", func(t *testing.T) {
		uc, saved := setup()

		err := uc.UpdateJobDescription(context.Background(), "u1", &domain.JobDescription{
			ID:      "jd1",
			Title:   "Backend Engineer",
			RawText: "Completely different posting.",
		})
		require.NoError(t, err)

		jd := saved()
		require.NotNil(t, jd)
		assert.False(t, jd.IsAnalyzed)
		assert.Nil(t, jd.AnalyzedAt)
	})
}

func TestIngestAcceptsRepoURLs(t *testing.T) {
	encryptor := crypto.NewEncryptor("test-secret")
	encrypted, err := encryptor.Encrypt("ghp_token")
	require.NoError(t, err)

	connRepo := new(MockGithubConnRepo)
	connRepo.On("GetByUserID", mock.Anything, "u1").Return(&domain.GithubConnection{
		ID: "c1", UserID: "u1", EncryptedToken: encrypted,
	}, nil)

	gh := &fakeGithubClient{err: assert.AnError}
	uc := usecase.NewProjectUsecase(new(MockProjectRepo), connRepo, nil, encryptor,
		func(string) usecase.GithubClient { return gh }, nil)

	result, err := uc.IngestGithubRepos(context.Background(), "u1", []string{
		"https://github.com/octocat/hello-world.git",
		"octocat/spoon-knife",
		"https://github.com/broken",
	})
	require.NoError(t, err)

	// URLs are normalized to owner/name before hitting the API;
	// unparseable ones are skipped without a request.
	assert.Equal(t, []string{"octocat/hello-world", "octocat/spoon-knife"}, gh.detailRequests)
	assert.Len(t, result.Skipped, 3)
}

func TestGenerateResume(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "a@b.com", Name: "Jane", Skills: []string{"Go"}}
	template := &domain.Template{ID: "t1", IsSystem: true, LatexContent: `\documentclass{article}`}
	projects := []domain.Project{
		{ID: "p1", UserID: "u1", Title: "Pipeline", Description: "Kafka pipeline", Technologies: []string{"Python", "Kafka"}},
		{ID: "p2", UserID: "u1", Title: "Blog", Description: "Static site", Technologies: []string{"Hugo"}},
	}

	setup := func(agent usecase.ResumeAgent) (domain.ResumeUsecase, *MockResumeRepo) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", mock.Anything, "u1").Return(user, nil)
		templateRepo := new(MockTemplateRepo)
		templateRepo.On("GetByID", mock.Anything, "t1").Return(template, nil)
		templateRepo.On("IncrementUseCount", mock.Anything, "t1").Return(nil)
		projectRepo := new(MockProjectRepo)
		projectRepo.On("FetchByUserID", mock.Anything, "u1", mock.Anything, mock.Anything).Return(projects, int64(2), nil)
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		resumeRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewResumeUsecase(resumeRepo, projectRepo, new(MockJDRepo), templateRepo, userRepo, agent, &fakeCompiler{}, t.TempDir())
		return uc, resumeRepo
	}

	t.Run("generates and stores latex", func(t *testing.T) {
		agent := &fakeAgent{result: &resumeagent.Result{LatexContent: `\documentclass{article}`}}
		uc, resumeRepo := setup(agent)

		resume, err := uc.GenerateResume(context.Background(), "u1", &domain.GenerateRequest{TemplateID: "t1"})
		require.NoError(t, err)
		assert.Equal(t, domain.ResumeStatusGenerated, resume.Status)
		require.NotNil(t, resume.LatexContent)
		assert.Len(t, resume.SelectedProjectIDs, 2)
		assert.Equal(t, "test-model", resume.GenerationParams.Model)
		resumeRepo.AssertExpectations(t)
	})

	t.Run("marks resume as errored when generation fails", func(t *testing.T) {
		agent := &fakeAgent{err: assert.AnError}
		uc, _ := setup(agent)

		_, err := uc.GenerateResume(context.Background(), "u1", &domain.GenerateRequest{TemplateID: "t1"})
		assert.Error(t, err)
	})
}

func TestCompileResume(t *testing.T) {
	latexSrc := `\documentclass{article}\begin{document}hi\end{document}`

	newResume := func() *domain.Resume {
		return &domain.Resume{
			ID: "r1", UserID: "u1", Name: "My Resume",
			LatexContent: &latexSrc,
			Status:       domain.ResumeStatusGenerated,
			CreatedAt:    time.Now(),
		}
	}

	setup := func(resume *domain.Resume, compiler usecase.LatexCompiler, dir string) domain.ResumeUsecase {
		resumeRepo := new(MockResumeRepo)
		resumeRepo.On("GetByID", mock.Anything, "r1").Return(resume, nil)
		resumeRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		return usecase.NewResumeUsecase(resumeRepo, new(MockProjectRepo), new(MockJDRepo), new(MockTemplateRepo), new(MockUserRepo), &fakeAgent{}, compiler, dir)
	}

	t.Run("stores pdf on success", func(t *testing.T) {
		dir := t.TempDir()
		compiler := &fakeCompiler{result: &latex.CompilationResult{Success: true, PDF: []byte("%PDF-1.5 fake"), Log: "ok"}}
		uc := setup(newResume(), compiler, dir)

		resume, err := uc.CompileResume(context.Background(), "u1", "r1")
		require.NoError(t, err)
		assert.Equal(t, domain.ResumeStatusCompiled, resume.Status)
		require.NotNil(t, resume.PDFPath)

		pdf, filename, err := uc.GetPDF(context.Background(), "u1", "r1")
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.5 fake"), pdf)
		assert.Equal(t, "My_Resume.pdf", filename)
	})

	t.Run("records compile errors", func(t *testing.T) {
		compiler := &fakeCompiler{result: &latex.CompilationResult{
			Success: false,
			Log:     "! LaTeX Error: something",
			Errors:  []latex.CompilationError{{Message: "! LaTeX Error: something", Severity: "error"}},
		}}
		uc := setup(newResume(), compiler, t.TempDir())

		resume, err := uc.CompileResume(context.Background(), "u1", "r1")
		require.NoError(t, err)
		assert.Equal(t, domain.ResumeStatusError, resume.Status)
		require.NotNil(t, resume.ErrorMessage)
	})

	t.Run("rejects unsafe latex", func(t *testing.T) {
		unsafe := `\documentclass{article}\immediate\write18{rm -rf /}\begin{document}\end{document}`
		resume := newResume()
		resume.LatexContent = &unsafe
		uc := setup(resume, &fakeCompiler{}, t.TempDir())

		_, err := uc.CompileResume(context.Background(), "u1", "r1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsafe")
	})
}
