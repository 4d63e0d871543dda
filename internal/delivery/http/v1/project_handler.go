package v1

import (
	"net/http"
	"strconv"
	"time"

	"resume-agent-backend/internal/delivery/http/response"
	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectUC domain.ProjectUsecase
}

func NewProjectHandler(protected *gin.RouterGroup, projectUC domain.ProjectUsecase) {
	handler := &ProjectHandler{projectUC: projectUC}

	projects := protected.Group("/projects")
	{
		projects.GET("", handler.List)
		projects.POST("", handler.Create)
		projects.GET("/:id", handler.GetDetails)
		projects.PUT("/:id", handler.Update)
		projects.DELETE("/:id", handler.Delete)

		// GitHub import flow: browse first, then ingest a selection
		projects.GET("/github/repos", handler.ListGithubRepos)
		projects.POST("/github/ingest", handler.IngestGithubRepos)
	}
}

type ProjectRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Highlights   []string `json:"highlights"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	IsCurrent    bool     `json:"is_current"`
	URL          *string  `json:"url"`
	DemoURL      *string  `json:"demo_url"`
	IsFeatured   bool     `json:"is_featured"`
}

type IngestGithubRequest struct {
	FullNames []string `json:"full_names" binding:"required,min=1"`
}

func (r *ProjectRequest) toDomain() (*domain.Project, error) {
	project := &domain.Project{
		SourceType:   domain.SourceManual,
		Title:        r.Title,
		Description:  r.Description,
		Technologies: r.Technologies,
		Highlights:   r.Highlights,
		IsCurrent:    r.IsCurrent,
		URL:          r.URL,
		DemoURL:      r.DemoURL,
		IsFeatured:   r.IsFeatured,
	}

	parseDate := func(s *string) (*time.Time, error) {
		if s == nil || *s == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", *s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}

	var err error
	if project.StartDate, err = parseDate(r.StartDate); err != nil {
		return nil, err
	}
	if project.EndDate, err = parseDate(r.EndDate); err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects godoc
// @Summary      List projects
// @Description  Get the authenticated user's projects with pagination
// @Tags         projects
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /projects [get]
// @Security     BearerAuth
func (h *ProjectHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	projects, total, err := h.projectUC.ListProjects(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Project list", gin.H{
		"projects":  projects,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// CreateProject godoc
// @Summary      Create a project
// @Description  Add a project manually
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        project  body      ProjectRequest  true  "Project JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /projects [post]
// @Security     BearerAuth
func (h *ProjectHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	project, err := req.toDomain()
	if err != nil {
		c.Error(apperror.BadRequest("Dates must use YYYY-MM-DD format"))
		return
	}

	if err := h.projectUC.CreateProject(c.Request.Context(), userID, project); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Project created", project)
}

// GetProjectDetails godoc
// @Summary      Get project details
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /projects/{id} [get]
// @Security     BearerAuth
func (h *ProjectHandler) GetDetails(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	project, err := h.projectUC.GetProject(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Project details", project)
}

// UpdateProject godoc
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Project ID"
// @Param        project  body      ProjectRequest  true  "Project JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /projects/{id} [put]
// @Security     BearerAuth
func (h *ProjectHandler) Update(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	project, err := req.toDomain()
	if err != nil {
		c.Error(apperror.BadRequest("Dates must use YYYY-MM-DD format"))
		return
	}
	project.ID = c.Param("id")

	if err := h.projectUC.UpdateProject(c.Request.Context(), userID, project); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Project updated", project)
}

// DeleteProject godoc
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /projects/{id} [delete]
// @Security     BearerAuth
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.projectUC.DeleteProject(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Project deleted", nil)
}

// ListGithubRepos godoc
// @Summary      List GitHub repositories
// @Description  Browse the connected GitHub account's repositories without importing them
// @Tags         projects
// @Produce      json
// @Param        include_forks  query     bool  false  "Include forked repositories"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /projects/github/repos [get]
// @Security     BearerAuth
func (h *ProjectHandler) ListGithubRepos(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	includeForks := c.DefaultQuery("include_forks", "false") == "true"

	repos, err := h.projectUC.ListGithubRepos(c.Request.Context(), userID, includeForks)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "GitHub repositories", gin.H{
		"repos": repos,
		"total": len(repos),
	})
}

// IngestGithubRepos godoc
// @Summary      Import GitHub repositories
// @Description  Import the selected repositories as projects. Tech stack and highlights are extracted automatically.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        ingest  body      IngestGithubRequest  true  "Repository full names (owner/repo) or GitHub URLs"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /projects/github/ingest [post]
// @Security     BearerAuth
func (h *ProjectHandler) IngestGithubRepos(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req IngestGithubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.projectUC.IngestGithubRepos(c.Request.Context(), userID, req.FullNames)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "GitHub import finished", result)
}
