package v1

import (
	"net/http"
	"strconv"

	"resume-agent-backend/internal/delivery/http/response"
	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC domain.ResumeUsecase, generateLimiter gin.HandlerFunc) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	resumes := protected.Group("/resumes")
	{
		resumes.GET("", handler.List)
		resumes.POST("", handler.Create)
		resumes.GET("/:id", handler.GetDetails)
		resumes.PUT("/:id/latex", handler.UpdateLatex)
		resumes.DELETE("/:id", handler.Delete)

		// Generation and compilation hit paid upstream services, so they
		// carry their own stricter rate limit.
		resumes.POST("/generate", generateLimiter, handler.Generate)
		resumes.POST("/:id/compile", generateLimiter, handler.Compile)
		resumes.GET("/:id/pdf", handler.DownloadPDF)
	}
}

type CreateResumeRequest struct {
	Name         string  `json:"name" binding:"required"`
	TemplateID   *string `json:"template_id"`
	LatexContent *string `json:"latex_content"`
}

type UpdateLatexRequest struct {
	LatexContent string `json:"latex_content" binding:"required"`
}

type GenerateResumeRequest struct {
	Name               string   `json:"name" binding:"required"`
	TemplateID         string   `json:"template_id" binding:"required"`
	JobDescriptionID   *string  `json:"job_description_id"`
	SelectedProjectIDs []string `json:"selected_project_ids"`
}

// ListResumes godoc
// @Summary      List resumes
// @Tags         resumes
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /resumes [get]
// @Security     BearerAuth
func (h *ResumeHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	resumes, total, err := h.resumeUC.ListResumes(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume list", gin.H{
		"resumes":   resumes,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// CreateResume godoc
// @Summary      Create a draft resume
// @Description  Create a resume shell, optionally with initial LaTeX content
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        resume  body      CreateResumeRequest  true  "Resume JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /resumes [post]
// @Security     BearerAuth
func (h *ResumeHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req CreateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	resume := &domain.Resume{
		Name:         req.Name,
		TemplateID:   req.TemplateID,
		LatexContent: req.LatexContent,
	}

	if err := h.resumeUC.CreateResume(c.Request.Context(), userID, resume); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Resume created", resume)
}

// GetResumeDetails godoc
// @Summary      Get resume details
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [get]
// @Security     BearerAuth
func (h *ResumeHandler) GetDetails(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	resume, err := h.resumeUC.GetResume(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume details", resume)
}

// UpdateResumeLatex godoc
// @Summary      Update resume LaTeX
// @Description  Replace the LaTeX source. Invalidates the previously compiled PDF.
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id     path      string              true  "Resume ID"
// @Param        latex  body      UpdateLatexRequest  true  "LaTeX Content"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id}/latex [put]
// @Security     BearerAuth
func (h *ResumeHandler) UpdateLatex(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req UpdateLatexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	resume, err := h.resumeUC.UpdateLatex(c.Request.Context(), userID, c.Param("id"), req.LatexContent)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume updated", resume)
}

// DeleteResume godoc
// @Summary      Delete a resume
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [delete]
// @Security     BearerAuth
func (h *ResumeHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.resumeUC.DeleteResume(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume deleted", nil)
}

// GenerateResume godoc
// @Summary      Generate a resume
// @Description  Generate LaTeX from the user's profile and projects. When a job description is given, the most relevant projects are selected automatically.
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        generate  body      GenerateResumeRequest  true  "Generation Parameters"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /resumes/generate [post]
// @Security     BearerAuth
func (h *ResumeHandler) Generate(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req GenerateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	resume, err := h.resumeUC.GenerateResume(c.Request.Context(), userID, &domain.GenerateRequest{
		Name:               req.Name,
		TemplateID:         req.TemplateID,
		JobDescriptionID:   req.JobDescriptionID,
		SelectedProjectIDs: req.SelectedProjectIDs,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume generated", resume)
}

// CompileResume godoc
// @Summary      Compile a resume to PDF
// @Description  Send the LaTeX source to the compilation service. Compilation errors are reported in the resume's error_message and compilation_log fields.
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /resumes/{id}/compile [post]
// @Security     BearerAuth
func (h *ResumeHandler) Compile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	resume, err := h.resumeUC.CompileResume(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	msg := "Resume compiled"
	if resume.Status == domain.ResumeStatusError {
		msg = "Compilation failed"
	}
	response.Success(c, http.StatusOK, msg, resume)
}

// DownloadResumePDF godoc
// @Summary      Download the compiled PDF
// @Tags         resumes
// @Produce      application/pdf
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {file}    file
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id}/pdf [get]
// @Security     BearerAuth
func (h *ResumeHandler) DownloadPDF(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	pdf, filename, err := h.resumeUC.GetPDF(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
