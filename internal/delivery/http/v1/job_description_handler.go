package v1

import (
	"net/http"
	"strconv"

	"resume-agent-backend/internal/delivery/http/response"
	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobDescriptionHandler struct {
	jdUC domain.JobDescriptionUsecase
}

func NewJobDescriptionHandler(protected *gin.RouterGroup, jdUC domain.JobDescriptionUsecase) {
	handler := &JobDescriptionHandler{jdUC: jdUC}

	jds := protected.Group("/job-descriptions")
	{
		jds.GET("", handler.List)
		jds.POST("", handler.Create)
		jds.GET("/:id", handler.GetDetails)
		jds.PUT("/:id", handler.Update)
		jds.DELETE("/:id", handler.Delete)
		jds.POST("/:id/analyze", handler.Analyze)
	}
}

type JobDescriptionRequest struct {
	Title     string  `json:"title" binding:"required"`
	Company   *string `json:"company"`
	Location  *string `json:"location"`
	RawText   string  `json:"raw_text" binding:"required"`
	SourceURL *string `json:"source_url"`
}

// ListJobDescriptions godoc
// @Summary      List job descriptions
// @Tags         job-descriptions
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /job-descriptions [get]
// @Security     BearerAuth
func (h *JobDescriptionHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	jds, total, err := h.jdUC.ListJobDescriptions(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job description list", gin.H{
		"job_descriptions": jds,
		"total":            total,
		"page":             page,
		"page_size":        pageSize,
	})
}

// CreateJobDescription godoc
// @Summary      Create a job description
// @Description  Save a pasted job posting for later analysis and resume targeting
// @Tags         job-descriptions
// @Accept       json
// @Produce      json
// @Param        jd   body      JobDescriptionRequest  true  "Job Description JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /job-descriptions [post]
// @Security     BearerAuth
func (h *JobDescriptionHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req JobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	jd := &domain.JobDescription{
		Title:     req.Title,
		Company:   req.Company,
		Location:  req.Location,
		RawText:   req.RawText,
		SourceURL: req.SourceURL,
	}

	if err := h.jdUC.CreateJobDescription(c.Request.Context(), userID, jd); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job description created", jd)
}

// GetJobDescriptionDetails godoc
// @Summary      Get job description details
// @Tags         job-descriptions
// @Produce      json
// @Param        id   path      string  true  "Job Description ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job-descriptions/{id} [get]
// @Security     BearerAuth
func (h *JobDescriptionHandler) GetDetails(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jd, err := h.jdUC.GetJobDescription(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job description details", jd)
}

// UpdateJobDescription godoc
// @Summary      Update a job description
// @Description  Update a job description. Editing the raw text resets the analysis.
// @Tags         job-descriptions
// @Accept       json
// @Produce      json
// @Param        id   path      string                 true  "Job Description ID"
// @Param        jd   body      JobDescriptionRequest  true  "Job Description JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job-descriptions/{id} [put]
// @Security     BearerAuth
func (h *JobDescriptionHandler) Update(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req JobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	jd := &domain.JobDescription{
		ID:        c.Param("id"),
		Title:     req.Title,
		Company:   req.Company,
		Location:  req.Location,
		RawText:   req.RawText,
		SourceURL: req.SourceURL,
	}

	if err := h.jdUC.UpdateJobDescription(c.Request.Context(), userID, jd); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job description updated", jd)
}

// DeleteJobDescription godoc
// @Summary      Delete a job description
// @Tags         job-descriptions
// @Produce      json
// @Param        id   path      string  true  "Job Description ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job-descriptions/{id} [delete]
// @Security     BearerAuth
func (h *JobDescriptionHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.jdUC.DeleteJobDescription(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job description deleted", nil)
}

// AnalyzeJobDescription godoc
// @Summary      Analyze a job description
// @Description  Extract required skills, preferred skills, and keywords from the raw text. Idempotent once analyzed.
// @Tags         job-descriptions
// @Produce      json
// @Param        id   path      string  true  "Job Description ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /job-descriptions/{id}/analyze [post]
// @Security     BearerAuth
func (h *JobDescriptionHandler) Analyze(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jd, err := h.jdUC.AnalyzeJobDescription(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job description analyzed", jd)
}
