package v1

import (
	"net/http"

	"resume-agent-backend/internal/delivery/http/response"
	"resume-agent-backend/internal/domain"
	"resume-agent-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateUC domain.TemplateUsecase
}

func NewTemplateHandler(protected *gin.RouterGroup, templateUC domain.TemplateUsecase) {
	handler := &TemplateHandler{templateUC: templateUC}

	templates := protected.Group("/templates")
	{
		templates.GET("", handler.List)
		templates.POST("", handler.Create)
		templates.GET("/:id", handler.GetDetails)
		templates.PUT("/:id", handler.Update)
		templates.DELETE("/:id", handler.Delete)
		templates.POST("/init-system", handler.InitSystem)
	}
}

type TemplateRequest struct {
	Name         string                 `json:"name" binding:"required"`
	Description  *string                `json:"description"`
	LatexContent string                 `json:"latex_content" binding:"required"`
	Placeholders map[string]interface{} `json:"placeholders"`
	Category     *string                `json:"category"`
}

// ListTemplates godoc
// @Summary      List templates
// @Description  Get system templates plus the user's own templates
// @Tags         templates
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /templates [get]
// @Security     BearerAuth
func (h *TemplateHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	templates, err := h.templateUC.ListTemplates(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Template list", gin.H{
		"templates": templates,
		"total":     len(templates),
	})
}

// CreateTemplate godoc
// @Summary      Create a template
// @Description  Add a custom LaTeX resume template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        template  body      TemplateRequest  true  "Template JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /templates [post]
// @Security     BearerAuth
func (h *TemplateHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	tmpl := &domain.Template{
		Name:         req.Name,
		Description:  req.Description,
		LatexContent: req.LatexContent,
		Placeholders: req.Placeholders,
		Category:     req.Category,
	}

	if err := h.templateUC.CreateTemplate(c.Request.Context(), userID, tmpl); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Template created", tmpl)
}

// GetTemplateDetails godoc
// @Summary      Get template details
// @Tags         templates
// @Produce      json
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /templates/{id} [get]
// @Security     BearerAuth
func (h *TemplateHandler) GetDetails(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	tmpl, err := h.templateUC.GetTemplate(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Template details", tmpl)
}

// UpdateTemplate godoc
// @Summary      Update a template
// @Description  Update a custom template. System templates cannot be modified.
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        id        path      string           true  "Template ID"
// @Param        template  body      TemplateRequest  true  "Template JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /templates/{id} [put]
// @Security     BearerAuth
func (h *TemplateHandler) Update(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	tmpl := &domain.Template{
		ID:           c.Param("id"),
		Name:         req.Name,
		Description:  req.Description,
		LatexContent: req.LatexContent,
		Placeholders: req.Placeholders,
		Category:     req.Category,
	}

	if err := h.templateUC.UpdateTemplate(c.Request.Context(), userID, tmpl); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Template updated", tmpl)
}

// DeleteTemplate godoc
// @Summary      Delete a template
// @Description  Delete a custom template. System templates cannot be deleted.
// @Tags         templates
// @Produce      json
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /templates/{id} [delete]
// @Security     BearerAuth
func (h *TemplateHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.templateUC.DeleteTemplate(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Template deleted", nil)
}

// InitSystemTemplates godoc
// @Summary      Seed system templates
// @Description  Idempotently create the built-in templates. Returns the number created.
// @Tags         templates
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /templates/init-system [post]
// @Security     BearerAuth
func (h *TemplateHandler) InitSystem(c *gin.Context) {
	created, err := h.templateUC.InitSystemTemplates(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "System templates initialized", gin.H{
		"created": created,
	})
}
