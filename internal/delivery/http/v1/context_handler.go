package v1

import (
	"net/http"

	"go-outreach-backend/internal/delivery/http/response"
	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContextHandler struct {
	contextUC domain.ContextUsecase
	wizardUC  domain.WizardUsecase
}

func NewContextHandler(r *gin.RouterGroup, contextUC domain.ContextUsecase, wizardUC domain.WizardUsecase) {
	handler := &ContextHandler{contextUC: contextUC, wizardUC: wizardUC}

	ctxGroup := r.Group("/context")
	{
		ctxGroup.POST("", handler.Save)
		ctxGroup.GET("", handler.Get)
		ctxGroup.DELETE("", handler.Delete)
		ctxGroup.GET("/predefined-tags", handler.PredefinedTags)
		ctxGroup.GET("/tag-suggestions", handler.TagSuggestions)
	}
}

// Save godoc
// @Summary      Create or update the context profile
// @Tags         context
// @Accept       json
// @Produce      json
// @Param        request  body  domain.ContextBuildRequest  true  "Context profile"
// @Success      200  {object}  response.Response{data=domain.ContextProfile}
// @Failure      400  {object}  response.Response
// @Router       /context [post]
// @Security     BearerAuth
func (h *ContextHandler) Save(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.ContextBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	profile, err := h.contextUC.Save(c, userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	if _, err := h.wizardUC.Refresh(c, userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Context saved", profile)
}

// Get godoc
// @Summary      Get the context profile
// @Tags         context
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ContextProfile}
// @Failure      404  {object}  response.Response
// @Router       /context [get]
// @Security     BearerAuth
func (h *ContextHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.contextUC.Get(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Context profile", profile)
}

// Delete godoc
// @Summary      Delete the context profile
// @Tags         context
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /context [delete]
// @Security     BearerAuth
func (h *ContextHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.contextUC.Delete(c, userID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Context deleted", nil)
}

// PredefinedTags godoc
// @Summary      Get the static tag catalog for context setup
// @Tags         context
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.PredefinedTagsResponse}
// @Router       /context/predefined-tags [get]
// @Security     BearerAuth
func (h *ContextHandler) PredefinedTags(c *gin.Context) {
	response.Success(c, http.StatusOK, "Predefined tags", h.contextUC.PredefinedTags())
}

// TagSuggestions godoc
// @Summary      Get per-field tag suggestions with disabled state
// @Description  Returns up to 12 candidates for one field, marking those already selected
// @Tags         context
// @Produce      json
// @Param        field  query  string  true  "Field name: roles, industries, keywords or locations"
// @Success      200  {object}  response.Response{data=[]domain.TagSuggestion}
// @Failure      400  {object}  response.Response
// @Router       /context/tag-suggestions [get]
// @Security     BearerAuth
func (h *ContextHandler) TagSuggestions(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var candidates, selected []string
	field := c.Query("field")

	profile, err := h.contextUC.Get(c, userID)
	if err != nil {
		// A missing profile still gets suggestions, just with nothing
		// disabled.
		profile = &domain.ContextProfile{}
	}

	switch field {
	case "roles":
		candidates, selected = domain.CommonTechRoles, profile.TargetRoles
	case "industries":
		candidates, selected = domain.CommonTechIndustries, profile.PreferredIndustries
	case "keywords":
		candidates, selected = domain.CommonTechKeywords, profile.Keywords
	case "locations":
		candidates, selected = domain.CommonLocations, profile.Geography
	default:
		c.Error(apperror.BadRequest("Unknown field, expected roles, industries, keywords or locations"))
		return
	}

	set := domain.NewTagSet(selected...)
	response.Success(c, http.StatusOK, "Tag suggestions", set.Suggestions(candidates))
}
