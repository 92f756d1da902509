package v1

import (
	"net/http"

	"go-outreach-backend/internal/delivery/http/response"
	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	progressUC domain.ProgressUsecase
	wizardUC   domain.WizardUsecase
}

func NewProgressHandler(r *gin.RouterGroup, progressUC domain.ProgressUsecase, wizardUC domain.WizardUsecase) {
	handler := &ProgressHandler{progressUC: progressUC, wizardUC: wizardUC}

	onboarding := r.Group("/onboarding")
	{
		onboarding.GET("/progress", handler.Progress)
		onboarding.GET("/wizard", handler.WizardState)
		onboarding.POST("/wizard/goto", handler.WizardGoto)
		onboarding.POST("/wizard/refresh", handler.WizardRefresh)
		onboarding.POST("/wizard/reset", handler.WizardReset)
	}
}

// Progress godoc
// @Summary      Get the merged onboarding progress snapshot
// @Description  Aggregates resume, context and SMTP state; a failing read degrades its booleans instead of erroring
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.OnboardingProgress}
// @Router       /onboarding/progress [get]
// @Security     BearerAuth
func (h *ProgressHandler) Progress(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	progress, err := h.progressUC.Aggregate(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding progress", progress)
}

// WizardState godoc
// @Summary      Get the wizard session state
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.WizardState}
// @Router       /onboarding/wizard [get]
// @Security     BearerAuth
func (h *ProgressHandler) WizardState(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	state, err := h.wizardUC.State(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Wizard state", state)
}

type wizardGotoRequest struct {
	Step int `json:"step" binding:"required"`
}

// WizardGoto godoc
// @Summary      Move the wizard to a step
// @Description  Backward moves within the completed prefix are free; forward moves are gated at the first incomplete step
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request  body  wizardGotoRequest  true  "Target step"
// @Success      200  {object}  response.Response{data=domain.WizardState}
// @Failure      400  {object}  response.Response
// @Router       /onboarding/wizard/goto [post]
// @Security     BearerAuth
func (h *ProgressHandler) WizardGoto(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req wizardGotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	state, err := h.wizardUC.Goto(c, userID, req.Step)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Wizard moved", state)
}

// WizardRefresh godoc
// @Summary      Re-aggregate progress after a completing action
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.WizardState}
// @Router       /onboarding/wizard/refresh [post]
// @Security     BearerAuth
func (h *ProgressHandler) WizardRefresh(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	state, err := h.wizardUC.Refresh(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Wizard refreshed", state)
}

// WizardReset godoc
// @Summary      Drop the wizard session
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /onboarding/wizard/reset [post]
// @Security     BearerAuth
func (h *ProgressHandler) WizardReset(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	h.wizardUC.Reset(userID)
	response.Success(c, http.StatusOK, "Wizard session reset", nil)
}
