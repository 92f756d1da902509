package v1

import (
	"net/http"

	"go-outreach-backend/internal/delivery/http/response"
	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewUC domain.ReviewUsecase
}

func NewReviewHandler(r *gin.RouterGroup, reviewUC domain.ReviewUsecase) {
	handler := &ReviewHandler{reviewUC: reviewUC}

	review := r.Group("/review")
	{
		review.GET("", handler.Load)
		review.POST("/select", handler.Select)
		review.PATCH("/status", handler.ChangeStatus)
		review.PATCH("/content", handler.UpdateContent)
		review.DELETE("/emails/:id", handler.Delete)
		review.POST("/end", handler.End)
	}
}

// Load godoc
// @Summary      Load one status partition into the triage session
// @Description  Auto-selects the first item when nothing valid is selected
// @Tags         review
// @Produce      json
// @Param        status  query  string  false  "Status filter, defaults to new"
// @Success      200  {object}  response.Response{data=domain.ReviewSessionView}
// @Failure      400  {object}  response.Response
// @Router       /review [get]
// @Security     BearerAuth
func (h *ReviewHandler) Load(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	filter := domain.EmailStatus(c.Query("status"))
	if filter == "" {
		filter = domain.StatusNew
	}

	view, err := h.reviewUC.Load(c, userID, filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Review session", view)
}

// Select godoc
// @Summary      Select an email in the triage session
// @Description  Switching the selection discards the previous email's revision chat
// @Tags         review
// @Accept       json
// @Produce      json
// @Param        request  body  domain.ReviewSelectRequest  true  "Email to select"
// @Success      200  {object}  response.Response{data=domain.ReviewSessionView}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /review/select [post]
// @Security     BearerAuth
func (h *ReviewHandler) Select(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.ReviewSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	view, err := h.reviewUC.Select(c, userID, req.EmailID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email selected", view)
}

// ChangeStatus godoc
// @Summary      Change an email's status inside the triage session
// @Description  A status leaving the active filter removes the item; selection falls to the next remaining item
// @Tags         review
// @Accept       json
// @Produce      json
// @Param        request  body  domain.ReviewStatusRequest  true  "Transition"
// @Success      200  {object}  response.Response{data=domain.ReviewSessionView}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /review/status [patch]
// @Security     BearerAuth
func (h *ReviewHandler) ChangeStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.ReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	view, err := h.reviewUC.ChangeStatus(c, userID, req.EmailID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Status changed", view)
}

// UpdateContent godoc
// @Summary      Patch the selected email's content inside the triage session
// @Description  Confirm-then-apply; a failed update leaves the session unchanged
// @Tags         review
// @Accept       json
// @Produce      json
// @Param        request  body  domain.ReviewContentRequest  true  "Fields to patch"
// @Success      200  {object}  response.Response{data=domain.ReviewSessionView}
// @Failure      400  {object}  response.Response
// @Router       /review/content [patch]
// @Security     BearerAuth
func (h *ReviewHandler) UpdateContent(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.ReviewContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	view, err := h.reviewUC.UpdateContent(c, userID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Content updated", view)
}

// Delete godoc
// @Summary      Delete an email from the triage session
// @Tags         review
// @Produce      json
// @Param        id  path  string  true  "Email ID"
// @Success      200  {object}  response.Response{data=domain.ReviewSessionView}
// @Failure      404  {object}  response.Response
// @Router       /review/emails/{id} [delete]
// @Security     BearerAuth
func (h *ReviewHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	view, err := h.reviewUC.Delete(c, userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email deleted", view)
}

// End godoc
// @Summary      Drop the triage session
// @Tags         review
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /review/end [post]
// @Security     BearerAuth
func (h *ReviewHandler) End(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	h.reviewUC.End(userID)
	response.Success(c, http.StatusOK, "Review session ended", nil)
}
