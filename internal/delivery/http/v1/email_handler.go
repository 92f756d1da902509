package v1

import (
	"net/http"

	"go-outreach-backend/internal/delivery/http/response"
	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUC domain.EmailUsecase
	chatUC  domain.ChatUsecase
}

func NewEmailHandler(r *gin.RouterGroup, emailUC domain.EmailUsecase, chatUC domain.ChatUsecase, aiLimiter gin.HandlerFunc) {
	handler := &EmailHandler{emailUC: emailUC, chatUC: chatUC}

	emails := r.Group("/emails")
	{
		emails.POST("/generate", aiLimiter, handler.Generate)
		emails.GET("", handler.List)
		emails.GET("/:id", handler.Get)
		emails.PATCH("/:id/status", handler.UpdateStatus)
		emails.PATCH("/:id/content", handler.UpdateContent)
		emails.DELETE("/:id", handler.Delete)
		emails.POST("/:id/send", handler.Send)

		emails.GET("/:id/chat", handler.ChatHistory)
		emails.POST("/:id/chat", aiLimiter, handler.ChatMessage)
		emails.POST("/:id/quick-action", aiLimiter, handler.QuickAction)
		emails.DELETE("/:id/chat", handler.EndChat)
	}
}

// Generate godoc
// @Summary      Generate an outreach email draft
// @Tags         emails
// @Accept       json
// @Produce      json
// @Param        request  body  domain.EmailGenerateRequest  true  "Company payload"
// @Success      201  {object}  response.Response{data=domain.EmailItem}
// @Failure      400  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /emails/generate [post]
// @Security     BearerAuth
func (h *EmailHandler) Generate(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.EmailGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	item, err := h.emailUC.Generate(c, userID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Email generated", item)
}

// List godoc
// @Summary      List emails scoped to one status partition
// @Tags         emails
// @Produce      json
// @Param        status  query  string  false  "Status filter: new, under_review, approved, rejected, sent"
// @Success      200  {object}  response.Response{data=[]domain.EmailItem}
// @Failure      400  {object}  response.Response
// @Router       /emails [get]
// @Security     BearerAuth
func (h *EmailHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	items, err := h.emailUC.List(c, userID, domain.EmailStatus(c.Query("status")))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Emails", items)
}

// Get godoc
// @Summary      Get one email
// @Tags         emails
// @Produce      json
// @Param        id  path  string  true  "Email ID"
// @Success      200  {object}  response.Response{data=domain.EmailItem}
// @Failure      404  {object}  response.Response
// @Router       /emails/{id} [get]
// @Security     BearerAuth
func (h *EmailHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	item, err := h.emailUC.Get(c, userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email", item)
}

// UpdateStatus godoc
// @Summary      Change an email's status
// @Tags         emails
// @Accept       json
// @Produce      json
// @Param        id       path  string                           true  "Email ID"
// @Param        request  body  domain.EmailUpdateStatusRequest  true  "New status"
// @Success      200  {object}  response.Response{data=domain.EmailItem}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /emails/{id}/status [patch]
// @Security     BearerAuth
func (h *EmailHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.EmailUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	item, err := h.emailUC.UpdateStatus(c, userID, c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Status updated", item)
}

// UpdateContent godoc
// @Summary      Patch an email's subject, content or recipient
// @Tags         emails
// @Accept       json
// @Produce      json
// @Param        id       path  string                            true  "Email ID"
// @Param        request  body  domain.EmailUpdateContentRequest  true  "Fields to patch"
// @Success      200  {object}  response.Response{data=domain.EmailItem}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /emails/{id}/content [patch]
// @Security     BearerAuth
func (h *EmailHandler) UpdateContent(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.EmailUpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	item, err := h.emailUC.UpdateContent(c, userID, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Content updated", item)
}

// Delete godoc
// @Summary      Delete an email draft
// @Tags         emails
// @Produce      json
// @Param        id  path  string  true  "Email ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /emails/{id} [delete]
// @Security     BearerAuth
func (h *EmailHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.emailUC.Delete(c, userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	h.chatUC.EndSession(userID, c.Param("id"))
	response.Success(c, http.StatusOK, "Email deleted", nil)
}

// Send godoc
// @Summary      Send an approved email through the stored SMTP credentials
// @Tags         emails
// @Produce      json
// @Param        id  path  string  true  "Email ID"
// @Success      200  {object}  response.Response{data=domain.EmailItem}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /emails/{id}/send [post]
// @Security     BearerAuth
func (h *EmailHandler) Send(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	item, err := h.emailUC.SendApproved(c, userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email sent", item)
}

// ChatHistory godoc
// @Summary      Get the revision chat transcript for an email
// @Tags         emails
// @Produce      json
// @Param        id  path  string  true  "Email ID"
// @Success      200  {object}  response.Response{data=[]domain.ChatMessage}
// @Router       /emails/{id}/chat [get]
// @Security     BearerAuth
func (h *EmailHandler) ChatHistory(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	response.Success(c, http.StatusOK, "Chat history", h.chatUC.History(userID, c.Param("id")))
}

// ChatMessage godoc
// @Summary      Send a revision chat message
// @Description  One turn may be in flight per email; a concurrent message is rejected with 409
// @Tags         emails
// @Accept       json
// @Produce      json
// @Param        id       path  string                    true  "Email ID"
// @Param        request  body  domain.ChatMessageRequest true  "Message"
// @Success      200  {object}  response.Response{data=domain.ChatMessageResponse}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /emails/{id}/chat [post]
// @Security     BearerAuth
func (h *EmailHandler) ChatMessage(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	resp, err := h.chatUC.SendMessage(c, userID, c.Param("id"), req.Message)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Chat reply", resp)
}

// QuickAction godoc
// @Summary      Apply a canned revision to the draft
// @Tags         emails
// @Accept       json
// @Produce      json
// @Param        id       path  string                    true  "Email ID"
// @Param        request  body  domain.QuickActionRequest true  "Action: formal, casual, personality, shorten, expand, fix_grammar"
// @Success      200  {object}  response.Response{data=domain.ChatMessageResponse}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /emails/{id}/quick-action [post]
// @Security     BearerAuth
func (h *EmailHandler) QuickAction(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.QuickActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	resp, err := h.chatUC.QuickAction(c, userID, c.Param("id"), req.Action)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Quick action applied", resp)
}

// EndChat godoc
// @Summary      Discard the revision chat session
// @Tags         emails
// @Produce      json
// @Param        id  path  string  true  "Email ID"
// @Success      200  {object}  response.Response
// @Router       /emails/{id}/chat [delete]
// @Security     BearerAuth
func (h *EmailHandler) EndChat(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	h.chatUC.EndSession(userID, c.Param("id"))
	response.Success(c, http.StatusOK, "Chat session ended", nil)
}
