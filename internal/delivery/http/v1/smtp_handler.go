package v1

import (
	"net/http"

	"go-outreach-backend/internal/delivery/http/response"
	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SMTPHandler struct {
	smtpUC   domain.SMTPUsecase
	wizardUC domain.WizardUsecase
}

func NewSMTPHandler(r *gin.RouterGroup, smtpUC domain.SMTPUsecase, wizardUC domain.WizardUsecase) {
	handler := &SMTPHandler{smtpUC: smtpUC, wizardUC: wizardUC}

	smtp := r.Group("/smtp")
	{
		smtp.POST("/credentials", handler.Save)
		smtp.GET("/credentials", handler.Get)
		smtp.DELETE("/credentials", handler.Delete)
		smtp.POST("/test", handler.Test)
		smtp.POST("/send", handler.Send)
	}
}

// Save godoc
// @Summary      Save SMTP credentials
// @Description  Stores the user's SMTP settings with the password encrypted at rest
// @Tags         smtp
// @Accept       json
// @Produce      json
// @Param        request  body  domain.SMTPCredentialsRequest  true  "SMTP credentials"
// @Success      200  {object}  response.Response{data=domain.SMTPConfig}
// @Failure      400  {object}  response.Response
// @Router       /smtp/credentials [post]
// @Security     BearerAuth
func (h *SMTPHandler) Save(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.SMTPCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	cfg, err := h.smtpUC.Save(c, userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	if _, err := h.wizardUC.Refresh(c, userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "SMTP credentials saved", cfg)
}

// Get godoc
// @Summary      Get SMTP credentials without the password
// @Tags         smtp
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.SMTPConfig}
// @Failure      404  {object}  response.Response
// @Router       /smtp/credentials [get]
// @Security     BearerAuth
func (h *SMTPHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	cfg, err := h.smtpUC.Get(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "SMTP credentials", cfg)
}

// Delete godoc
// @Summary      Remove SMTP credentials
// @Tags         smtp
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /smtp/credentials [delete]
// @Security     BearerAuth
func (h *SMTPHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.smtpUC.Delete(c, userID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "SMTP credentials removed", nil)
}

// Test godoc
// @Summary      Test the stored SMTP connection
// @Tags         smtp
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.SMTPTestResponse}
// @Failure      404  {object}  response.Response
// @Router       /smtp/test [post]
// @Security     BearerAuth
func (h *SMTPHandler) Test(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	result, err := h.smtpUC.TestConnection(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "SMTP test finished", result)
}

// Send godoc
// @Summary      Send an email manually
// @Tags         smtp
// @Accept       json
// @Produce      json
// @Param        request  body  domain.SendEmailRequest  true  "Email to send"
// @Success      200  {object}  response.Response{data=domain.SendEmailResponse}
// @Failure      400  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /smtp/send [post]
// @Security     BearerAuth
func (h *SMTPHandler) Send(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	result, err := h.smtpUC.Send(c, userID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email sent", result)
}
