package v1

import (
	"io"
	"net/http"

	"go-outreach-backend/internal/delivery/http/response"
	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
	wizardUC domain.WizardUsecase
}

func NewResumeHandler(r *gin.RouterGroup, resumeUC domain.ResumeUsecase, wizardUC domain.WizardUsecase, uploadLimiter, aiLimiter gin.HandlerFunc) {
	handler := &ResumeHandler{resumeUC: resumeUC, wizardUC: wizardUC}

	resumes := r.Group("/resume")
	{
		resumes.POST("/upload", uploadLimiter, handler.Upload)
		resumes.GET("/current", handler.GetCurrent)
		resumes.GET("", handler.List)
		resumes.POST("/:id/parse", aiLimiter, handler.Parse)
		resumes.GET("/:id/download", handler.Download)
	}
}

// Upload godoc
// @Summary      Upload a resume file
// @Description  Accepts a PDF or plain text resume, stores it and extracts its text
// @Tags         resume
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Resume file"
// @Success      201  {object}  response.Response{data=domain.ResumeUploadResponse}
// @Failure      400  {object}  response.Response
// @Router       /resume/upload [post]
// @Security     BearerAuth
func (h *ResumeHandler) Upload(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("Missing file field"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Cannot read uploaded file"))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.resumeUC.Upload(c, userID, fileHeader.Filename, contentType, content)
	if err != nil {
		c.Error(err)
		return
	}

	// Completing action: let the wizard pick up the new frontier.
	if _, err := h.wizardUC.Refresh(c, userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Resume uploaded", result)
}

// GetCurrent godoc
// @Summary      Get the latest resume
// @Tags         resume
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ResumeRecord}
// @Failure      404  {object}  response.Response
// @Router       /resume/current [get]
// @Security     BearerAuth
func (h *ResumeHandler) GetCurrent(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	record, err := h.resumeUC.GetCurrent(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current resume", record)
}

// List godoc
// @Summary      List uploaded resumes
// @Tags         resume
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ResumeRecord}
// @Router       /resume [get]
// @Security     BearerAuth
func (h *ResumeHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	records, err := h.resumeUC.List(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resumes", records)
}

// Parse godoc
// @Summary      Parse a resume into structured data
// @Tags         resume
// @Produce      json
// @Param        id  path  string  true  "Resume ID"
// @Success      200  {object}  response.Response{data=domain.ResumeParseResponse}
// @Failure      404  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /resume/{id}/parse [post]
// @Security     BearerAuth
func (h *ResumeHandler) Parse(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	result, err := h.resumeUC.Parse(c, userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	if _, err := h.wizardUC.Refresh(c, userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume parsed", result)
}

// Download godoc
// @Summary      Download the original resume file
// @Tags         resume
// @Produce      octet-stream
// @Param        id  path  string  true  "Resume ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  response.Response
// @Router       /resume/{id}/download [get]
// @Security     BearerAuth
func (h *ResumeHandler) Download(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	content, contentType, fileName, err := h.resumeUC.Download(c, userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, contentType, content)
}
