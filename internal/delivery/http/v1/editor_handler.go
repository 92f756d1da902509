package v1

import (
	"net/http"

	"go-outreach-backend/internal/delivery/http/response"
	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type EditorHandler struct {
	editorUC domain.ProfileEditorUsecase
}

func NewEditorHandler(r *gin.RouterGroup, editorUC domain.ProfileEditorUsecase) {
	handler := &EditorHandler{editorUC: editorUC}

	editor := r.Group("/resume/:id/editor")
	{
		editor.GET("", handler.Open)
		editor.PUT("/text", handler.SetText)
		editor.POST("/fields", handler.AddField)
		editor.POST("/fields/remove", handler.RemoveField)
		editor.POST("/array", handler.AddArrayItem)
		editor.POST("/array/remove", handler.RemoveArrayItem)
		editor.POST("/save", handler.Save)
		editor.DELETE("", handler.Discard)
	}
}

// Open godoc
// @Summary      Open the parsed-data editor for a resume
// @Tags         editor
// @Produce      json
// @Param        id  path  string  true  "Resume ID"
// @Success      200  {object}  response.Response{data=domain.ProfileEditorView}
// @Failure      404  {object}  response.Response
// @Router       /resume/{id}/editor [get]
// @Security     BearerAuth
func (h *EditorHandler) Open(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	view, err := h.editorUC.Open(c, userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Editor opened", view)
}

// SetText godoc
// @Summary      Replace the editor's raw text buffer
// @Description  Invalid JSON is kept as typed; the last valid mapping is retained
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        id       path  string                    true  "Resume ID"
// @Param        request  body  domain.EditorTextRequest  true  "Raw text"
// @Success      200  {object}  response.Response{data=domain.ProfileEditorView}
// @Failure      404  {object}  response.Response
// @Router       /resume/{id}/editor/text [put]
// @Security     BearerAuth
func (h *EditorHandler) SetText(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.EditorTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	view, err := h.editorUC.SetRawText(c, userID, c.Param("id"), req.Text)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Text updated", view)
}

// AddField godoc
// @Summary      Add a field to the parsed mapping
// @Description  The name is normalized; adding an existing field is a no-op
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Resume ID"
// @Param        request  body  domain.EditorFieldRequest  true  "Field name"
// @Success      200  {object}  response.Response{data=domain.ProfileEditorView}
// @Failure      400  {object}  response.Response
// @Router       /resume/{id}/editor/fields [post]
// @Security     BearerAuth
func (h *EditorHandler) AddField(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.EditorFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	view, err := h.editorUC.AddField(c, userID, c.Param("id"), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Field added", view)
}

// RemoveField godoc
// @Summary      Remove a field from the parsed mapping
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Resume ID"
// @Param        request  body  domain.EditorFieldRequest  true  "Field name"
// @Success      200  {object}  response.Response{data=domain.ProfileEditorView}
// @Failure      400  {object}  response.Response
// @Router       /resume/{id}/editor/fields/remove [post]
// @Security     BearerAuth
func (h *EditorHandler) RemoveField(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.EditorFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	view, err := h.editorUC.RemoveField(c, userID, c.Param("id"), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Field removed", view)
}

// AddArrayItem godoc
// @Summary      Append a value to an array field
// @Description  A non-array or absent key is replaced with a one-element array
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Resume ID"
// @Param        request  body  domain.EditorArrayAddRequest  true  "Key and value"
// @Success      200  {object}  response.Response{data=domain.ProfileEditorView}
// @Failure      400  {object}  response.Response
// @Router       /resume/{id}/editor/array [post]
// @Security     BearerAuth
func (h *EditorHandler) AddArrayItem(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.EditorArrayAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	view, err := h.editorUC.AddArrayItem(c, userID, c.Param("id"), req.Key, req.Value)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Item added", view)
}

// RemoveArrayItem godoc
// @Summary      Remove a value from an array field by position
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        id       path  string                           true  "Resume ID"
// @Param        request  body  domain.EditorArrayRemoveRequest  true  "Key and index"
// @Success      200  {object}  response.Response{data=domain.ProfileEditorView}
// @Failure      400  {object}  response.Response
// @Router       /resume/{id}/editor/array/remove [post]
// @Security     BearerAuth
func (h *EditorHandler) RemoveArrayItem(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req domain.EditorArrayRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	view, err := h.editorUC.RemoveArrayItem(c, userID, c.Param("id"), req.Key, req.Index)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Item removed", view)
}

// Save godoc
// @Summary      Persist the last valid mapping
// @Tags         editor
// @Produce      json
// @Param        id  path  string  true  "Resume ID"
// @Success      200  {object}  response.Response{data=domain.ProfileEditorView}
// @Failure      404  {object}  response.Response
// @Router       /resume/{id}/editor/save [post]
// @Security     BearerAuth
func (h *EditorHandler) Save(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	view, err := h.editorUC.Save(c, userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile saved", view)
}

// Discard godoc
// @Summary      Drop the editor session without saving
// @Tags         editor
// @Produce      json
// @Param        id  path  string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Router       /resume/{id}/editor [delete]
// @Security     BearerAuth
func (h *EditorHandler) Discard(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	h.editorUC.Discard(userID, c.Param("id"))
	response.Success(c, http.StatusOK, "Editor session discarded", nil)
}
