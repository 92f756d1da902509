package v1

import (
	"net/http"
	"strconv"

	"go-outreach-backend/internal/delivery/http/response"
	"go-outreach-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type LogsHandler struct {
	activityUC domain.ActivityUsecase
}

func NewLogsHandler(r *gin.RouterGroup, activityUC domain.ActivityUsecase) {
	handler := &LogsHandler{activityUC: activityUC}

	r.GET("/logs", handler.List)
}

// List godoc
// @Summary      List recent activity logs
// @Tags         logs
// @Produce      json
// @Param        level   query  string  false  "Level filter: info, warning, error"
// @Param        action  query  string  false  "Action filter, e.g. resume_uploaded"
// @Param        limit   query  int     false  "Max entries, default 100"
// @Success      200  {object}  response.Response{data=domain.LogsResponse}
// @Failure      400  {object}  response.Response
// @Router       /logs [get]
// @Security     BearerAuth
func (h *LogsHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	filter := domain.LogFilter{
		Level:  domain.LogLevel(c.Query("level")),
		Action: c.Query("action"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err == nil {
			filter.Limit = limit
		}
	}

	logs, err := h.activityUC.List(c, userID, filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Activity logs", logs)
}
