package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festflow/festflow-api/internal/api/handler/v1/response"
)

// HandleHealthcheck godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Health
// @Router       /health [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.Health{
		Success:   true,
		Message:   "FestFlow API is running",
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}
