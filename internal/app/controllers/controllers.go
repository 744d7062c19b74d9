package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniactivity/internal/app/models/dto"
)

// Clock returns the current time. Controllers take one so time-dependent listings can be
// tested.
type Clock func() time.Time

// respondList writes 204 for an empty result, 200 with the items otherwise
func respondList[T any](ctx *gin.Context, items []T, message string) {
	if len(items) == 0 {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items, message))
}
