// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/middleware"
)

// parseIDParam reads a positive int64 path parameter. On failure it writes a
// 400 naming the entity and returns false.
func parseIDParam(ctx *gin.Context, name, entity string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid "+entity+" ID", "path parameter "+name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

// principal returns the caller, or nil on routes where authentication is optional
func principal(ctx *gin.Context) models.Principal {
	p, _ := middleware.GetPrincipal(ctx)
	return p
}
