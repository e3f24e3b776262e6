package controllers

import (
	"errors"
	"net/http"

	"github.com/acquisitions/users-api/internal/models"
	"github.com/acquisitions/users-api/internal/validation"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondValidationError renders a structured validation failure as a 400
// with one message per violated field.
func respondValidationError(ctx *gin.Context, err error) {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, verrs.Error(), verrs.Details()))
		return
	}
	ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, err.Error()))
}

// respondInternalError is the catch-all boundary: full detail is logged
// server-side, the client only sees a generic message.
func respondInternalError(ctx *gin.Context, logMessage string, err error) {
	log.WithError(err).Error(logMessage)
	ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Internal server error"))
}
