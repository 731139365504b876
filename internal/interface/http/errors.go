package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oksasatya/votiy-api/internal/application"
	"github.com/oksasatya/votiy-api/internal/interface/middleware"
	"github.com/oksasatya/votiy-api/pkg/response"
	"github.com/oksasatya/votiy-api/pkg/validation"
)

func statusOf(kind application.ErrorKind) int {
	switch kind {
	case application.KindValidation:
		return http.StatusBadRequest
	case application.KindUnauthorized:
		return http.StatusUnauthorized
	case application.KindForbidden:
		return http.StatusForbidden
	case application.KindNotFound:
		return http.StatusNotFound
	case application.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a service error in the shared error shape.
func respondError(c *gin.Context, err error) {
	var ae *application.Error
	if errors.As(err, &ae) {
		response.Error(c, statusOf(ae.Kind), ae.Message, ae.Details)
		return
	}
	response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
}

func respondBindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
}

// int64Param parses a numeric path parameter, answering 400 when it is not one.
func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

// userIDParam checks a user id path parameter is a UUID.
func userIDParam(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid "+name, nil)
		return "", false
	}
	return id, true
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}
