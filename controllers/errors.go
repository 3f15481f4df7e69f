package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/community-board/api-go/apperrors"
	"github.com/gin-gonic/gin"
)

func statusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindNoPermission:
		return http.StatusForbidden
	case apperrors.KindDuplicated:
		return http.StatusConflict
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an ErrorResponse. Internal failures are logged
// here and answered without detail.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("unclassified", err)
	}

	if appErr.Kind == apperrors.KindInternal {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			ErrorCode: appErr.Code,
			Message:   "internal server error",
		})
		return
	}

	resp := ErrorResponse{ErrorCode: appErr.Code, Message: appErr.Message}
	if appErr.Field != "" {
		resp.Errors = map[string]string{appErr.Field: appErr.Message}
	}
	c.JSON(statusOf(appErr.Kind), resp)
}
