package handlers

import (
	"errors"
	"net/http"

	"lmsplatform/internal/domain"
	"lmsplatform/internal/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// writeError maps domain errors to a status and a plain-text body. Anything
// unrecognised is logged under tag and reported as an internal error.
func writeError(c *gin.Context, log *logger.Logger, tag string, err error) {
	switch {
	case errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrChapterNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.String(http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrMissingRequiredFields):
		c.String(http.StatusUnauthorized, "Missing required fields")
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenRevoked):
		c.String(http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		c.String(http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrPurchaseRequired):
		c.String(http.StatusForbidden, "Purchase required")
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.String(http.StatusConflict, "User already exists")
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrCourseNotPublished):
		c.String(http.StatusBadRequest, err.Error())
	default:
		log.Error(tag, "error", err, "path", c.FullPath())
		c.String(http.StatusInternalServerError, "Internal Error")
	}
}

// pathID parses a uuid route parameter. A malformed id cannot name an
// existing record, so it is reported as not found.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.String(http.StatusNotFound, "Not found")
		return uuid.Nil, false
	}
	return id, true
}
