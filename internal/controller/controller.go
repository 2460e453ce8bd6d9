package controller

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/quickgrade/quickgrade/internal/apperr"
	"github.com/quickgrade/quickgrade/internal/dto"
)

// respondError renders any error into the shared envelope. Errors outside the
// taxonomy are logged with full detail and surface only as INTERNAL_ERROR.
func respondError(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		e = apperr.Internal()
	}
	c.JSON(e.Status, dto.ErrorResponse{Error: dto.ErrorDetail{
		Code:    string(e.Code),
		Message: e.Message,
		Details: e.Details,
	}})
}

// validationDetails flattens binding failures into field-level strings for the
// details slot of a VALIDATION_ERROR envelope.
func validationDetails(err error) []string {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		details := make([]string, 0, len(verr))
		for _, fe := range verr {
			details = append(details, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
		return details
	}
	return []string{err.Error()}
}
