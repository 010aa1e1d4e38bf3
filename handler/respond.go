package handler

import (
	"log"
	"math"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// requestUserID pulls the authenticated user out of the gin context.
func requestUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return "", false
	}
	return userID.(string), true
}

// writeDomainError maps the analytics error taxonomy onto the envelope:
// validation failures are 400s with field detail, missing resources are 404s,
// anything else is a 500 that was never partially applied.
func writeDomainError(c *gin.Context, err error) {
	if ve, ok := usecase.AsValidationError(err); ok {
		utils.ValidationFailed(c, toFieldErrors(ve.Fields))
		return
	}
	if nf, ok := usecase.AsNotFoundError(err); ok {
		utils.NotFound(c, nf.Error())
		return
	}
	log.Printf("Analytics computation failed: %v", err)
	utils.TrackError("analytics", "computation_failed")
	utils.InternalError(c, "Failed to compute analytics")
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

func toFieldErrors(fields []usecase.FieldError) []utils.FieldError {
	out := make([]utils.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, utils.FieldError{Field: f.Field, Message: f.Message})
	}
	return out
}
