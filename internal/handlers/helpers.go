package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/salesdesk/daily-report-api/internal/errors"
)

// parseID reads the numeric id path segment. A malformed identifier is a
// not-found state, deliberately distinct from an authorization failure.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}
