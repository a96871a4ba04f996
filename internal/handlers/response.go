package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/retirepath-backend/internal/apierr"
)

// respondError writes the error envelope. Known api errors keep their
// status and code; anything else becomes a generic 500.
func respondError(c *gin.Context, err error) {
	if apiErr := apierr.From(err); apiErr != nil {
		body := gin.H{"error": apiErr.Error(), "code": apiErr.Code}
		if apiErr.Raw != "" {
			body["raw"] = apiErr.Raw
		}
		c.JSON(apiErr.Status, body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
