package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/gif-overlay/internal/entity"
)

// Recovery turns a panic into a 500 response carrying message and the
// recovered value as details.
func Recovery(message string) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"panic": recovered,
		}).Error("Recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   message,
			Details: fmt.Sprint(recovered),
		})
	})
}
