package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

var internalError = ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}

// ErrorHandler turns errors attached with c.Error and recovered panics into a
// generic 500 JSON body. The underlying detail is only logged.
func ErrorHandler(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithFields(logrus.Fields{
					"panic": rec,
					"path":  c.Request.URL.Path,
				}).Error("Recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, internalError)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			log.WithError(e.Err).WithField("path", c.Request.URL.Path).Error("Request failed")
		}
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, internalError)
		}
	}
}
