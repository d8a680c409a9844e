package utils

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type errorLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	status := w.gc.Writer.Status()
	if status >= 400 {
		log.Printf("[DEBUG ERROR]: Request %s, Status %d, Body: %s", w.gc.GetString(requestIDHeader), status, string(b))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware tags each request with an id and logs error response
// bodies. Doesn't work with GZIP
func ErrorLogMiddleware(c *gin.Context) {
	requestID := uuid.NewString()
	c.Set(requestIDHeader, requestID)
	c.Header(requestIDHeader, requestID)
	blw := &errorLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Writer = blw
	c.Next()
}
