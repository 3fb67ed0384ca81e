package daemon

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ginLogger logs every request through logger. Event streams are logged when
// they open as well as when they close, since they can stay open for hours.
func ginLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// handlers may rewrite the path
		path := c.Request.URL.Path
		method := c.Request.Method
		streaming := strings.HasSuffix(path, "/events")

		if streaming {
			logger.WithField("subscribers", sseHub.Subscribers()+1).Debugf("%s %s: event stream opened", method, path)
		}

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		size := c.Writer.Size()
		if size < 0 {
			size = 0
		}
		status := c.Writer.Status()

		entry := logger.WithFields(logrus.Fields{
			"statusCode": status,
			"latencyMs":  elapsed.Milliseconds(),
			"method":     method,
			"path":       path,
			"bytes":      size,
		})

		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			entry.Warn(errs.String())
			return
		}

		msg := fmt.Sprintf("%s %s %d (%s)", method, path, status, elapsed.Round(time.Millisecond))
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error(msg)
		case status >= http.StatusBadRequest:
			entry.Warn(msg)
		case streaming:
			entry.Debugf("%s: event stream closed", msg)
		default:
			entry.Debug(msg)
		}
	}
}
