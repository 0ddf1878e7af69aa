package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"todoapi/internal/logger"
)

// LoggerLocalKey is the key under which the request-scoped log entry is stored.
const LoggerLocalKey = "logger"

// Logger is a middleware that logs each HTTP request as one structured entry.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
//
// The request-scoped entry is also exposed to handlers through LogEntry.
func Logger(l *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		entry := logger.WithRequestID(l.WithContext(c.UserContext()), rid)
		c.Locals(LoggerLocalKey, entry)

		err := c.Next()
		if err != nil {
			// Let the error handler render the response so status reflects it.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  status,
			"latency": float64(time.Since(start).Microseconds()) / 1000,
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			entry.WithFields(fields).Error("request completed")
		case status >= fiber.StatusBadRequest:
			entry.WithFields(fields).Warn("request completed")
		default:
			entry.WithFields(fields).Info("request completed")
		}

		return nil
	}
}

// LogEntry returns the request-scoped entry installed by Logger, or one built
// from the standard logger when Logger is not in the chain.
func LogEntry(c *fiber.Ctx) *logrus.Entry {
	if e, ok := c.Locals(LoggerLocalKey).(*logrus.Entry); ok {
		return e
	}
	rid, _ := c.Locals(RequestIDLocalKey).(string)
	return logger.WithRequestID(logrus.StandardLogger().WithContext(c.UserContext()), rid)
}
