package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, ridHeader, string(body))
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, existingID, string(body))
	})

	t.Run("should replace oversized request id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("a", maxRequestIDLen+1))

		resp, err := app.Test(req)
		require.NoError(t, err)

		got := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, got)
		assert.LessOrEqual(t, len(got), maxRequestIDLen)
	})
}

func TestValidRequestID(t *testing.T) {
	assert.True(t, validRequestID("abc-123"))
	assert.False(t, validRequestID(""))
	assert.False(t, validRequestID("has space"))
	assert.False(t, validRequestID(strings.Repeat("x", maxRequestIDLen+1)))
}

func bufferLogger() (*logrus.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.DebugLevel)
	return l, &buf
}

func TestLogger(t *testing.T) {
	l, buf := bufferLogger()
	app := fiber.New()

	app.Use(RequestID())
	app.Use(Logger(l))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))

	assert.Equal(t, resp.Header.Get(RequestIDHeader), logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.Equal(t, "info", logData["level"])
}

func TestLogger_WithoutRequestID(t *testing.T) {
	l, buf := bufferLogger()
	app := fiber.New()
	app.Use(Logger(l))
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	_, ok := logData["request_id"]
	assert.False(t, ok)
}

func TestLogger_ErrorStatus(t *testing.T) {
	l, buf := bufferLogger()
	app := fiber.New()
	app.Use(Logger(l))

	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "down")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, float64(fiber.StatusServiceUnavailable), logData["status"])
	assert.Equal(t, "error", logData["level"])
}

func TestLogEntry(t *testing.T) {
	t.Run("returns entry installed by Logger", func(t *testing.T) {
		l, buf := bufferLogger()
		app := fiber.New()
		app.Use(RequestID())
		app.Use(Logger(l))
		app.Get("/", func(c *fiber.Ctx) error {
			LogEntry(c).Debug("inside handler")
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "rid-1")
		_, err := app.Test(req)
		require.NoError(t, err)

		first, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
		var logData map[string]any
		require.NoError(t, json.Unmarshal(first, &logData))
		assert.Equal(t, "inside handler", logData["msg"])
		assert.Equal(t, "rid-1", logData["request_id"])
	})

	t.Run("falls back to standard logger", func(t *testing.T) {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			assert.NotNil(t, LogEntry(c))
			return c.SendStatus(fiber.StatusOK)
		})

		_, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
	})
}
