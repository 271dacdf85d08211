package logger

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	l := NewIsolatedLogger(path)

	l.Info("EVENTS", "session reset", map[string]interface{}{"session_id": "abc"})
	l.Debug("EVENTS", "below file level", nil)
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"message":"session reset"`)
	assert.Contains(t, lines[0], `"module":"EVENTS"`)
	assert.Contains(t, lines[0], `"session_id":"abc"`)
}

type recordingLogger struct {
	warns  int
	debugs int
}

func (r *recordingLogger) Debug(string, string, map[string]interface{}) { r.debugs++ }
func (r *recordingLogger) Info(string, string, map[string]interface{})  {}
func (r *recordingLogger) Warn(string, string, map[string]interface{})  { r.warns++ }
func (r *recordingLogger) Error(string, string, map[string]interface{}) {}
func (r *recordingLogger) Sync() error                                  { return nil }

func TestRequestLogger(t *testing.T) {
	rec := &recordingLogger{}
	app := fiber.New()
	app.Use(RequestLogger(rec))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/fail", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusInternalServerError) })

	_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, rec.debugs)
	assert.Equal(t, 1, rec.warns)
}

func TestSessionIDLiftedToTopLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewIsolatedLogger(path)

	l.Error("KEUZEHULP", "relay failed", map[string]interface{}{"session_id": "s-1", "error": "timeout"})
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(raw)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(line), "{"))
	assert.Contains(t, line, `"session_id":"s-1","details"`)
	assert.Contains(t, line, `"error_ref":"timeout"`)
}
