package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var (
	std   = newLogger(os.Stdout)
	outMu sync.RWMutex
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "ts",
			logrus.FieldKeyMsg:  "action",
		},
	})
	return l
}

// SetOutput redirects every subsequent entry, e.g. to a file tee or a test buffer.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	std.SetOutput(w)
}

type forwarder struct{}

func (forwarder) Write(p []byte) (int, error) {
	outMu.RLock()
	defer outMu.RUnlock()
	return std.Out.Write(p)
}

// Writer returns a writer that always goes to the current output, for
// middleware (e.g. the access log) that keeps its writer for the app's lifetime.
func Writer() io.Writer { return forwarder{} }

// SetLevel accepts logrus level names (debug, info, warn, error).
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lvl)
	return nil
}

func entry(c *fiber.Ctx, err error, fields map[string]any) *logrus.Entry {
	e := logrus.NewEntry(std)
	if c != nil {
		e = e.WithFields(logrus.Fields{
			"ip":     c.IP(),
			"method": c.Method(),
			"path":   c.Path(),
			"status": c.Response().StatusCode(),
		})
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e = e.WithField("req_id", rid)
		}
	}
	if err != nil {
		e = e.WithField("err", err.Error())
	}
	if len(fields) > 0 {
		e = e.WithField("fields", fields)
	}
	return e
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, nil, fields).Info(action)
}

// Audit records a state change (create, update, delete).
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, nil, fields).WithField("audit", true).Info(action)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	entry(c, nil, fields).Warn(action)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	entry(c, err, fields).Error(action)
}
