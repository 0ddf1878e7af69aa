package logger

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// New builds a JSON logrus logger writing one object per line to w.
// Timestamps are rendered in loc and every entry carries the service name.
func New(service, level string, w io.Writer, loc *time.Location) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if loc == nil {
		loc = time.UTC
	}
	l.AddHook(&contextHook{service: service, loc: loc})
	return l
}

// WithRequestID returns an entry tagged with request_id when one is known.
func WithRequestID(l logrus.FieldLogger, requestID string) *logrus.Entry {
	if requestID == "" {
		return l.WithFields(logrus.Fields{})
	}
	return l.WithField("request_id", requestID)
}

// contextHook stamps service, timezone and trace identifiers on each entry.
type contextHook struct {
	service string
	loc     *time.Location
}

func (h *contextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *contextHook) Fire(e *logrus.Entry) error {
	e.Time = e.Time.In(h.loc)
	if h.service != "" {
		e.Data["service"] = h.service
	}
	if e.Context == nil {
		return nil
	}
	if sc := trace.SpanContextFromContext(e.Context); sc.IsValid() {
		e.Data["trace_id"] = sc.TraceID().String()
		e.Data["span_id"] = sc.SpanID().String()
	}
	return nil
}
