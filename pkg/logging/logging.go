package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	dashboard "github.com/goliatone/go-shopping-dashboard/components/dashboard"
)

// RequestIDKey is the field carrying the viewer request id.
const RequestIDKey = "request_id"

// Fields aliases logrus fields.
type Fields = logrus.Fields

// Options configures New.
type Options struct {
	Level    string
	File     string
	NoColors bool
	Output   io.Writer
}

// New builds a logrus logger with the nested formatter. When File is set the
// output is also written to a rotating file.
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()

	level := opts.Level
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	logger.SetLevel(parsed)

	logger.SetFormatter(&formatter.Formatter{
		NoColors:        opts.NoColors,
		TimestampFormat: "02 Jan 06 - 15:04:05",
		HideKeys:        false,
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, s[len(s)-1])
		},
	})
	logger.SetReportCaller(true)

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	writers := []io.Writer{out}
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}
	logger.SetOutput(io.MultiWriter(writers...))
	return logger, nil
}

// Telemetry writes dashboard events to a logrus logger.
type Telemetry struct {
	logger logrus.FieldLogger
}

var _ dashboard.Telemetry = (*Telemetry)(nil)

// NewTelemetry adapts a logger into a dashboard telemetry sink.
func NewTelemetry(logger logrus.FieldLogger) *Telemetry {
	return &Telemetry{logger: logger}
}

// Record logs the event with its payload. Error events log at warn level.
func (t *Telemetry) Record(ctx context.Context, event string, payload map[string]any) {
	if t == nil || t.logger == nil {
		return
	}
	fields := Fields{"event": event}
	for k, v := range payload {
		fields[k] = v
	}
	if id := dashboard.RequestIDFromContext(ctx); id != "" {
		fields[RequestIDKey] = id
	}
	entry := t.logger.WithFields(fields)
	switch {
	case strings.HasSuffix(event, ".error"), strings.HasSuffix(event, ".degraded"):
		entry.Warn(event)
	case strings.HasSuffix(event, ".unauthorized"):
		entry.Info(event)
	default:
		entry.Debug(event)
	}
}
