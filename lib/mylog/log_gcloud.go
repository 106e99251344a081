package mylog

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/MarcGrol/shopcart/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGcloudLogger
	}
}

type structuredLogger struct {
	componentName string
	log           *logrus.Logger
}

func newGcloudLogger(componentName string) Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.DebugLevel)
	// A timestamp is added when shipping logs to Cloud Logging.
	log.SetFormatter(&logrus.JSONFormatter{
		DisableTimestamp: true,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "message",
		},
	})

	return structuredLogger{
		componentName: componentName,
		log:           log,
	}
}

func (l structuredLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	fields := logrus.Fields{
		"component": l.componentName,
		"severity":  string(severity),
	}
	if traceLabel != "" {
		fields["logging.googleapis.com/labels"] = map[string]string{"aggregate": traceLabel}
	}
	if trace := mycontext.TraceFromContext(ctx); trace != "" {
		fields["logging.googleapis.com/trace"] = trace
	}
	l.log.WithFields(fields).Log(toLevel(severity), l.componentName+":"+fmt.Sprintf(format, a...))
}
