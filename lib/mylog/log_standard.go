package mylog

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

type standardLogger struct {
	componentName string
	log           *logrus.Logger
}

func newStandardLogger(componentName string) Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return standardLogger{
		componentName: componentName,
		log:           log,
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	entry := l.log.WithField("component", l.componentName)
	if traceLabel != "" {
		entry = entry.WithField("label", traceLabel)
	}
	entry.Log(toLevel(severity), fmt.Sprintf(format, a...))
}

func toLevel(severity Severity) logrus.Level {
	switch severity {
	case SeverityDebug:
		return logrus.DebugLevel
	case SeverityWarn:
		return logrus.WarnLevel
	case SeverityError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
