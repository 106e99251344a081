package mycontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// CtxTraceContext is a context key for the trace context (used by mylog)
type CtxTraceContext struct{}

type ctxUserKey struct{}

func ContextFromHTTPRequest(r *http.Request) context.Context {
	var trace string

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	traceContext := r.Header.Get("X-Cloud-Trace-Context")
	traceParts := strings.Split(traceContext, "/")

	if len(traceParts) > 0 && len(traceParts[0]) > 0 {
		trace = fmt.Sprintf("projects/%s/traces/%s", projectID, traceParts[0])
	}

	return context.WithValue(r.Context(), CtxTraceContext{}, trace)
}

func TraceFromContext(c context.Context) string {
	trace, ok := c.Value(CtxTraceContext{}).(string)
	if !ok {
		return ""
	}
	return trace
}

// WithUserUID stores the uid of the authenticated user. Set by the auth middleware.
func WithUserUID(c context.Context, userUID string) context.Context {
	return context.WithValue(c, ctxUserKey{}, userUID)
}

func UserUIDFromContext(c context.Context) (string, bool) {
	uid, ok := c.Value(ctxUserKey{}).(string)
	if !ok || uid == "" {
		return "", false
	}
	return uid, true
}
