//go:build !gcloud

package logging

import (
	"context"
	"log/slog"
)

// gcpTraceAttrs adds nothing outside Cloud Logging; trace_id and span_id
// are already attached by traceHandler.
func gcpTraceAttrs(_ context.Context, _ string) []slog.Attr {
	return nil
}
