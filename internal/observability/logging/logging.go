package logging

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module names the component a log line originates from.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Config struct {
	ServiceInfo   ServiceInfo
	Environment   Environment
	Level         slog.Level
	GCPProjectID  string
	DefaultModule Module
}

// NewLogger builds the process logger. Dev gets human readable text, every
// other environment gets JSON. Records logged with a context carrying a
// span are annotated with its trace and span ids.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var base slog.Handler
	if cfg.Environment == EnvDev {
		base = slog.NewTextHandler(w, opts)
	} else {
		base = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(&traceHandler{
		Handler:   base,
		projectID: cfg.GCPProjectID,
	})

	serviceAttrs := []any{
		slog.String("name", cfg.ServiceInfo.Name),
		slog.String("version", cfg.ServiceInfo.Version),
	}
	if cfg.ServiceInfo.Revision != "" {
		serviceAttrs = append(serviceAttrs, slog.String("revision", cfg.ServiceInfo.Revision))
	}

	logger = logger.With(
		slog.Group("service", serviceAttrs...),
		slog.String("env", string(cfg.Environment)),
	)
	if cfg.DefaultModule != "" {
		logger = logger.With(slog.String("module", string(cfg.DefaultModule)))
	}

	return logger
}

type traceHandler struct {
	slog.Handler
	projectID string
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := traceAttrs(ctx, h.projectID); len(attrs) > 0 {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{
		Handler:   h.Handler.WithAttrs(attrs),
		projectID: h.projectID,
	}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{
		Handler:   h.Handler.WithGroup(name),
		projectID: h.projectID,
	}
}

func traceAttrs(ctx context.Context, projectID string) []slog.Attr {
	if ctx == nil {
		return nil
	}

	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}

	attrs := []slog.Attr{
		slog.String("trace_id", sc.TraceID().String()),
		slog.String("span_id", sc.SpanID().String()),
	}
	return append(attrs, gcpTraceAttrs(ctx, projectID)...)
}
