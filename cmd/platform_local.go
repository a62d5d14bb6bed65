//go:build !gcloud

package main

import (
	"context"

	"github.com/KasumiMercury/primind-break-scheduler/internal/config"
	"github.com/KasumiMercury/primind-break-scheduler/internal/observability"
	"github.com/KasumiMercury/primind-break-scheduler/internal/observability/logging"
)

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	env := logging.EnvDev
	if cfg.Environment != "" {
		env = logging.Environment(cfg.Environment)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    cfg.ServiceName,
			Version: Version,
		},
		Environment:   env,
		LogLevel:      cfg.LogLevel,
		OTLPEndpoint:  cfg.OTLPEndpoint,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("break-scheduler"),
	})
}
