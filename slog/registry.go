package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/meronimo/terraformgpt"
)

// Ensure LoggingRegistryService implements terraformgpt.RegistryService.
var _ terraformgpt.RegistryService = (*LoggingRegistryService)(nil)

// LoggingRegistryService wraps a RegistryService with request logging.
type LoggingRegistryService struct {
	next   terraformgpt.RegistryService
	logger *slog.Logger
}

// NewLoggingRegistryService creates a new LoggingRegistryService.
func NewLoggingRegistryService(next terraformgpt.RegistryService, logger *slog.Logger) *LoggingRegistryService {
	return &LoggingRegistryService{next: next, logger: logger}
}

// ListVersions delegates to the wrapped service and logs the operation.
func (s *LoggingRegistryService) ListVersions(ctx context.Context, namespace, provider string) (versions []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("registry list versions",
			"provider", namespace+"/"+provider,
			"count", len(versions),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListVersions(ctx, namespace, provider)
}

// ListResourceDocs delegates to the wrapped service and logs the operation.
func (s *LoggingRegistryService) ListResourceDocs(ctx context.Context, namespace, provider, version string) (slugs []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("registry list resource docs",
			"provider", namespace+"/"+provider,
			"version", version,
			"count", len(slugs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListResourceDocs(ctx, namespace, provider, version)
}

// ResourceDoc delegates to the wrapped service and logs the operation.
func (s *LoggingRegistryService) ResourceDoc(ctx context.Context, namespace, provider, version, resource string) (doc *terraformgpt.ResourceDoc, err error) {
	defer func(begin time.Time) {
		var bytes int
		if doc != nil {
			bytes = len(doc.Markdown)
		}
		s.logger.Info("registry resource doc",
			"provider", namespace+"/"+provider,
			"version", version,
			"resource", resource,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ResourceDoc(ctx, namespace, provider, version, resource)
}
