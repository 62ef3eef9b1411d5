package registry

import (
	"tour-catalog-service/internal/config"
	"tour-catalog-service/internal/domain"
	"tour-catalog-service/internal/infra/feed"
	"tour-catalog-service/internal/infra/feed/blog"
	"tour-catalog-service/internal/infra/feed/cms"

	"go.uber.org/zap"
)

// NewFeeds creates all configured feed clients. Centralizing feed
// construction here keeps cmd/api free of per-feed wiring as feeds are
// added.
func NewFeeds(cfg config.FeedConfig, logger *zap.Logger) []domain.Feed {
	return []domain.Feed{
		cms.New(clientConfig(cfg.CMS), logger),
		blog.New(clientConfig(cfg.Blog), logger),
	}
}

// clientConfig maps one feed's settings onto the shared client config.
func clientConfig(ep config.FeedEndpoint) feed.ClientConfig {
	return feed.ClientConfig{
		BaseURL: ep.BaseURL,
		Timeout: ep.Timeout,
		Retry: feed.RetryConfig{
			MaxAttempts: ep.Retry.MaxAttempts,
			WaitTime:    ep.Retry.WaitTime,
			MaxWaitTime: ep.Retry.MaxWaitTime,
		},
		CB: feed.CBConfig{
			MaxRequests:  ep.CB.MaxRequests,
			Interval:     ep.CB.Interval,
			Timeout:      ep.CB.Timeout,
			FailureRatio: ep.CB.FailureRatio,
		},
	}
}
