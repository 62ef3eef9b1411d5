// Package blog implements the blog platform feed client.
package blog

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"tour-catalog-service/internal/domain"
	"tour-catalog-service/internal/infra/feed"
)

// Endpoint is the API path for the blog post listing.
const Endpoint = "/api/posts"

// Client implements domain.Feed for the blog platform.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new blog feed client.
func New(cfg feed.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		name:   "blog",
		client: feed.NewRestyClient(cfg),
		cb:     feed.NewCircuitBreaker[*resty.Response]("blog", cfg.CB),
		logger: logger,
	}
}

// Name returns the feed identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves all posts from the blog platform.
func (c *Client) Fetch(ctx context.Context) ([]*domain.Record, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result Response
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&result).
			Get(Endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("blog returned status %d", r.StatusCode())
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("blog fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching from blog: %w", err)
	}

	result := resp.Result().(*Response)
	records := make([]*domain.Record, 0, len(result.Posts))

	for i := range result.Posts {
		post := &result.Posts[i]
		if post.ID == "" || post.Title == "" {
			c.logger.Debug("blog post dropped", zap.String("id", post.ID))

			continue
		}
		records = append(records, post.ToDomain(c.name, len(records)))
	}

	c.logger.Info("blog fetch completed",
		zap.Int("count", len(records)),
	)

	return records, nil
}

// HealthCheck verifies the blog platform is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
