// Package cms implements the CMS catalog feed client. The CMS exports
// tours and destinations in a single JSON document.
package cms

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"tour-catalog-service/internal/domain"
	"tour-catalog-service/internal/infra/feed"
)

// Endpoint is the API path for the CMS catalog export.
const Endpoint = "/api/catalog"

// Client implements domain.Feed for the CMS.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new CMS feed client.
func New(cfg feed.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		name:   "cms",
		client: feed.NewRestyClient(cfg),
		cb:     feed.NewCircuitBreaker[*resty.Response]("cms", cfg.CB),
		logger: logger,
	}
}

// Name returns the feed identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves the full catalog from the CMS. Tours come before
// destinations and each record's Position preserves its index in the
// export, which is the order listings display in.
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
			return nil, fmt.Errorf("cms returned status %d", r.StatusCode())
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("cms fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching from cms: %w", err)
	}

	result := resp.Result().(*Response)
	records := make([]*domain.Record, 0, len(result.Tours)+len(result.Destinations))

	position := 0
	skipped := 0
	for _, raw := range result.Tours {
		if record := c.normalize(raw, domain.KindTour, position); record != nil {
			records = append(records, record)
			position++
		} else {
			skipped++
		}
	}
	for _, raw := range result.Destinations {
		if record := c.normalize(raw, domain.KindDestination, position); record != nil {
			records = append(records, record)
			position++
		} else {
			skipped++
		}
	}

	c.logger.Info("cms fetch completed",
		zap.Int("count", len(records)),
		zap.Int("skipped", skipped),
	)

	return records, nil
}

// normalize coerces a raw export object and stamps the feed fields.
// Objects with no usable id or title cannot be stored or displayed and
// are dropped.
func (c *Client) normalize(raw map[string]any, kind domain.Kind, position int) *domain.Record {
	record := domain.Normalize(raw)
	if record.ExternalID == "" || record.Title == "" {
		c.logger.Debug("cms record dropped",
			zap.String("kind", string(kind)),
			zap.Any("id", raw["id"]),
		)

		return nil
	}

	record.FeedID = c.name
	record.Kind = kind
	record.Position = position

	return record
}

// HealthCheck verifies the CMS is accessible.
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
