package cms

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tour-catalog-service/internal/domain"
	"tour-catalog-service/internal/infra/feed"
)

const testEndpoint = "https://cms.example.com/api/catalog"

func newTestClient() *Client {
	cfg := feed.ClientConfig{
		BaseURL: "https://cms.example.com",
		Timeout: 5 * time.Second,
		Retry: feed.RetryConfig{
			MaxAttempts: 3,
			WaitTime:    100 * time.Millisecond,
			MaxWaitTime: 500 * time.Millisecond,
		},
		CB: feed.CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	client := New(cfg, zap.NewNop())

	// Activate httpmock for this client's HTTP transport
	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func mockCatalogResponse() Response {
	return Response{
		Tours: []map[string]any{
			{
				"id":           "tour-1",
				"title":        "Kerala Backwaters",
				"route":        "Kochi - Alleppey",
				"location":     "Kerala",
				"locationType": "Domestic",
				"category":     []any{"Honeymoon", "Family"},
				"tags":         []any{"houseboat"},
				"price":        "₹12,500",
				"duration":     "5D/4N",
				"availableDates": []any{
					map[string]any{
						"month": "June",
						"dates": []any{
							map[string]any{"date": "12 Jun", "enabled": true},
						},
					},
				},
				"gallery": []any{
					map[string]any{"srcSetWebp": "kerala.webp", "src": "kerala.jpg"},
				},
			},
			{
				// Legacy shape: numeric id and price, delimited categories
				"id":       42,
				"title":    "Goa Getaway",
				"price":    8999,
				"duration": "3 Days",
				"category": "Beach, Party",
			},
		},
		Destinations: []map[string]any{
			{
				"id":       "dest-1",
				"title":    "Ladakh",
				"location": "Leh",
				"duration": "7D/6N",
			},
		},
		Meta: Meta{Total: 3},
	}
}

func TestCMS_Fetch_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, mockCatalogResponse()))

	client := newTestClient()
	records, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 3)

	// Fully-specified tour
	first := records[0]
	assert.Equal(t, "cms", first.FeedID)
	assert.Equal(t, "tour-1", first.ExternalID)
	assert.Equal(t, domain.KindTour, first.Kind)
	assert.Equal(t, "Kerala Backwaters", first.Title)
	assert.Equal(t, []string{"Honeymoon", "Family"}, first.Categories)
	assert.Equal(t, "₹12,500", first.Price)
	assert.Equal(t, 5, first.DurationDays())
	assert.True(t, first.HasEnabledDeparture())
	require.Len(t, first.Gallery, 1)
	assert.Equal(t, "kerala.webp", first.Gallery[0].SrcSetWebp)

	// Legacy shape survives normalization
	second := records[1]
	assert.Equal(t, "42", second.ExternalID)
	assert.Equal(t, "8999", second.Price)
	assert.Equal(t, []string{"Beach", "Party"}, second.Categories)
	assert.Equal(t, 3, second.DurationDays())

	// Destinations follow tours and keep feed order
	third := records[2]
	assert.Equal(t, domain.KindDestination, third.Kind)
	assert.Equal(t, "dest-1", third.ExternalID)

	for i, record := range records {
		assert.Equal(t, i, record.Position, "Position should be the export index")
	}
}

func TestCMS_Fetch_DropsUnusableRecords(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	resp := Response{
		Tours: []map[string]any{
			{"id": "tour-1", "title": "Kerala Backwaters"},
			{"id": "tour-2"},                   // no title
			{"title": "Orphan"},                // no id
			{"id": "tour-3", "title": 7},       // wrong-typed title
			{"id": "tour-4", "title": "Valid"}, // keeps position 1
		},
	}

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, resp))

	client := newTestClient()
	records, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "tour-1", records[0].ExternalID)
	assert.Equal(t, "tour-4", records[1].ExternalID)
	assert.Equal(t, 1, records[1].Position, "Dropped records should not leave position gaps")
}

func TestCMS_Fetch_EmptyResponse(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewJsonResponderOrPanic(200, Response{}))

	client := newTestClient()
	records, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCMS_Fetch_HTTPError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"404 Not Found", 404},
		{"500 Internal Server Error", 500},
		{"503 Service Unavailable", 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder("GET", testEndpoint,
				httpmock.NewStringResponder(tt.statusCode, "Error"))

			client := newTestClient()
			records, err := client.Fetch(context.Background())

			require.Error(t, err)
			assert.Nil(t, records)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tt.statusCode))
		})
	}
}

func TestCMS_Fetch_NetworkError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewErrorResponder(fmt.Errorf("network error: connection refused")))

	client := newTestClient()
	records, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.Nil(t, records)
	assert.Contains(t, err.Error(), "fetching from cms")
}

func TestCMS_CircuitBreaker_Opens(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testEndpoint,
		httpmock.NewStringResponder(500, "Internal Server Error"))

	client := newTestClient()

	// Breaker needs at least 3 requests at >= 60% failure to trip
	for i := 0; i < 5; i++ {
		_, err := client.Fetch(context.Background())
		require.Error(t, err)
	}

	// Breaker is open now, next call should fail fast without HTTP
	start := time.Now()
	_, err := client.Fetch(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, elapsed.Milliseconds(), int64(100))
}

func TestCMS_Retry_RecoverAfterTransientFailure(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	callCount := 0
	httpmock.RegisterResponder("GET", testEndpoint,
		func(_ *http.Request) (*http.Response, error) {
			callCount++
			if callCount < 3 {
				return httpmock.NewStringResponse(500, "Server Error"), nil
			}

			return httpmock.NewJsonResponse(200, mockCatalogResponse())
		})

	client := newTestClient()
	records, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 3, callCount, "Should retry twice and succeed on 3rd attempt")
}

func TestCMS_Name(t *testing.T) {
	client := newTestClient()
	defer httpmock.DeactivateAndReset()

	assert.Equal(t, "cms", client.Name())
}
