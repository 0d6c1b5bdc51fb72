//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/market-prices-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/market-prices-dashboard/internal/config"
	"github.com/couchcryptid/market-prices-dashboard/internal/dashboard"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQueryTopic = "test-market-price-queries"

// TestKafkaPublisherRoundTrip verifies that a query event written by the
// publisher can be consumed back with its key and headers.
func TestKafkaPublisherRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testQueryTopic)

	cfg := &config.Config{KafkaBrokers: []string{broker}, KafkaTopic: testQueryTopic}
	pub := kafka.NewPublisher(cfg, discardLogger())

	event := dashboard.QueryEvent{
		Selection:    dashboard.Selection{Commodity: "Maize", Year: "2023", Month: "June"},
		ResultRows:   2,
		MappableRows: 1,
		MapShown:     true,
		OccurredAt:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, pub.Publish(ctx, event))
	require.NoError(t, pub.Close(), "flush publisher")

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   []string{broker},
		Topic:     testQueryTopic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	defer reader.Close()

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err, "read query event")

	assert.Equal(t, "Maize", string(msg.Key))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "dashboard_query", headers["event_type"])

	var got dashboard.QueryEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, event, got)
}
