package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"

	"rumorcheck-be/internal/pkg/logger"
	"rumorcheck-be/pkg/analytics"
)

func TestAnalyticsServiceWithoutSink(t *testing.T) {
	// The container wires a nil publisher when the NATS connection fails at
	// startup; a batch arriving then must be dropped, not panic the consumer.
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewAnalyticsService(pubSub, "ANALYTICS_TURN", nil, logger.NewNopLogger()).(*analyticsService)

	batch := analytics.Batch{
		ID:     "batch-1",
		UserID: "user-1",
		State:  "INIT",
		Events: []analytics.Event{{Category: "UserInput", Action: "MessageType", Label: "text"}},
	}
	payload, err := json.Marshal(batch)
	require.NoError(t, err)

	msg := message.NewMessage(batch.ID, payload)
	require.NotPanics(t, func() {
		svc.processMessage(context.Background(), msg)
	})
}
