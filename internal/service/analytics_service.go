package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"rumorcheck-be/internal/pkg/logger"
	"rumorcheck-be/pkg/analytics"
	natspub "rumorcheck-be/pkg/nats"
)

type IAnalyticsService interface {
	// Consume starts draining turn batches off the in-process bus and
	// forwarding them to the NATS sink. It returns once the subscription is
	// set up; processing continues in the background until ctx is canceled.
	Consume(ctx context.Context) error
}

type analyticsService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	publisher *natspub.Publisher
	logger    logger.ILogger
}

func NewAnalyticsService(
	pubSub *gochannel.GoChannel,
	topicName string,
	publisher *natspub.Publisher,
	log logger.ILogger,
) IAnalyticsService {
	return &analyticsService{
		pubSub:    pubSub,
		topicName: topicName,
		publisher: publisher,
		logger:    log,
	}
}

func (s *analyticsService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *analyticsService) processMessage(ctx context.Context, msg *message.Message) {
	if s.publisher == nil {
		// The container starts without a sink when NATS is unreachable;
		// drain the bus instead of crashing the consumer.
		s.logger.Warn("analytics", "no sink connected, dropping batch", map[string]interface{}{
			"messageId": msg.UUID,
		})
		msg.Ack()
		return
	}

	var batch analytics.Batch
	if err := json.Unmarshal(msg.Payload, &batch); err != nil {
		s.logger.Error("analytics", "failed to unmarshal batch, dropping", map[string]interface{}{
			"messageId": msg.UUID,
			"error":     err.Error(),
		})
		// Ack malformed messages so they don't retry forever.
		msg.Ack()
		return
	}

	if err := s.publisher.Publish(ctx, batch); err != nil {
		// Analytics are best-effort: log and drop rather than block the bus.
		s.logger.Warn("analytics", "failed to forward batch to sink", map[string]interface{}{
			"userId": batch.UserID,
			"state":  batch.State,
			"error":  err.Error(),
		})
		msg.Ack()
		return
	}

	s.logger.Debug("analytics", "batch forwarded", map[string]interface{}{
		"userId": batch.UserID,
		"state":  batch.State,
		"events": len(batch.Events),
	})
	msg.Ack()
}
