package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IReporter publishes turn batches onto the in-process event bus. Delivery to
// the external sink is someone else's job; a failed report never fails a turn.
type IReporter interface {
	Report(ctx context.Context, batch Batch) error
}

type reporter struct {
	topic     string
	publisher message.Publisher
}

// NewReporter builds a reporter publishing on the given watermill topic.
func NewReporter(topic string, publisher message.Publisher) IReporter {
	return &reporter{topic: topic, publisher: publisher}
}

func (r *reporter) Report(ctx context.Context, batch Batch) error {
	if len(batch.Events) == 0 {
		return nil
	}

	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal analytics batch: %w", err)
	}

	msg := message.NewMessage(batch.ID, payload)
	msg.SetContext(ctx)
	return r.publisher.Publish(r.topic, msg)
}
