package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenka/payments/internal/models"
)

type fakeProducer struct {
	err     error
	topic   string
	body    []byte
	stopped bool
}

func (f *fakeProducer) Publish(topic string, body []byte) error {
	f.topic = topic
	f.body = body
	return f.err
}

func (f *fakeProducer) Stop() {
	f.stopped = true
}

func TestNSQPublisher_PublishSettlement(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	amount := decimal.NewFromInt(99)

	t.Run("publishes event as JSON", func(t *testing.T) {
		fake := &fakeProducer{}
		p := newNSQPublisher(fake, "payments.settled", logger)

		err := p.PublishSettlement(context.Background(), models.WebhookEvent{
			Event: models.EventPaymentSuccess,
			Data: models.WebhookEventData{
				TransactionRequestID: "TRX-1",
				Amount:               &amount,
				Receipt:              "QKX123",
				Phone:                "254712345678",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "payments.settled", fake.topic)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(fake.body, &decoded))
		assert.Equal(t, "payment.success", decoded["event"])
		data := decoded["data"].(map[string]any)
		assert.Equal(t, "TRX-1", data["transaction_request_id"])
		assert.Equal(t, "QKX123", data["receipt"])
	})

	t.Run("wraps producer errors", func(t *testing.T) {
		fake := &fakeProducer{err: errors.New("connection refused")}
		p := newNSQPublisher(fake, "payments.settled", logger)

		err := p.PublishSettlement(context.Background(), models.WebhookEvent{Event: models.EventPaymentFailed})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "payments.settled")
	})

	t.Run("stop", func(t *testing.T) {
		fake := &fakeProducer{}
		newNSQPublisher(fake, "payments.settled", logger).Stop()
		assert.True(t, fake.stopped)
	})
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.PublishSettlement(context.Background(), models.WebhookEvent{}))
	p.Stop()
}
