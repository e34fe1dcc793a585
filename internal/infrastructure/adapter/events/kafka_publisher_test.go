package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	"github.com/localhy/credit-ledger/internal/infrastructure/adapter/logger"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := &KafkaPublisher{writer: writer, topic: "ledger.changes", logger: logger.NewNoopLogger()}

	require.NoError(t, p.Publish(context.Background(), balanceEvent("u1", 25)))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "u1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "balance_changed", string(msg.Headers[0].Value))

	var decoded entity.FeedEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, int64(25), decoded.Balance.CashCredits)

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WriteFailure(t *testing.T) {
	boom := errors.New("broker down")
	p := &KafkaPublisher{writer: &fakeWriter{err: boom}, topic: "ledger.changes", logger: logger.NewNoopLogger()}

	assert.ErrorIs(t, p.Publish(context.Background(), balanceEvent("u1", 1)), boom)
}
