package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

type fakeWriter struct {
	batches [][]kafka.Message
	err     error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, msgs)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

var invitations = []batch.Invitation{
	{RowNumber: 2, EntityID: 31, NaturalKey: "P1/TP-1", Recipient: "ro@acme.test"},
	{RowNumber: 4, EntityID: 32, NaturalKey: "P2/TP-1", Recipient: "ro@beta.test"},
}

func TestKafkaDispatcherPublishesOneMessagePerInvitation(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	d := newKafkaDispatcher(w, KafkaConfig{Topic: "supplier-invitations"}, zap.NewNop())
	d.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }

	err := d.Dispatch(context.Background(), "assignments", batch.Scope{EnterpriseID: 7, ActorID: 42}, invitations)

	require.NoError(t, err)
	require.Len(t, w.batches, 1)
	msgs := w.batches[0]
	require.Len(t, msgs, 2)
	require.Equal(t, []byte("ro@acme.test"), msgs[0].Key)

	var event InvitationEvent
	require.NoError(t, json.Unmarshal(msgs[1].Value, &event))
	require.Equal(t, InvitationEvent{
		Entity:       "assignments",
		EnterpriseID: 7,
		ActorID:      42,
		EntityID:     32,
		NaturalKey:   "P2/TP-1",
		RowNumber:    4,
		Recipient:    "ro@beta.test",
		RequestedAt:  time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC),
	}, event)
}

func TestKafkaDispatcherNothingToSend(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	d := newKafkaDispatcher(w, KafkaConfig{Topic: "t"}, nil)

	require.NoError(t, d.Dispatch(context.Background(), "assignments", batch.Scope{}, nil))
	require.Empty(t, w.batches)
}

func TestKafkaDispatcherOpensBreaker(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{err: errors.New("kafka: leader not available")}
	d := newKafkaDispatcher(w, KafkaConfig{Topic: "t", FailureThreshold: 2, OpenTimeout: time.Minute}, nil)
	ctx := context.Background()

	require.ErrorContains(t, d.Dispatch(ctx, "assignments", batch.Scope{}, invitations), "leader not available")
	require.Error(t, d.Dispatch(ctx, "assignments", batch.Scope{}, invitations))

	w.err = nil
	err := d.Dispatch(ctx, "assignments", batch.Scope{}, invitations)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	require.Empty(t, w.batches)
}

func TestLogDispatcher(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	d := NewLogDispatcher(zap.New(core))

	require.NoError(t, d.Dispatch(context.Background(), "assignments", batch.Scope{EnterpriseID: 7}, invitations))
	require.Equal(t, 2, logs.FilterMessage("invitation requested").Len())
}
