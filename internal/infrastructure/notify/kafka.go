// Package notify hands invitations requested by a committed batch to the
// delivery pipeline.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

// messageWriter is the part of *kafka.Writer the dispatcher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// InvitationEvent is the payload published per invitation.
type InvitationEvent struct {
	Entity       string    `json:"entity"`
	EnterpriseID int64     `json:"enterprise_id"`
	ActorID      int64     `json:"actor_id"`
	EntityID     int64     `json:"entity_id"`
	NaturalKey   string    `json:"natural_key"`
	RowNumber    int       `json:"row_number"`
	Recipient    string    `json:"recipient"`
	RequestedAt  time.Time `json:"requested_at"`
}

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	// FailureThreshold is the number of consecutive failed publishes that
	// opens the breaker.
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// KafkaDispatcher publishes one message per invitation, keyed by recipient.
// Publishing goes through a circuit breaker so a broker outage fails fast.
type KafkaDispatcher struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
	now     func() time.Time
}

func NewKafkaDispatcher(cfg KafkaConfig, logger *zap.Logger) *KafkaDispatcher {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: cfg.WriteTimeout,
	}
	return newKafkaDispatcher(writer, cfg, logger)
}

func newKafkaDispatcher(writer messageWriter, cfg KafkaConfig, logger *zap.Logger) *KafkaDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	logger = logger.With(zap.String("component", "kafka_dispatcher"), zap.String("topic", cfg.Topic))

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "invitation-dispatch",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &KafkaDispatcher{writer: writer, breaker: breaker, logger: logger, now: time.Now}
}

func (d *KafkaDispatcher) Dispatch(ctx context.Context, entity string, scope batch.Scope, invitations []batch.Invitation) error {
	if len(invitations) == 0 {
		return nil
	}

	requestedAt := d.now().UTC()
	msgs := make([]kafka.Message, 0, len(invitations))
	for _, inv := range invitations {
		payload, err := json.Marshal(InvitationEvent{
			Entity:       entity,
			EnterpriseID: scope.EnterpriseID,
			ActorID:      scope.ActorID,
			EntityID:     inv.EntityID,
			NaturalKey:   inv.NaturalKey,
			RowNumber:    inv.RowNumber,
			Recipient:    inv.Recipient,
			RequestedAt:  requestedAt,
		})
		if err != nil {
			return fmt.Errorf("marshal invitation for row %d: %w", inv.RowNumber, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(inv.Recipient),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "entity", Value: []byte(entity)},
				{Key: "enterprise_id", Value: []byte(strconv.FormatInt(scope.EnterpriseID, 10))},
			},
		})
	}

	_, err := d.breaker.Execute(func() (interface{}, error) {
		return nil, d.writer.WriteMessages(ctx, msgs...)
	})
	if err != nil {
		return fmt.Errorf("publish %d invitations: %w", len(msgs), err)
	}

	d.logger.Debug("invitations published", zap.String("entity", entity), zap.Int("count", len(msgs)))
	return nil
}

func (d *KafkaDispatcher) Close() error {
	return d.writer.Close()
}
