package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

// LogDispatcher only logs invitations. It is used when no broker is configured.
type LogDispatcher struct {
	logger *zap.Logger
}

func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogDispatcher{logger: logger.With(zap.String("component", "log_dispatcher"))}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, entity string, scope batch.Scope, invitations []batch.Invitation) error {
	for _, inv := range invitations {
		d.logger.Info("invitation requested",
			zap.String("entity", entity),
			zap.Int64("enterprise_id", scope.EnterpriseID),
			zap.Int64("entity_id", inv.EntityID),
			zap.String("natural_key", inv.NaturalKey),
			zap.String("recipient", inv.Recipient),
		)
	}
	return nil
}
