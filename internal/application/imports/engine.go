package imports

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

// EngineConfig binds an entity schema to its persistence. Resolver and
// Invite are optional.
type EngineConfig[T any] struct {
	Schema   batch.Schema[T]
	Fields   []batch.Field[T]
	Store    batch.Store[T]
	Resolver batch.Resolver[T]
	Invite   func(T) (recipient string, ok bool)
}

// Engine parses, validates and reconciles uploads of one entity type.
type Engine[T any] struct {
	reader SheetReader
	cfg    EngineConfig[T]
	logger *zap.Logger
}

func NewEngine[T any](reader SheetReader, cfg EngineConfig[T], logger *zap.Logger) *Engine[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine[T]{
		reader: reader,
		cfg:    cfg,
		logger: logger.With(zap.String("component", "import_engine"), zap.String("entity", cfg.Schema.Entity)),
	}
}

func (e *Engine[T]) Entity() string {
	return e.cfg.Schema.Entity
}

func (e *Engine[T]) Columns() []string {
	return append([]string(nil), e.cfg.Schema.Columns...)
}

// Parse decodes raw and validates every row. It never touches the store.
func (e *Engine[T]) Parse(raw []byte) batch.Parsed[T] {
	if len(raw) == 0 {
		return batch.FileFailure[T](batch.FileEmpty())
	}
	sheet, err := e.reader.Read(raw)
	if err != nil {
		return batch.FileFailure[T](batch.FileUnreadable(err))
	}
	return batch.Parse(e.cfg.Schema, sheet)
}

func (e *Engine[T]) Validate(raw []byte) batch.Report {
	return e.Parse(raw).Report
}

// Reconcile parses raw and applies every valid record to the store. A
// file-level error returns an empty result and no error. The only error
// returned is batch.ErrStoreUnavailable; other store failures become row
// errors in the result.
func (e *Engine[T]) Reconcile(ctx context.Context, raw []byte, scope batch.Scope) (batch.Report, batch.Result, error) {
	parsed := e.Parse(raw)
	if parsed.Report.FileError != nil {
		return parsed.Report, (&batch.ResultBuilder{}).Result(), nil
	}
	result, err := e.ReconcileRecords(ctx, parsed.Records, scope)
	return parsed.Report, result, err
}

// ReconcileRecords decides and applies one disposition per record, strictly
// in order. Once started, a batch is not interrupted by ctx cancellation.
func (e *Engine[T]) ReconcileRecords(ctx context.Context, records []batch.Record[T], scope batch.Scope) (batch.Result, error) {
	var b batch.ResultBuilder
	if e.cfg.Store == nil {
		return b.Result(), batch.ErrStoreUnavailable
	}
	ctx = context.WithoutCancel(ctx)

	for _, rec := range records {
		err := e.reconcileRecord(ctx, scope, rec, &b)
		if err == nil {
			continue
		}
		if errors.Is(err, batch.ErrStoreUnavailable) {
			e.logger.Error("store unavailable, aborting batch",
				zap.Int64("enterprise_id", scope.EnterpriseID),
				zap.Int("row", rec.RowNumber),
				zap.Error(err),
			)
			return b.Result(), err
		}
		e.logger.Warn("row not persisted",
			zap.Int64("enterprise_id", scope.EnterpriseID),
			zap.Int("row", rec.RowNumber),
			zap.String("natural_key", rec.Key),
			zap.Error(err),
		)
		b.Fail(rec.RowNumber, rec.Key, err)
	}

	return b.Result(), nil
}

func (e *Engine[T]) reconcileRecord(ctx context.Context, scope batch.Scope, rec batch.Record[T], b *batch.ResultBuilder) error {
	value := rec.Value
	if e.cfg.Resolver != nil {
		resolved, err := e.cfg.Resolver.Resolve(ctx, scope, value)
		if err != nil {
			return err
		}
		value = resolved
	}

	disposition, id, err := e.apply(ctx, scope, value)
	if err != nil {
		return err
	}
	b.Record(disposition)

	if e.cfg.Invite == nil || (disposition != batch.Created && disposition != batch.Reactivated) {
		return nil
	}
	if recipient, ok := e.cfg.Invite(value); ok {
		b.Invite(batch.Invitation{RowNumber: rec.RowNumber, EntityID: id, NaturalKey: rec.Key, Recipient: recipient})
	}
	return nil
}

func (e *Engine[T]) apply(ctx context.Context, scope batch.Scope, value T) (batch.Disposition, int64, error) {
	store := e.cfg.Store

	existing, err := store.FindByNaturalKey(ctx, scope, value)
	if err != nil {
		return "", 0, err
	}

	if existing == nil {
		id, err := store.Insert(ctx, scope, value)
		if err == nil {
			return batch.Created, id, nil
		}
		if !errors.Is(err, batch.ErrDuplicateKey) {
			return "", 0, err
		}

		// Lost a race with a concurrent writer; continue as an existing entity.
		existing, err = store.FindByNaturalKey(ctx, scope, value)
		if err != nil {
			return "", 0, err
		}
		if existing == nil {
			return "", 0, fmt.Errorf("%w: key conflicted on insert but cannot be read back", batch.ErrDuplicateKey)
		}
	}

	switch {
	case existing.Terminal:
		return batch.Skipped, existing.ID, nil
	case !existing.Active:
		changes := batch.Changes{Fields: batch.Values(e.cfg.Fields, value), Activate: true}
		if err := store.Update(ctx, scope, existing.ID, changes); err != nil {
			return "", 0, err
		}
		return batch.Reactivated, existing.ID, nil
	}

	changed := batch.Diff(e.cfg.Fields, existing.Value, value)
	if len(changed) == 0 {
		return batch.Skipped, existing.ID, nil
	}
	if err := store.Update(ctx, scope, existing.ID, batch.Changes{Fields: changed}); err != nil {
		return "", 0, err
	}
	return batch.Updated, existing.ID, nil
}
