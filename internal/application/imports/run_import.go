package imports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

type RunImportInput struct {
	Entity       string
	EnterpriseID int64
	ActorID      int64
	FileName     string
	Content      []byte
}

type RunImportOutput struct {
	RunID    string          `json:"runId"`
	Entity   string          `json:"entity"`
	Status   batch.RunStatus `json:"status"`
	Report   batch.Report    `json:"report"`
	Result   batch.Result    `json:"result"`
	LockLost bool            `json:"lockLost,omitempty"`
}

// RunImport validates an upload and reconciles its valid rows for one
// enterprise, then records the run and hands requested invitations to the
// dispatcher.
type RunImport interface {
	Execute(ctx context.Context, in RunImportInput) (RunImportOutput, error)
}

type runImport struct {
	registry   *Registry
	locker     Locker
	dispatcher InvitationDispatcher
	runs       RunWriter
	recorder   RunRecorder
	logger     *zap.Logger
}

func NewRunImport(
	registry *Registry,
	locker Locker,
	dispatcher InvitationDispatcher,
	runs RunWriter,
	recorder RunRecorder,
	logger *zap.Logger,
) RunImport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &runImport{
		registry:   registry,
		locker:     locker,
		dispatcher: dispatcher,
		runs:       runs,
		recorder:   recorder,
		logger:     logger.With(zap.String("component", "run_import")),
	}
}

func LockKey(entity string, enterpriseID int64) string {
	return fmt.Sprintf("import:%s:%d", entity, enterpriseID)
}

func (uc *runImport) Execute(ctx context.Context, in RunImportInput) (RunImportOutput, error) {
	importer, err := uc.registry.Lookup(in.Entity)
	if err != nil {
		return RunImportOutput{}, err
	}
	if in.EnterpriseID <= 0 {
		return RunImportOutput{}, ErrInvalidEnterprise
	}

	release, err := uc.locker.Acquire(ctx, LockKey(importer.Entity(), in.EnterpriseID))
	if err != nil {
		if errors.Is(err, batch.ErrLocked) {
			return RunImportOutput{}, ErrImportInProgress
		}
		return RunImportOutput{}, fmt.Errorf("%w: %v", ErrRunImport, err)
	}
	defer func() { _ = release() }()

	scope := batch.Scope{EnterpriseID: in.EnterpriseID, ActorID: in.ActorID}
	run := batch.Run{
		ID:           uuid.NewString(),
		Entity:       importer.Entity(),
		EnterpriseID: in.EnterpriseID,
		ActorID:      in.ActorID,
		FileName:     in.FileName,
		StartedAt:    time.Now().UTC(),
	}
	log := uc.logger.With(
		zap.String("run_id", run.ID),
		zap.String("entity", run.Entity),
		zap.Int64("enterprise_id", run.EnterpriseID),
		zap.Int64("actor_id", run.ActorID),
	)
	log.Info("import started", zap.String("file_name", in.FileName))

	report, result, reconcileErr := importer.Reconcile(ctx, in.Content, scope)
	lockErr := release()
	run.Report, run.Result = report, result
	run.FinishedAt = time.Now().UTC()
	switch {
	case reconcileErr != nil:
		run.Status = batch.RunFailed
		run.ErrorMessage = reconcileErr.Error()
	case report.FileError != nil:
		run.Status = batch.RunRejected
		run.ErrorMessage = report.FileError.Message
	default:
		run.Status = batch.RunSucceeded
	}
	switch {
	case errors.Is(lockErr, batch.ErrLockLost):
		log.Error("import lock lost before the batch finished", zap.Error(lockErr))
		run.ErrorMessage = joinMessages(run.ErrorMessage, lockErr.Error())
	case lockErr != nil:
		log.Warn("release import lock failed", zap.Error(lockErr))
	}

	// Nothing below may undo the batch, so it runs even if the caller has gone.
	bg := context.WithoutCancel(ctx)
	if reconcileErr == nil && len(result.Invitations) > 0 {
		if err := uc.dispatcher.Dispatch(bg, run.Entity, scope, result.Invitations); err != nil {
			log.Error("dispatch invitations failed", zap.Int("invitations", len(result.Invitations)), zap.Error(err))
		}
	}
	if err := uc.runs.Save(bg, run); err != nil {
		log.Error("save import run failed", zap.Error(err))
	}
	elapsed := run.FinishedAt.Sub(run.StartedAt)
	uc.recorder.ObserveRun(run, elapsed)

	log.Info("import finished",
		zap.String("status", string(run.Status)),
		zap.Int("total_rows", report.TotalRows),
		zap.Int("valid_rows", report.ValidRows),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("reactivated", result.Reactivated),
		zap.Int("row_errors", len(result.Errors)),
		zap.Int("invitations", result.InvitationsSent),
		zap.Duration("elapsed", elapsed),
	)

	out := RunImportOutput{
		RunID:    run.ID,
		Entity:   run.Entity,
		Status:   run.Status,
		Report:   report,
		Result:   result,
		LockLost: errors.Is(lockErr, batch.ErrLockLost),
	}
	if reconcileErr != nil {
		return out, fmt.Errorf("%w: %w", ErrRunImport, reconcileErr)
	}
	return out, nil
}

func joinMessages(first, second string) string {
	if first == "" {
		return second
	}
	return first + "; " + second
}
