package imports

import (
	"context"
	"time"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

// SheetReader decodes an uploaded workbook into its sheet of interest.
type SheetReader interface {
	Read(raw []byte) (batch.Sheet, error)
}

// SpreadsheetWriter renders workbooks handed back to the caller.
type SpreadsheetWriter interface {
	Template(entity string, columns []string) ([]byte, error)
	Report(entity string, report batch.Report) ([]byte, error)
}

// Locker serializes batches. Acquire fails with batch.ErrLocked while
// another holder owns key. Release may be called more than once and reports
// batch.ErrLockLost when the lock lapsed before it.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func() error, err error)
}

// InvitationDispatcher delivers invitations requested by a committed batch.
type InvitationDispatcher interface {
	Dispatch(ctx context.Context, entity string, scope batch.Scope, invitations []batch.Invitation) error
}

type RunWriter interface {
	Save(ctx context.Context, run batch.Run) error
}

type RunReader interface {
	GetByID(ctx context.Context, id string) (*batch.Run, error)
}

type RunRecorder interface {
	ObserveRun(run batch.Run, elapsed time.Duration)
}
