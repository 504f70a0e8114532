package imports_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mohammadpnp/supplier-import/internal/domain/assignment"
	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

type fakeReader struct {
	sheet batch.Sheet
	err   error
}

func (f fakeReader) Read(raw []byte) (batch.Sheet, error) {
	return f.sheet, f.err
}

type storedRow[T any] struct {
	id       int64
	active   bool
	terminal bool
	value    T
}

// memStore keeps entities by natural key. Updates are recorded but only the
// activation flag is applied.
type memStore[T any] struct {
	mu      sync.Mutex
	key     func(T) string
	rows    map[string]*storedRow[T]
	nextID  int64
	inserts int
	updates []batch.Changes

	findErr   map[string]error
	updateErr map[string]error
	// race makes the first Insert of a key lose to a concurrent writer.
	race map[string]bool
}

func newMemStore[T any](key func(T) string) *memStore[T] {
	return &memStore[T]{
		key:       key,
		rows:      map[string]*storedRow[T]{},
		nextID:    100,
		findErr:   map[string]error{},
		updateErr: map[string]error{},
		race:      map[string]bool{},
	}
}

func (s *memStore[T]) seed(v T, active, terminal bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.rows[s.key(v)] = &storedRow[T]{id: s.nextID, active: active, terminal: terminal, value: v}
	return s.nextID
}

func (s *memStore[T]) FindByNaturalKey(ctx context.Context, scope batch.Scope, value T) (*batch.Existing[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := s.key(value)
	if err := s.findErr[k]; err != nil {
		return nil, err
	}
	row, ok := s.rows[k]
	if !ok {
		return nil, nil
	}
	return &batch.Existing[T]{ID: row.id, Active: row.active, Terminal: row.terminal, Value: row.value}, nil
}

func (s *memStore[T]) Insert(ctx context.Context, scope batch.Scope, value T) (int64, error) {
	k := s.key(value)
	if s.race[k] {
		delete(s.race, k)
		s.seed(value, true, false)
		return 0, fmt.Errorf("insert: %w", batch.ErrDuplicateKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[k]; ok {
		return 0, batch.ErrDuplicateKey
	}
	s.nextID++
	s.inserts++
	s.rows[k] = &storedRow[T]{id: s.nextID, active: true, value: value}
	return s.nextID, nil
}

func (s *memStore[T]) Update(ctx context.Context, scope batch.Scope, id int64, changes batch.Changes) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, row := range s.rows {
		if row.id != id {
			continue
		}
		if err := s.updateErr[k]; err != nil {
			return err
		}
		s.updates = append(s.updates, changes)
		if changes.Activate {
			row.active = true
		}
		return nil
	}
	return fmt.Errorf("no row with id %d", id)
}

type fakeResolver struct {
	partners    map[string]int64
	touchpoints map[string]int64
}

func (r fakeResolver) Resolve(ctx context.Context, scope batch.Scope, a assignment.Assignment) (assignment.Assignment, error) {
	partnerID, ok := r.partners[a.PartnerInternalID]
	if !ok {
		return a, batch.NotFound("Partner", a.PartnerInternalID)
	}
	touchpointID, ok := r.touchpoints[a.TouchpointCode]
	if !ok {
		return a, batch.NotFound("Touchpoint", a.TouchpointCode)
	}
	a.PartnerID, a.TouchpointID = partnerID, touchpointID
	return a, nil
}

type fakeImporter struct {
	entity     string
	columns    []string
	report     batch.Report
	result     batch.Result
	err        error
	reconciled int
}

func (f *fakeImporter) Entity() string                  { return f.entity }
func (f *fakeImporter) Columns() []string               { return f.columns }
func (f *fakeImporter) Validate(raw []byte) batch.Report { return f.report }

func (f *fakeImporter) Reconcile(ctx context.Context, raw []byte, scope batch.Scope) (batch.Report, batch.Result, error) {
	f.reconciled++
	return f.report, f.result, f.err
}

type fakeLocker struct {
	held       map[string]bool
	err        error
	releaseErr error
	acquired   []string
	released   int
}

func (f *fakeLocker) Acquire(ctx context.Context, key string) (func() error, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.held[key] {
		return nil, batch.ErrLocked
	}
	f.acquired = append(f.acquired, key)
	done := false
	return func() error {
		if !done {
			done = true
			f.released++
		}
		return f.releaseErr
	}, nil
}

type fakeDispatcher struct {
	calls [][]batch.Invitation
	err   error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, entity string, scope batch.Scope, invitations []batch.Invitation) error {
	f.calls = append(f.calls, invitations)
	return f.err
}

type fakeRunRepo struct {
	saved []batch.Run
	run   *batch.Run
	err   error
}

func (f *fakeRunRepo) Save(ctx context.Context, run batch.Run) error {
	f.saved = append(f.saved, run)
	return f.err
}

func (f *fakeRunRepo) GetByID(ctx context.Context, id string) (*batch.Run, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.run, nil
}

type fakeRecorder struct {
	runs []batch.Run
}

func (f *fakeRecorder) ObserveRun(run batch.Run, elapsed time.Duration) {
	f.runs = append(f.runs, run)
}

type fakeWriter struct {
	err     error
	entity  string
	columns []string
	report  *batch.Report
}

func (f *fakeWriter) Template(entity string, columns []string) ([]byte, error) {
	f.entity, f.columns = entity, columns
	return []byte("template"), f.err
}

func (f *fakeWriter) Report(entity string, report batch.Report) ([]byte, error) {
	f.entity, f.report = entity, &report
	return []byte("report"), f.err
}
