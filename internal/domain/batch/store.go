package batch

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned by Store.Insert when the natural key already exists.
	ErrDuplicateKey = errors.New("natural key already exists")
	// ErrStoreUnavailable marks a connectivity fault. It aborts the whole batch.
	ErrStoreUnavailable = errors.New("persistent store unavailable")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrLocked is returned when another batch holds the same lock.
	ErrLocked = errors.New("batch lock held")
	// ErrLockLost is returned on release when the lock lapsed while the batch ran.
	ErrLockLost = errors.New("batch lock lost")
)

// NotFoundError names the referenced entity that could not be resolved.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound reports that the entity identified by key does not exist.
func NotFound(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// Scope is the tenant and actor a batch runs for. ActorID is only recorded
// for audit attribution.
type Scope struct {
	EnterpriseID int64
	ActorID      int64
}

// Existing is the persisted state behind a natural key. Terminal entities are
// never written by a batch.
type Existing[T any] struct {
	ID       int64
	Active   bool
	Terminal bool
	Value    T
}

// Changes is a partial update. Activate also clears the archive flag.
type Changes struct {
	Fields   map[string]any
	Activate bool
}

// Store is the persistence port of one entity type.
type Store[T any] interface {
	// FindByNaturalKey returns nil and no error when nothing is stored for the key of value.
	FindByNaturalKey(ctx context.Context, scope Scope, value T) (*Existing[T], error)
	Insert(ctx context.Context, scope Scope, value T) (int64, error)
	Update(ctx context.Context, scope Scope, id int64, changes Changes) error
}

// Resolver completes a record with the identifiers of the entities it
// references, failing with ErrNotFound when one of them does not exist.
type Resolver[T any] interface {
	Resolve(ctx context.Context, scope Scope, value T) (T, error)
}
