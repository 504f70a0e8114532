package imports

import (
	"context"
	"fmt"
	"sort"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

// Importer is the entity-agnostic face of an Engine.
type Importer interface {
	Entity() string
	Columns() []string
	Validate(raw []byte) batch.Report
	Reconcile(ctx context.Context, raw []byte, scope batch.Scope) (batch.Report, batch.Result, error)
}

// Registry maps entity names (partners, users, assignments) to importers.
type Registry struct {
	importers map[string]Importer
}

func NewRegistry(importers ...Importer) *Registry {
	r := &Registry{importers: make(map[string]Importer, len(importers))}
	for _, imp := range importers {
		r.importers[imp.Entity()] = imp
	}
	return r
}

func (r *Registry) Lookup(entity string) (Importer, error) {
	imp, ok := r.importers[entity]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	return imp, nil
}

func (r *Registry) Entities() []string {
	out := make([]string, 0, len(r.importers))
	for name := range r.importers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
