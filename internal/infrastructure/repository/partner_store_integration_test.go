package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	app "github.com/mohammadpnp/supplier-import/internal/application/imports"
	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
	"github.com/mohammadpnp/supplier-import/internal/domain/partner"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/db/models"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/repository"
)

type staticReader struct{ sheet batch.Sheet }

func (r staticReader) Read([]byte) (batch.Sheet, error) { return r.sheet, nil }

func TestPartnerStoreIntegration(t *testing.T) {
	db := openDB(t)
	store := repository.NewPartnerStore(db)
	ctx := context.Background()
	scope := batch.Scope{EnterpriseID: nextEnterprise(), ActorID: 5}

	missing, err := store.FindByNaturalKey(ctx, scope, partner.Partner{InternalID: "P1"})
	require.NoError(t, err)
	require.Nil(t, missing)

	due := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	id, err := store.Insert(ctx, scope, partner.Partner{InternalID: "P1", Name: "Acme", POCEmail: "ada@acme.test", DueDate: &due, Preselected: true})
	require.NoError(t, err)
	require.NotZero(t, id)

	_, err = store.Insert(ctx, scope, partner.Partner{InternalID: "P1", Name: "Acme again"})
	require.ErrorIs(t, err, batch.ErrDuplicateKey)

	found, err := store.FindByNaturalKey(ctx, scope, partner.Partner{InternalID: "P1"})
	require.NoError(t, err)
	require.Equal(t, id, found.ID)
	require.True(t, found.Active)
	require.Equal(t, "Acme", found.Value.Name)
	require.True(t, found.Value.Preselected)
	require.Empty(t, batch.Diff(partner.Fields, found.Value, partner.Partner{
		InternalID: "P1", Name: "Acme", POCEmail: "ADA@acme.test", DueDate: &due, Preselected: true,
	}))

	other := batch.Scope{EnterpriseID: scope.EnterpriseID + 1}
	elsewhere, err := store.FindByNaturalKey(ctx, other, partner.Partner{InternalID: "P1"})
	require.NoError(t, err)
	require.Nil(t, elsewhere, "natural keys are scoped to the enterprise")

	require.NoError(t, db.Model(&models.Partner{}).Where("id = ?", id).Update("active", false).Error)
	require.NoError(t, store.Update(ctx, scope, id, batch.Changes{Fields: map[string]any{"name": "Acme Corp"}, Activate: true}))

	var row models.Partner
	require.NoError(t, db.First(&row, id).Error)
	require.Equal(t, "Acme Corp", row.Name)
	require.True(t, row.Active)
	require.Equal(t, int64(5), row.UpdatedBy)

	err = store.Update(ctx, other, id, batch.Changes{Fields: map[string]any{"name": "Hijack"}})
	require.ErrorIs(t, err, batch.ErrNotFound)
}

func TestPartnerReimportIntegration(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	scope := batch.Scope{EnterpriseID: nextEnterprise(), ActorID: 5}

	engine := func(rows ...[]string) *app.Engine[partner.Partner] {
		sheet := batch.Sheet{Header: []string{partner.ColInternalID, partner.ColName, partner.ColDueDate}, Rows: rows}
		return app.NewEngine(staticReader{sheet}, app.EngineConfig[partner.Partner]{
			Schema: partner.Schema("US"),
			Fields: partner.Fields,
			Store:  repository.NewPartnerStore(db),
		}, zap.NewNop())
	}

	_, first, err := engine([]string{"P1", "Acme", "2026-12-31"}, []string{"P2", "Beta", ""}).Reconcile(ctx, []byte("x"), scope)
	require.NoError(t, err)
	require.Equal(t, 2, first.Created)

	_, second, err := engine([]string{"P1", "Acme", "12/31/2026"}, []string{"P2", "Beta", ""}).Reconcile(ctx, []byte("x"), scope)
	require.NoError(t, err)
	require.Equal(t, 2, second.Skipped)

	_, third, err := engine([]string{"P1", "Acme Corp", "2026-12-31"}, []string{"P2", "Beta", ""}).Reconcile(ctx, []byte("x"), scope)
	require.NoError(t, err)
	require.Equal(t, 1, third.Updated)
	require.Equal(t, 1, third.Skipped)
}
