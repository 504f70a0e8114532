package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mohammadpnp/supplier-import/internal/domain/assignment"
	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/db/models"
)

type AssignmentStore struct {
	db *gorm.DB
}

func NewAssignmentStore(db *gorm.DB) *AssignmentStore {
	return &AssignmentStore{db: db}
}

// FindByNaturalKey expects a resolved assignment. A completed assignment is
// reported as terminal.
func (s *AssignmentStore) FindByNaturalKey(ctx context.Context, scope batch.Scope, a assignment.Assignment) (*batch.Existing[assignment.Assignment], error) {
	var row models.Assignment
	err := s.db.WithContext(ctx).
		Where("partner_id = ? AND touchpoint_id = ?", a.PartnerID, a.TouchpointID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("find assignment", err)
	}

	return &batch.Existing[assignment.Assignment]{
		ID:       row.ID,
		Active:   row.Active,
		Terminal: row.CompletedAt != nil,
		Value: assignment.Assignment{
			PartnerInternalID: a.PartnerInternalID,
			TouchpointCode:    a.TouchpointCode,
			PartnerID:         row.PartnerID,
			TouchpointID:      row.TouchpointID,
			DueDate:           row.DueDate,
			ROEmail:           row.ROEmail,
		},
	}, nil
}

func (s *AssignmentStore) Insert(ctx context.Context, scope batch.Scope, a assignment.Assignment) (int64, error) {
	row := models.Assignment{
		EnterpriseID: scope.EnterpriseID,
		PartnerID:    a.PartnerID,
		TouchpointID: a.TouchpointID,
		DueDate:      a.DueDate,
		ROEmail:      a.ROEmail,
		Active:       true,
		CreatedBy:    scope.ActorID,
		UpdatedBy:    scope.ActorID,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, translate("insert assignment", err)
	}
	return row.ID, nil
}

func (s *AssignmentStore) Update(ctx context.Context, scope batch.Scope, id int64, changes batch.Changes) error {
	return update(ctx, s.db, &models.Assignment{}, "assignment", scope, id, changes)
}

// AssignmentReferences resolves the partner internal id and touchpoint code
// of an assignment row within the enterprise.
type AssignmentReferences struct {
	db *gorm.DB
}

func NewAssignmentReferences(db *gorm.DB) *AssignmentReferences {
	return &AssignmentReferences{db: db}
}

func (r *AssignmentReferences) Resolve(ctx context.Context, scope batch.Scope, a assignment.Assignment) (assignment.Assignment, error) {
	var p models.Partner
	err := r.db.WithContext(ctx).Select("id").
		Where("enterprise_id = ? AND internal_id = ?", scope.EnterpriseID, a.PartnerInternalID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return a, batch.NotFound("Partner", a.PartnerInternalID)
	}
	if err != nil {
		return a, translate("resolve partner", err)
	}

	var tp models.Touchpoint
	err = r.db.WithContext(ctx).Select("id").
		Where("enterprise_id = ? AND code = ?", scope.EnterpriseID, a.TouchpointCode).
		Take(&tp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return a, batch.NotFound("Touchpoint", a.TouchpointCode)
	}
	if err != nil {
		return a, translate("resolve touchpoint", err)
	}

	a.PartnerID, a.TouchpointID = p.ID, tp.ID
	return a, nil
}
