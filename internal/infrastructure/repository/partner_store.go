package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
	"github.com/mohammadpnp/supplier-import/internal/domain/partner"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/db/models"
)

type PartnerStore struct {
	db *gorm.DB
}

func NewPartnerStore(db *gorm.DB) *PartnerStore {
	return &PartnerStore{db: db}
}

func (s *PartnerStore) FindByNaturalKey(ctx context.Context, scope batch.Scope, p partner.Partner) (*batch.Existing[partner.Partner], error) {
	var row models.Partner
	err := s.db.WithContext(ctx).
		Where("enterprise_id = ? AND internal_id = ?", scope.EnterpriseID, p.InternalID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("find partner", err)
	}

	return &batch.Existing[partner.Partner]{ID: row.ID, Active: row.Active, Value: partnerFromRow(row)}, nil
}

func (s *PartnerStore) Insert(ctx context.Context, scope batch.Scope, p partner.Partner) (int64, error) {
	row := models.Partner{
		EnterpriseID:     scope.EnterpriseID,
		InternalID:       p.InternalID,
		Name:             p.Name,
		DUNS:             p.DUNS,
		SAPID:            p.SAPID,
		POCFirstName:     p.POCFirstName,
		POCLastName:      p.POCLastName,
		POCTitle:         p.POCTitle,
		POCPhone:         p.POCPhone,
		POCEmail:         p.POCEmail,
		AddressOne:       p.AddressOne,
		AddressTwo:       p.AddressTwo,
		City:             p.City,
		State:            p.State,
		ZipCode:          p.ZipCode,
		Country:          p.Country,
		Fax:              p.Fax,
		Province:         p.Province,
		ROFirstName:      p.ROFirstName,
		ROLastName:       p.ROLastName,
		ROEmail:          p.ROEmail,
		DueDate:          p.DueDate,
		GroupDescription: p.GroupDescription,
		Preselected:      p.Preselected,
		Active:           true,
		CreatedBy:        scope.ActorID,
		UpdatedBy:        scope.ActorID,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, translate("insert partner", err)
	}
	return row.ID, nil
}

func (s *PartnerStore) Update(ctx context.Context, scope batch.Scope, id int64, changes batch.Changes) error {
	return update(ctx, s.db, &models.Partner{}, "partner", scope, id, changes)
}

func partnerFromRow(row models.Partner) partner.Partner {
	return partner.Partner{
		InternalID:       row.InternalID,
		Name:             row.Name,
		DUNS:             row.DUNS,
		SAPID:            row.SAPID,
		POCFirstName:     row.POCFirstName,
		POCLastName:      row.POCLastName,
		POCTitle:         row.POCTitle,
		POCPhone:         row.POCPhone,
		POCEmail:         row.POCEmail,
		AddressOne:       row.AddressOne,
		AddressTwo:       row.AddressTwo,
		City:             row.City,
		State:            row.State,
		ZipCode:          row.ZipCode,
		Country:          row.Country,
		Fax:              row.Fax,
		Province:         row.Province,
		ROFirstName:      row.ROFirstName,
		ROLastName:       row.ROLastName,
		ROEmail:          row.ROEmail,
		DueDate:          row.DueDate,
		GroupDescription: row.GroupDescription,
		Preselected:      row.Preselected,
	}
}

// update applies a partial update to one enterprise-scoped row of model.
func update(ctx context.Context, db *gorm.DB, model any, entity string, scope batch.Scope, id int64, changes batch.Changes) error {
	fields := make(map[string]any, len(changes.Fields)+2)
	for column, value := range changes.Fields {
		fields[column] = value
	}
	fields["updated_by"] = scope.ActorID
	if changes.Activate {
		fields["active"] = true
	}

	res := db.WithContext(ctx).Model(model).
		Where("id = ? AND enterprise_id = ?", id, scope.EnterpriseID).
		Updates(fields)
	if res.Error != nil {
		return translate("update "+entity, res.Error)
	}
	if res.RowsAffected == 0 {
		return batch.NotFound(entity, fmt.Sprint(id))
	}
	return nil
}
