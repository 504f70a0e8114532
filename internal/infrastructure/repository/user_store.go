package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
	"github.com/mohammadpnp/supplier-import/internal/domain/user"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/db/models"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByNaturalKey(ctx context.Context, scope batch.Scope, u user.User) (*batch.Existing[user.User], error) {
	var row models.User
	err := s.db.WithContext(ctx).
		Where("enterprise_id = ? AND user_id = ?", scope.EnterpriseID, u.UserID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate("find user", err)
	}

	return &batch.Existing[user.User]{
		ID:     row.ID,
		Active: row.Active,
		Value: user.User{
			UserID:            row.UserID,
			FirstName:         row.FirstName,
			LastName:          row.LastName,
			Email:             row.Email,
			Phone:             row.Phone,
			Role:              row.Role,
			SiteCode:          row.SiteCode,
			GroupCode:         row.GroupCode,
			PartnerTypeAccess: row.PartnerTypeAccess,
			Title:             row.Title,
			Department:        row.Department,
			ManagerEmail:      row.ManagerEmail,
			SSOID:             row.SSOID,
			Enabled:           row.Enabled,
			Notes:             row.Notes,
		},
	}, nil
}

func (s *UserStore) Insert(ctx context.Context, scope batch.Scope, u user.User) (int64, error) {
	row := models.User{
		EnterpriseID:      scope.EnterpriseID,
		UserID:            u.UserID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Email:             u.Email,
		Phone:             u.Phone,
		Role:              u.Role,
		SiteCode:          u.SiteCode,
		GroupCode:         u.GroupCode,
		PartnerTypeAccess: u.PartnerTypeAccess,
		Title:             u.Title,
		Department:        u.Department,
		ManagerEmail:      u.ManagerEmail,
		SSOID:             u.SSOID,
		Enabled:           u.Enabled,
		Notes:             u.Notes,
		Active:            true,
		CreatedBy:         scope.ActorID,
		UpdatedBy:         scope.ActorID,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, translate("insert user", err)
	}
	return row.ID, nil
}

func (s *UserStore) Update(ctx context.Context, scope batch.Scope, id int64, changes batch.Changes) error {
	return update(ctx, s.db, &models.User{}, "user", scope, id, changes)
}
