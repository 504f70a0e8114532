package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mohammadpnp/supplier-import/internal/infrastructure/db/models"
)

// Migrate creates or extends the tables and unique indexes the stores rely on.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
