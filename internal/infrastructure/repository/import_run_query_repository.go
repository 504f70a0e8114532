package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
	"github.com/mohammadpnp/supplier-import/internal/infrastructure/db/models"
)

type ImportRunQueryRepository struct {
	db *gorm.DB
}

func NewImportRunQueryRepository(db *gorm.DB) *ImportRunQueryRepository {
	return &ImportRunQueryRepository{db: db}
}

// GetByID loads a run and rebuilds its report and result from the stored
// counters and findings.
func (r *ImportRunQueryRepository) GetByID(ctx context.Context, id string) (*batch.Run, error) {
	var row models.ImportRun

	err := r.db.WithContext(ctx).
		Preload("Errors", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal") }).
		First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, batch.ErrRunNotFound
		}
		return nil, fmt.Errorf("get import run by id: %w", err)
	}

	run := &batch.Run{
		ID:           row.ID,
		Entity:       row.Entity,
		EnterpriseID: row.EnterpriseID,
		ActorID:      row.ActorID,
		FileName:     row.FileName,
		Status:       batch.RunStatus(row.Status),
		StartedAt:    row.StartedAt,
		FinishedAt:   row.FinishedAt,
		Report: batch.Report{
			TotalRows: row.TotalRows,
			ValidRows: row.ValidRows,
			Errors:    []batch.ValidationError{},
			Warnings:  []batch.ValidationError{},
		},
		Result: batch.Result{
			Created:         row.CreatedCount,
			Updated:         row.UpdatedCount,
			Skipped:         row.SkippedCount,
			Reactivated:     row.ReactivatedCount,
			InvitationsSent: row.InvitationsSent,
			Errors:          []batch.RowError{},
		},
	}
	if row.ErrorMessage != nil {
		run.ErrorMessage = *row.ErrorMessage
	}

	for _, e := range row.Errors {
		finding := batch.ValidationError{Code: e.Code, Message: e.Message, RowNumber: e.RowNumber, Field: e.Field}
		switch {
		case e.Kind == batch.RunErrorPersistence:
			run.Result.Errors = append(run.Result.Errors, batch.RowError{RowNumber: e.RowNumber, NaturalKey: e.NaturalKey, Error: e.Message})
		case e.Kind == batch.RunErrorWarning:
			run.Report.Warnings = append(run.Report.Warnings, finding)
		case e.RowNumber == 0 && e.Code == batch.CodeFile:
			run.Report.FileError = &finding
		default:
			run.Report.Errors = append(run.Report.Errors, finding)
		}
	}

	return run, nil
}
