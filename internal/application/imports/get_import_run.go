package imports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mohammadpnp/supplier-import/internal/domain/batch"
)

type GetImportRunInput struct {
	ID string
}

type GetImportRunOutput struct {
	ID           string          `json:"id"`
	Entity       string          `json:"entity"`
	EnterpriseID int64           `json:"enterpriseId"`
	ActorID      int64           `json:"actorId"`
	FileName     string          `json:"fileName"`
	Status       batch.RunStatus `json:"status"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	StartedAt    time.Time       `json:"startedAt"`
	FinishedAt   time.Time       `json:"finishedAt"`
	Report       batch.Report    `json:"report"`
	Result       batch.Result    `json:"result"`
}

type GetImportRun interface {
	Execute(ctx context.Context, in GetImportRunInput) (GetImportRunOutput, error)
}

type getImportRun struct {
	repo RunReader
}

func NewGetImportRun(repo RunReader) GetImportRun {
	return &getImportRun{repo: repo}
}

func (uc *getImportRun) Execute(ctx context.Context, in GetImportRunInput) (GetImportRunOutput, error) {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return GetImportRunOutput{}, ErrInvalidRunID
	}

	run, err := uc.repo.GetByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, batch.ErrRunNotFound) {
			return GetImportRunOutput{}, ErrImportRunNotFound
		}
		return GetImportRunOutput{}, fmt.Errorf("%w: %v", ErrGetImportRun, err)
	}

	return GetImportRunOutput{
		ID:           run.ID,
		Entity:       run.Entity,
		EnterpriseID: run.EnterpriseID,
		ActorID:      run.ActorID,
		FileName:     run.FileName,
		Status:       run.Status,
		ErrorMessage: run.ErrorMessage,
		StartedAt:    run.StartedAt,
		FinishedAt:   run.FinishedAt,
		Report:       run.Report,
		Result:       run.Result,
	}, nil
}
