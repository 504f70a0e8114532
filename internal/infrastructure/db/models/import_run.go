package models

import "time"

type ImportRun struct {
	ID               string  `gorm:"type:uuid;primaryKey"`
	Entity           string  `gorm:"column:entity;size:32;not null;index:ix_import_runs_entity_enterprise,priority:1"`
	EnterpriseID     int64   `gorm:"column:enterprise_id;not null;index:ix_import_runs_entity_enterprise,priority:2"`
	ActorID          int64   `gorm:"column:actor_id;not null"`
	FileName         string  `gorm:"column:file_name;size:255"`
	Status           string  `gorm:"column:status;size:16;not null"`
	TotalRows        int     `gorm:"column:total_rows;not null"`
	ValidRows        int     `gorm:"column:valid_rows;not null"`
	CreatedCount     int     `gorm:"column:created_count;not null"`
	UpdatedCount     int     `gorm:"column:updated_count;not null"`
	SkippedCount     int     `gorm:"column:skipped_count;not null"`
	ReactivatedCount int     `gorm:"column:reactivated_count;not null"`
	InvitationsSent  int     `gorm:"column:invitations_sent;not null"`
	ErrorMessage     *string `gorm:"column:error_message;type:text"`
	StartedAt        time.Time
	FinishedAt       time.Time
	CreatedAt        time.Time
	Errors           []ImportRunError `gorm:"foreignKey:RunID"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}

type ImportRunError struct {
	ID         int64  `gorm:"primaryKey"`
	RunID      string `gorm:"column:run_id;type:uuid;not null;index"`
	Ordinal    int    `gorm:"column:ordinal;not null"`
	Kind       string `gorm:"column:kind;size:16;not null"`
	RowNumber  int    `gorm:"column:row_number;not null"`
	Code       string `gorm:"column:code;size:32"`
	Field      string `gorm:"column:field;size:64"`
	NaturalKey string `gorm:"column:natural_key;size:255"`
	Message    string `gorm:"column:message;type:text;not null"`
}

func (ImportRunError) TableName() string {
	return "import_run_errors"
}

// All lists every model, in dependency order, for schema migration.
func All() []any {
	return []any{&Partner{}, &User{}, &Touchpoint{}, &Assignment{}, &ImportRun{}, &ImportRunError{}}
}
