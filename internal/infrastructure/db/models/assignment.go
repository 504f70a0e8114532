package models

import "time"

type Touchpoint struct {
	ID           int64  `gorm:"primaryKey"`
	EnterpriseID int64  `gorm:"column:enterprise_id;not null;uniqueIndex:ux_touchpoints_enterprise_code,priority:1"`
	Code         string `gorm:"column:code;size:64;not null;uniqueIndex:ux_touchpoints_enterprise_code,priority:2"`
	Name         string `gorm:"column:name;size:255;not null"`
	Active       bool   `gorm:"column:active;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Touchpoint) TableName() string {
	return "touchpoints"
}

// Assignment pairs a partner with a touchpoint questionnaire. A non-null
// CompletedAt marks the assignment as finished.
type Assignment struct {
	ID           int64      `gorm:"primaryKey"`
	EnterpriseID int64      `gorm:"column:enterprise_id;not null;index"`
	PartnerID    int64      `gorm:"column:partner_id;not null;uniqueIndex:ux_assignments_partner_touchpoint,priority:1"`
	TouchpointID int64      `gorm:"column:touchpoint_id;not null;uniqueIndex:ux_assignments_partner_touchpoint,priority:2"`
	DueDate      time.Time  `gorm:"column:due_date;type:date;not null"`
	ROEmail      string     `gorm:"column:ro_email;size:320"`
	Active       bool       `gorm:"column:active;not null"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
	CreatedBy    int64      `gorm:"column:created_by"`
	UpdatedBy    int64      `gorm:"column:updated_by"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Assignment) TableName() string {
	return "assignments"
}
